package services

import "errors"

// Domain errors. Handlers map these to HTTP status codes; everything else is
// treated as an internal error.
var (
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrAlreadyReverted       = errors.New("movement already reverted")
	ErrDuplicateRelationship = errors.New("a non-rejected relationship already exists between these businesses")
	ErrRelationshipRequired  = errors.New("an active relationship with the destination business is required")
	ErrIngredientMismatch    = errors.New("modifier references inventory items outside the product's ingredient list")
	ErrItemMappingNotFound   = errors.New("no matching inventory item at the destination business")
	ErrInvalidTransition     = errors.New("operation not allowed in the current status")
	ErrNotTransferParty      = errors.New("business is not a party to this transfer")
	ErrNotRelationshipTarget = errors.New("only the target business may resolve this request")
	ErrShiftAlreadyOpen      = errors.New("an open shift already exists")
	ErrNoOpenShift           = errors.New("no open shift to check out")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
)
