package ledger

// ValidationError is a user-input rejection from ValidateTransfer. The caller
// is expected to re-prompt the user; no state is ever touched on the way to
// one of these. The messages are shown verbatim in the app, so they must not
// change.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation failures, in the order the rules are applied. The first failing
// rule wins; later rules are never evaluated.
var (
	ErrNoSourceAccount      = &ValidationError{"Please select a source account"}
	ErrNoDestinationAccount = &ValidationError{"Please select a destination account"}
	ErrNoExternalAccount    = &ValidationError{"Please enter external account number"}
	ErrSameAccount          = &ValidationError{"Source and destination accounts must be different"}
	ErrUnknownExternal      = &ValidationError{"Invalid destination account number"}
	ErrBadAmount            = &ValidationError{"Please enter a valid numeric amount"}
	ErrNonPositiveAmount    = &ValidationError{"Amount must be greater than P0"}

	// The app renders the minimum with a trailing ".0" and the maximum
	// without; both strings are kept byte-identical to what users see.
	ErrBelowMinimum = &ValidationError{"Minimum transfer amount is P100.0"}
	ErrAboveMaximum = &ValidationError{"Maximum transfer amount is P50000"}

	ErrInsufficientBalance = &ValidationError{"Insufficient balance in source account"}
)
