package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// ErrMissingAuthority is reported with the missing account appended
	ErrMissingAuthority = errors.New("missing required authority")
	ErrInvalidMemo      = errors.New("invalid memo")
	ErrSymbolMismatch   = errors.New("symbol precision mismatch")
)

// MissingAuthorityError names the account whose authority was required.
type MissingAuthorityError struct {
	Account Name
}

func (e *MissingAuthorityError) Error() string {
	return ErrMissingAuthority.Error() + " " + string(e.Account)
}

func (e *MissingAuthorityError) Is(target error) bool {
	return target == ErrMissingAuthority
}
