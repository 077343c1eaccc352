package httperr

import "errors"

// BusinessError is a domain rule violation identified by a stable code.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness returns a BusinessError with the given code.
func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness reports whether err carries a BusinessError with the given code.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
