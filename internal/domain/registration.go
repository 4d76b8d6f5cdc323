package domain

import (
	"fmt"
	"strings"
)

// RegistrationNumber is the vehicle's plate identifier as a validated value
// object. The zero value is invalid — always construct via
// NewRegistrationNumber, which normalizes (trim + uppercase) before
// validating. Two RegistrationNumbers are equal iff their normalized values
// are equal, so the type is safe to compare with ==.
type RegistrationNumber struct {
	value string
}

const (
	registrationMinLen = 4
	registrationMaxLen = 16
)

// NewRegistrationNumber normalizes raw and returns it as a RegistrationNumber.
// Returns ErrInvalidFormat when the normalized form is empty, shorter than 4
// or longer than 16 characters, or contains anything outside [A-Z0-9].
func NewRegistrationNumber(raw string) (RegistrationNumber, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))

	switch {
	case v == "":
		return RegistrationNumber{}, fmt.Errorf("%w: registration number cannot be empty", ErrInvalidFormat)
	case len(v) < registrationMinLen:
		return RegistrationNumber{}, fmt.Errorf("%w: registration number must be at least %d characters long", ErrInvalidFormat, registrationMinLen)
	case len(v) > registrationMaxLen:
		return RegistrationNumber{}, fmt.Errorf("%w: registration number cannot exceed %d characters", ErrInvalidFormat, registrationMaxLen)
	}

	for _, r := range v {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return RegistrationNumber{}, fmt.Errorf("%w: registration number can only contain uppercase letters and numbers", ErrInvalidFormat)
		}
	}

	return RegistrationNumber{value: v}, nil
}

// Value returns the normalized form, e.g. "ABC123".
func (r RegistrationNumber) Value() string {
	return r.value
}

func (r RegistrationNumber) String() string {
	return r.value
}
