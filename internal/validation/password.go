package validation

import "errors"

// ValidatePassword checks presence and the bcrypt input limit.
// bcrypt rejects anything longer than 72 bytes, so it is caught here first.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	if len(password) > 72 {
		return errors.New("password must not exceed 72 bytes")
	}

	return nil
}
