package protect

// ValidationError rejects a mutation (password rules, duplicate app,
// capacity). The message is user-facing; no state changes when one is
// returned.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func errValidation(msg string) error {
	return ValidationError{Message: msg}
}

// AuthError reports a password mismatch on unlock. Retries are permitted;
// nothing changes when one is returned.
type AuthError struct{}

func (e AuthError) Error() string {
	return "incorrect password"
}
