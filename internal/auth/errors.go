package auth

import "fmt"

// RegistrationReason says why a registration was refused.
type RegistrationReason string

const (
	ReasonDuplicateUsername RegistrationReason = "duplicate_username"
	ReasonUsernameTooShort  RegistrationReason = "username_too_short"
	ReasonPasswordTooShort  RegistrationReason = "password_too_short"
	ReasonReservedUsername  RegistrationReason = "reserved_username"
)

// RegistrationError is a user-correctable registration failure. Its
// message is meant to be shown verbatim.
type RegistrationError struct {
	Reason RegistrationReason
}

func (e *RegistrationError) Error() string {
	switch e.Reason {
	case ReasonDuplicateUsername:
		return "a user with this name already exists"
	case ReasonUsernameTooShort:
		return fmt.Sprintf("username must be at least %d characters", MinUsernameLength)
	case ReasonPasswordTooShort:
		return fmt.Sprintf("password must be at least %d characters", MinPasswordLength)
	case ReasonReservedUsername:
		return "this username is reserved"
	default:
		return "registration failed"
	}
}

// AuthReason says why a login was refused.
type AuthReason string

const (
	ReasonUserNotFound AuthReason = "user_not_found"
	ReasonBadPassword  AuthReason = "bad_password"
)

// AuthError is a user-correctable login failure.
//
// The two reasons produce different messages, which lets a caller probe
// for existing usernames.
type AuthError struct {
	Reason AuthReason
}

func (e *AuthError) Error() string {
	switch e.Reason {
	case ReasonUserNotFound:
		return "user not found"
	case ReasonBadPassword:
		return "wrong password"
	default:
		return "login failed"
	}
}

// Is lets errors.Is match on the reason alone.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Reason == e.Reason
}

// Is lets errors.Is match on the reason alone.
func (e *RegistrationError) Is(target error) bool {
	t, ok := target.(*RegistrationError)
	return ok && t.Reason == e.Reason
}
