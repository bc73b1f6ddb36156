package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")

	// ErrAuthUnavailable means the auth-service could not be reached or
	// answered with a server error; the token itself was never judged.
	ErrAuthUnavailable = errors.New("auth service unavailable")
)
