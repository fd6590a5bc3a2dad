package domain

import "errors"

// Token validation failures. Handlers collapse all three into a single
// generic unauthenticated response so callers cannot distinguish them.
var ErrInvalidSignature = errors.New("invalid token signature")
var ErrTokenExpired = errors.New("token expired")
var ErrMissingSubject = errors.New("token missing subject")

// ErrUnauthenticated covers bearer-token failures that are not one of the
// three validation errors, e.g. a valid token whose subject no longer maps
// to an account. Outwardly indistinguishable from the others.
var ErrUnauthenticated = errors.New("could not validate credentials")
