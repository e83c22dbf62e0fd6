package session

import "errors"

var (
	ErrNotSignedIn       = errors.New("rider is not signed in")
	ErrMissingLogin      = errors.New("email and password are required")
	ErrRiderNotFound     = errors.New("signed-in rider not found on server")
	ErrSessionConflict   = errors.New("session already stored")
	ErrIncompleteSignup  = errors.New("please fill all fields")
	ErrUnknownUniversity = errors.New("university is not served")
)
