package pinterest

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// ErrorKind classifies errors returned by this package.
type ErrorKind int

const (
	// ErrorKindToken indicates the authorization code could not be exchanged for a token.
	ErrorKindToken ErrorKind = iota
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindToken:
		return "token"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ErrToken matches any *Error of kind ErrorKindToken with errors.Is.
var ErrToken = errors.New("pinterest: token exchange failed")

// ErrNoToken is returned by Client.Do when the client holds no access token.
var ErrNoToken = errors.New("pinterest: client has no access token")

// Error is the error returned by TokenBuilder.ExchangeCode.
// Err is the unmodified error from the OAuth2 layer.
type Error struct {
	Kind ErrorKind
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("pinterest: %s error: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying OAuth2 error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return target == ErrToken && e.Kind == ErrorKindToken
}

// Code returns the OAuth2 error code sent by the token endpoint
// (e.g. "invalid_grant"), or "" if the failure did not carry one.
func (e *Error) Code() string {
	var re *oauth2.RetrieveError
	if errors.As(e.Err, &re) {
		return re.ErrorCode
	}
	return ""
}

func newTokenError(err error) *Error {
	return &Error{Kind: ErrorKindToken, Err: err}
}

// APIError is returned by Client.Do when Pinterest answers with a non-2xx status.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int
	// Message is the "message" field of the Pinterest error body, if any
	Message string
	// Type is the "type" field of the Pinterest error body, if any
	Type string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pinterest: api request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("pinterest: api request failed with status %d: %s", e.StatusCode, e.Message)
}
