// Package serviceerr defines the error taxonomy of the gateway and its
// mapping onto HTTP status codes.
package serviceerr

import "net/http"

// Code identifies a class of gateway failure.
type Code string

const (
	// CodeInvalidRequest covers malformed requests: missing or wrong API key,
	// unsupported content type, missing form parameters, unknown action.
	CodeInvalidRequest Code = "invalid_request"
	// CodeInvalidToken means the token failed the format check during LOGIN.
	CodeInvalidToken Code = "invalid_token"
	// CodeAuthenticationDenied means the external service rejected /auth.
	CodeAuthenticationDenied Code = "authentication_denied"
	// CodeAuthorizationDenied means the external service rejected /doAction.
	CodeAuthorizationDenied Code = "authorization_denied"
	// CodeNoSession means ACTION was attempted without an authenticated session.
	CodeNoSession Code = "no_session"
	// CodeConflict means LOGIN was attempted while a session is already active.
	CodeConflict Code = "conflict"
	// CodeUnknown is reserved for unexpected internal failures.
	CodeUnknown Code = "unknown"
)

type Error struct {
	Err         Code
	Description string
}

var _ error = &Error{}

func (e *Error) Error() string {
	if e.Description == "" {
		return string(e.Err)
	}

	return string(e.Err) + ": " + e.Description
}

// HTTPStatus maps the error code onto the HTTP status of the gateway response.
// Everything the gateway rejects locally or on behalf of the external service
// is a 400, except the re-login conflict, which is a 409. Unknown codes map
// to 500.
func (e *Error) HTTPStatus() int {
	switch e.Err {
	case CodeInvalidRequest,
		CodeInvalidToken,
		CodeAuthenticationDenied,
		CodeAuthorizationDenied,
		CodeNoSession:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrMissingAPIKey          = &Error{Err: CodeInvalidRequest, Description: "missing or invalid X-Api-Key header"}
	ErrUnsupportedContentType = &Error{Err: CodeInvalidRequest, Description: "Content-Type must be application/x-www-form-urlencoded"}
	ErrMissingToken           = &Error{Err: CodeInvalidRequest, Description: "missing required parameter: token"}
	ErrInvalidAction          = &Error{Err: CodeInvalidRequest, Description: "action must be one of LOGIN, ACTION, LOGOUT"}

	ErrInvalidToken         = &Error{Err: CodeInvalidToken, Description: "token must be exactly 32 characters of 0-9A-F"}
	ErrAuthenticationDenied = &Error{Err: CodeAuthenticationDenied, Description: "authentication rejected by the external service"}
	ErrAuthorizationDenied  = &Error{Err: CodeAuthorizationDenied, Description: "action rejected by the external service"}
	ErrNoSession            = &Error{Err: CodeNoSession, Description: "no active session for this token"}
	ErrConflict             = &Error{Err: CodeConflict, Description: "a session already exists for this token"}
	ErrUnknown              = &Error{Err: CodeUnknown, Description: "unknown error"}
)
