package server

import (
	"crypto/subtle"
	"mime"
	"net/http"

	"github.com/nordcodes/session-gateway/internal/serviceerr"
	"github.com/nordcodes/session-gateway/internal/session"
)

const (
	headerAPIKey    = "X-Api-Key"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// gateRequest is a request that passed all syntactic checks. The token may
// still be malformed; its format is a LOGIN concern.
type gateRequest struct {
	Token  string
	Action session.Action
}

// parseGateRequest runs the ordered validation pipeline: API key, content
// type, token presence, action. Each check short-circuits, so the reported
// error is always the first failure.
func parseGateRequest(r *http.Request, apiKey string) (gateRequest, *serviceerr.Error) {
	presented := r.Header.Get(headerAPIKey)
	if subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) != 1 {
		return gateRequest{}, serviceerr.ErrMissingAPIKey
	}

	// Any media type other than the form encoding is rejected, charset
	// parameters aside.
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != contentTypeForm {
		return gateRequest{}, serviceerr.ErrUnsupportedContentType
	}

	if err := r.ParseForm(); err != nil {
		return gateRequest{}, serviceerr.ErrMissingToken
	}

	tok := r.PostFormValue("token")
	if tok == "" {
		return gateRequest{}, serviceerr.ErrMissingToken
	}

	action, ok := session.ParseAction(r.PostFormValue("action"))
	if !ok {
		return gateRequest{}, serviceerr.ErrInvalidAction
	}

	return gateRequest{Token: tok, Action: action}, nil
}
