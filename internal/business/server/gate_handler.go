package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	slogctx "github.com/veqryn/slog-context"

	"github.com/nordcodes/session-gateway/internal/config"
	"github.com/nordcodes/session-gateway/internal/serviceerr"
	"github.com/nordcodes/session-gateway/internal/session"
)

const (
	resultOK    = "OK"
	resultError = "ERROR"
)

// gateResponse is the JSON body of every gateway response.
type gateResponse struct {
	Result  string `json:"result"`
	Message string `json:"message,omitempty"`
}

// gateHandlerFunc returns the handler for POST /endpoint. Validation happens
// before any session or authority work, so malformed requests never produce
// an outbound call.
func gateHandlerFunc(cfg *config.Config, manager *session.Manager) http.HandlerFunc {
	apiKey := cfg.Gateway.APIKeyParsed

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		req, verr := parseGateRequest(r, apiKey)
		if verr != nil {
			slogctx.Info(ctx, "Rejected malformed request", "reason", verr.Error())
			writeError(ctx, w, verr)

			return
		}

		ctx = slogctx.With(ctx,
			"action", string(req.Action),
			"token", session.Redact(req.Token),
		)

		var err error

		switch req.Action {
		case session.ActionLogin:
			err = manager.Login(ctx, req.Token)
		case session.ActionAction:
			err = manager.Action(ctx, req.Token)
		case session.ActionLogout:
			err = manager.Logout(ctx, req.Token)
		}

		if err != nil {
			writeError(ctx, w, err)

			return
		}

		writeJSON(ctx, w, http.StatusOK, gateResponse{Result: resultOK})
	}
}

// writeError renders any gateway failure as a result: ERROR body with the
// status of its service error. Errors outside the taxonomy surface as the
// opaque 500, which is never expected in normal operation.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	serr := serviceerr.ErrUnknown

	var e *serviceerr.Error
	if errors.As(err, &e) {
		serr = e
	} else {
		slogctx.Error(ctx, "Unexpected gateway failure", "error", err)
	}

	writeJSON(ctx, w, serr.HTTPStatus(), gateResponse{
		Result:  resultError,
		Message: serr.Description,
	})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body gateResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slogctx.Error(ctx, "Writing response body", "error", err)
	}
}
