package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/glockstar/fanpage/pkg/utils/errors"
	"github.com/m-mizutani/goerr/v2"
)

// resultResponse is the uniform {success, error} shape every API route
// serializes to. Nothing propagates to the client as an unhandled fault.
type resultResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// identityResponse reports the Reddit authentication status of the session.
type identityResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	Error         string `json:"error,omitempty"`
}

// authURLResponse carries the provider authorization URL.
type authURLResponse struct {
	Success bool   `json:"success"`
	AuthURL string `json:"auth_url,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errors.Handle(ctx, goerr.Wrap(err, "failed to encode response"))
	}
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, data any) {
	writeJSON(ctx, w, http.StatusOK, &resultResponse{Success: true, Data: data})
}

func writeFailure(ctx context.Context, w http.ResponseWriter, message string) {
	writeJSON(ctx, w, http.StatusOK, &resultResponse{Success: false, Error: message})
}
