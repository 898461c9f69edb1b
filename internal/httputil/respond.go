// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP response helpers shared by the gateway
// handlers.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/pdiddy/markitdown-gateway/pkg/types"
)

// WriteJSON encodes v as the response body with the given status code.
// Encoding failures after the header is written can only be logged by
// the caller's middleware; the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError sends the gateway's error envelope: a JSON body with a
// single detail string.
func WriteError(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, types.ErrorResponse{Detail: detail})
}
