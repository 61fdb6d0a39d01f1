// Package httpapi exposes the protocol orchestrator over HTTP: a route
// table binding method, path, and session-id variable to an orchestrator
// entry point, plus the JSON codec for request and response bodies.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jaydenbeard/gotham-ecdsa/internal/ecdsaproto"
	"github.com/jaydenbeard/gotham-ecdsa/internal/metrics"
)

func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("httpapi: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, protocol, round string, err error) {
	status, message, errorClass := classify(err)
	metrics.RecordProtocolError(protocol, round, errorClass)
	writeJSON(w, status, map[string]string{"error": message})
}

// classify maps an orchestrator error to its HTTP status, message, and a
// short class label used in metrics.
func classify(err error) (status int, message string, class string) {
	switch e := err.(type) {
	case *ecdsaproto.AuthError:
		return http.StatusUnauthorized, e.Error(), "auth"
	case *ecdsaproto.NotFoundError:
		return http.StatusBadRequest, e.Error(), "not_found"
	case *ecdsaproto.StorageError:
		return http.StatusInternalServerError, "internal storage error", "storage"
	case *ecdsaproto.CryptoError:
		return http.StatusBadRequest, e.Error(), "crypto"
	case *ecdsaproto.AlreadyActiveError:
		return http.StatusBadRequest, e.Error(), "already_active"
	default:
		return http.StatusBadRequest, "malformed request body", "decode"
	}
}
