package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jaydenbeard/gotham-ecdsa/internal/ecdsaproto"
	"github.com/jaydenbeard/gotham-ecdsa/internal/metrics"
	"github.com/jaydenbeard/gotham-ecdsa/internal/middleware"
	"github.com/jaydenbeard/gotham-ecdsa/internal/mpc"
)

func customerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.CustomerID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing authenticated customer"})
		return "", false
	}
	return id, true
}

// KeygenFirstHandler handles POST /ecdsa/keygen/first.
func KeygenFirstHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}

		start := time.Now()
		sessionID, msg, err := orch.KeygenFirst(r.Context(), cust)
		if err != nil {
			if _, isActive := err.(*ecdsaproto.AlreadyActiveError); isActive {
				metrics.RecordActiveShareRejection()
			}
			writeError(w, "keygen", "first", err)
			return
		}
		metrics.RecordProtocolRound("keygen", "first", time.Since(start))

		writeJSON(w, http.StatusOK, []interface{}{sessionID, msg})
	}
}

// KeygenSecondHandler handles POST /ecdsa/keygen/{id}/second.
func KeygenSecondHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		var proof mpc.DLogProof
		if err := decodeBody(r, &proof); err != nil {
			writeError(w, "keygen", "second", err)
			return
		}

		start := time.Now()
		resp, err := orch.KeygenSecond(r.Context(), cust, sessionID, &proof)
		if err != nil {
			writeError(w, "keygen", "second", err)
			return
		}
		metrics.RecordProtocolRound("keygen", "second", time.Since(start))

		writeJSON(w, http.StatusOK, resp)
	}
}

// KeygenThirdHandler handles POST /ecdsa/keygen/{id}/third.
func KeygenThirdHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		var party2First mpc.Party2PDLFirstMessage
		if err := decodeBody(r, &party2First); err != nil {
			writeError(w, "keygen", "third", err)
			return
		}

		start := time.Now()
		resp, err := orch.KeygenThird(r.Context(), cust, sessionID, &party2First)
		if err != nil {
			writeError(w, "keygen", "third", err)
			return
		}
		metrics.RecordProtocolRound("keygen", "third", time.Since(start))

		writeJSON(w, http.StatusOK, resp)
	}
}

// KeygenFourthHandler handles POST /ecdsa/keygen/{id}/fourth.
func KeygenFourthHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		var party2Second mpc.Party2PDLSecondMessage
		if err := decodeBody(r, &party2Second); err != nil {
			writeError(w, "keygen", "fourth", err)
			return
		}

		start := time.Now()
		resp, err := orch.KeygenFourth(r.Context(), cust, sessionID, &party2Second)
		if err != nil {
			writeError(w, "keygen", "fourth", err)
			return
		}
		metrics.RecordProtocolRound("keygen", "fourth", time.Since(start))

		writeJSON(w, http.StatusOK, resp)
	}
}

// ChainCodeFirstHandler handles POST /ecdsa/keygen/{id}/chaincode/first.
func ChainCodeFirstHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		start := time.Now()
		resp, err := orch.ChainCodeFirst(r.Context(), cust, sessionID)
		if err != nil {
			writeError(w, "keygen", "chaincode_first", err)
			return
		}
		metrics.RecordProtocolRound("keygen", "chaincode_first", time.Since(start))

		writeJSON(w, http.StatusOK, resp)
	}
}

// ChainCodeSecondHandler handles POST /ecdsa/keygen/{id}/chaincode/second.
func ChainCodeSecondHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		var proof mpc.DLogProof
		if err := decodeBody(r, &proof); err != nil {
			writeError(w, "keygen", "chaincode_second", err)
			return
		}

		start := time.Now()
		resp, err := orch.ChainCodeSecond(r.Context(), cust, sessionID, &proof)
		if err != nil {
			writeError(w, "keygen", "chaincode_second", err)
			return
		}
		metrics.RecordProtocolRound("keygen", "chaincode_second", time.Since(start))

		writeJSON(w, http.StatusOK, resp)
	}
}

// SignFirstHandler handles POST /ecdsa/sign/{id}/first.
func SignFirstHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		var party2Msg ecdsaproto.Party2EphKeyGenFirstMsg
		if err := decodeBody(r, &party2Msg); err != nil {
			writeError(w, "sign", "first", err)
			return
		}

		start := time.Now()
		resp, err := orch.SignFirst(r.Context(), cust, sessionID, &party2Msg)
		if err != nil {
			writeError(w, "sign", "first", err)
			return
		}
		metrics.RecordProtocolRound("sign", "first", time.Since(start))

		writeJSON(w, http.StatusOK, resp)
	}
}

// SignSecondHandler handles POST /ecdsa/sign/{id}/second.
func SignSecondHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		var req ecdsaproto.SignSecondMsgRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, "sign", "second", err)
			return
		}

		start := time.Now()
		resp, err := orch.SignSecond(r.Context(), cust, sessionID, &req)
		if err != nil {
			writeError(w, "sign", "second", err)
			return
		}
		metrics.RecordProtocolRound("sign", "second", time.Since(start))

		writeJSON(w, http.StatusOK, resp)
	}
}

// RotateFirstHandler handles POST /ecdsa/rotate/{id}/first.
func RotateFirstHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		start := time.Now()
		resp, err := orch.RotateFirst(r.Context(), cust, sessionID)
		if err != nil {
			writeError(w, "rotate", "first", err)
			return
		}
		metrics.RecordProtocolRound("rotate", "first", time.Since(start))

		writeJSON(w, http.StatusOK, resp)
	}
}

// RotateSecondHandler handles POST /ecdsa/rotate/{id}/second.
func RotateSecondHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		var party2CoinFlip ecdsaproto.Party2CoinFlipFirst
		if err := decodeBody(r, &party2CoinFlip); err != nil {
			writeError(w, "rotate", "second", err)
			return
		}

		start := time.Now()
		resp, err := orch.RotateSecond(r.Context(), cust, sessionID, &party2CoinFlip)
		if err != nil {
			writeError(w, "rotate", "second", err)
			return
		}
		metrics.RecordProtocolRound("rotate", "second", time.Since(start))

		writeJSON(w, http.StatusOK, []interface{}{resp.CoinFlip, resp.Rotation})
	}
}

// RotateThirdHandler handles POST /ecdsa/rotate/{id}/third.
func RotateThirdHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		var party2First mpc.Party2PDLFirstMessage
		if err := decodeBody(r, &party2First); err != nil {
			writeError(w, "rotate", "third", err)
			return
		}

		start := time.Now()
		resp, err := orch.RotateThird(r.Context(), cust, sessionID, &party2First)
		if err != nil {
			writeError(w, "rotate", "third", err)
			return
		}
		metrics.RecordProtocolRound("rotate", "third", time.Since(start))

		writeJSON(w, http.StatusOK, resp)
	}
}

// RotateFourthHandler handles POST /ecdsa/rotate/{id}/fourth.
func RotateFourthHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		var party2Second mpc.Party2PDLSecondMessage
		if err := decodeBody(r, &party2Second); err != nil {
			writeError(w, "rotate", "fourth", err)
			return
		}

		start := time.Now()
		resp, err := orch.RotateFourth(r.Context(), cust, sessionID, &party2Second)
		if err != nil {
			writeError(w, "rotate", "fourth", err)
			return
		}
		metrics.RecordProtocolRound("rotate", "fourth", time.Since(start))

		writeJSON(w, http.StatusOK, resp)
	}
}

// DeleteMasterKeyHandler handles DELETE /ecdsa/{id}: flags the session's
// MasterKey as deleted so the active-share guard frees up the customer for
// a fresh key generation.
func DeleteMasterKeyHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		start := time.Now()
		if err := orch.DeleteMasterKey(r.Context(), cust, sessionID); err != nil {
			writeError(w, "delete", "delete", err)
			return
		}
		metrics.RecordProtocolRound("delete", "delete", time.Since(start))

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// RecoverHandler handles POST /ecdsa/{id}/recover.
func RecoverHandler(orch *ecdsaproto.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cust, ok := customerID(w, r)
		if !ok {
			return
		}
		sessionID := mux.Vars(r)["id"]

		start := time.Now()
		pos, err := orch.Recover(r.Context(), cust, sessionID)
		if err != nil {
			writeError(w, "recover", "recover", err)
			return
		}
		metrics.RecordProtocolRound("recover", "recover", time.Since(start))

		writeJSON(w, http.StatusOK, pos)
	}
}
