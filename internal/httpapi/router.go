package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jaydenbeard/gotham-ecdsa/internal/auth"
	"github.com/jaydenbeard/gotham-ecdsa/internal/ecdsaproto"
	"github.com/jaydenbeard/gotham-ecdsa/internal/metrics"
	"github.com/jaydenbeard/gotham-ecdsa/internal/middleware"
)

// NewRouter assembles the full route table: health and metrics endpoints
// are public, every /ecdsa/... route requires a valid bearer token.
func NewRouter(orch *ecdsaproto.Orchestrator, verifier *auth.Verifier) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	ecdsaRoutes := router.PathPrefix("/ecdsa").Subrouter()
	ecdsaRoutes.Use(middleware.AuthMiddleware(verifier, nil))

	ecdsaRoutes.HandleFunc("/keygen/first", KeygenFirstHandler(orch)).Methods("POST")
	ecdsaRoutes.HandleFunc("/keygen/{id}/second", KeygenSecondHandler(orch)).Methods("POST")
	ecdsaRoutes.HandleFunc("/keygen/{id}/third", KeygenThirdHandler(orch)).Methods("POST")
	ecdsaRoutes.HandleFunc("/keygen/{id}/fourth", KeygenFourthHandler(orch)).Methods("POST")
	ecdsaRoutes.HandleFunc("/keygen/{id}/chaincode/first", ChainCodeFirstHandler(orch)).Methods("POST")
	ecdsaRoutes.HandleFunc("/keygen/{id}/chaincode/second", ChainCodeSecondHandler(orch)).Methods("POST")

	ecdsaRoutes.HandleFunc("/sign/{id}/first", SignFirstHandler(orch)).Methods("POST")
	ecdsaRoutes.HandleFunc("/sign/{id}/second", SignSecondHandler(orch)).Methods("POST")

	ecdsaRoutes.HandleFunc("/rotate/{id}/first", RotateFirstHandler(orch)).Methods("POST")
	ecdsaRoutes.HandleFunc("/rotate/{id}/second", RotateSecondHandler(orch)).Methods("POST")
	ecdsaRoutes.HandleFunc("/rotate/{id}/third", RotateThirdHandler(orch)).Methods("POST")
	ecdsaRoutes.HandleFunc("/rotate/{id}/fourth", RotateFourthHandler(orch)).Methods("POST")

	ecdsaRoutes.HandleFunc("/{id}/recover", RecoverHandler(orch)).Methods("POST")
	ecdsaRoutes.HandleFunc("/{id}", DeleteMasterKeyHandler(orch)).Methods("DELETE")

	return metrics.MetricsMiddleware(router)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
