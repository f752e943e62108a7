package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sand/wallet-dashboard/backend/internal/core/ports"
	"github.com/sand/wallet-dashboard/backend/internal/gateway"
)

var _ ports.TransactionGateway = (*gateway.Client)(nil)

// transportFailureMessage is all the dashboard learns about a transport
// failure; the cause goes to the log.
const transportFailureMessage = "upstream request failed"

type HTTPHandler struct {
	logger   *slog.Logger
	upstream ports.TransactionGateway
}

func NewHTTPHandler(logger *slog.Logger, upstream ports.TransactionGateway) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger,
		upstream: upstream,
	}
}

func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Transactions
	router.HandleFunc("/api/transactions/all", h.GetAllTransactions).Methods(http.MethodGet)
}

func (h *HTTPHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// GetAllTransactions relays find-by-user. A successful payload is written as
// received, including fields the dashboard does not use.
func (h *HTTPHandler) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	payload, err := h.upstream.FindByUser(r.Context())
	if err != nil {
		h.writeUpstreamFailure(w, r, err)
		return
	}

	WriteRawJSON(w, http.StatusOK, payload)
}

// writeUpstreamFailure mirrors upstream errors unchanged and hides everything
// else behind a generic 500.
func (h *HTTPHandler) writeUpstreamFailure(w http.ResponseWriter, r *http.Request, err error) {
	if upErr, ok := gateway.AsUpstreamError(err); ok {
		h.logger.WarnContext(r.Context(), "Upstream error",
			"path", r.URL.Path,
			"upstream_path", upErr.Path,
			"status", upErr.StatusCode,
			"request_id", RequestIDFromContext(r.Context()))
		WriteRawJSON(w, upErr.StatusCode, upErr.Body)
		return
	}

	h.logger.ErrorContext(r.Context(), "Error in "+r.URL.Path,
		"error", err,
		"transport", gateway.IsTransportError(err),
		"request_id", RequestIDFromContext(r.Context()))
	WriteError(w, http.StatusInternalServerError, transportFailureMessage)
}

// WriteRawJSON writes body verbatim with a JSON content type.
func WriteRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// WriteJSON encodes data as the response body.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes {"error": message}.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}
