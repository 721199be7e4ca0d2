package httptransport

import (
	"encoding/json"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/awmpietro/tracecheck/internal/app"
	"github.com/awmpietro/tracecheck/internal/transport/checkdto"
)

type Handler struct {
	svc app.CheckService
}

func NewHandler(svc app.CheckService) *Handler {
	return &Handler{svc: svc}
}

// Check serves POST /check. A property that does not hold is still a 200;
// 400 means the request could not be evaluated.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in checkdto.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()})
		return
	}

	if in.Debug {
		report, diag, err := h.svc.CheckWithDiagnostics(in.ToApp())
		if err != nil {
			zap.L().Info("check rejected", zap.String("requestid", chimiddleware.GetReqID(r.Context())), zap.Error(err))
			writeJSON(w, http.StatusBadRequest, checkdto.ErrorBody(err))
			return
		}
		writeJSON(w, http.StatusOK, checkdto.CheckResponse{Report: report, Diagnostics: diag})
		return
	}

	report, err := h.svc.Check(in.ToApp())
	if err != nil {
		zap.L().Info("check rejected", zap.String("requestid", chimiddleware.GetReqID(r.Context())), zap.Error(err))
		writeJSON(w, http.StatusBadRequest, checkdto.ErrorBody(err))
		return
	}
	writeJSON(w, http.StatusOK, checkdto.CheckResponse{Report: report})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("write response", zap.Error(err))
	}
}
