package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/paycycle/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{userId}/report.xlsx", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	// Buffered so a failed render can still produce a proper error status.
	var buf bytes.Buffer
	if err := h.svc.WriteXLSX(&buf, userID); err != nil {
		slog.Error("failed to render workbook", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report_"+userID+".xlsx"))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}
