package transaction

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

type Handler struct {
	store *transaction.Store
}

func NewHandler(store *transaction.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{userId}", h.listByUser)
	r.Post("/{userId}", h.create)
	r.Get("/{userId}/sum", h.sum)
	r.Get("/{userId}/report", h.report)
	r.Get("/{userId}/{transactionId}", h.get)
}

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toRecordList(h.store.Data()))
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toResponseList(h.store.GetByUserID(chi.URLParam(r, "userId"))))
}

func (h *Handler) sum(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	writeJSON(w, http.StatusOK, sumResponse{
		UserID: userID,
		Sum:    number(h.store.GetSumByUserID(userID)),
	})
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toWeekList(h.store.GetReportByUserID(chi.URLParam(r, "userId"))))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.store.Find(chi.URLParam(r, "userId"), chi.URLParam(r, "transactionId"))
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := transaction.AddParams{
		Amount:      req.Amount,
		Description: req.Description,
	}

	if req.Date != "" {
		date, err := transaction.ParseDate(req.Date)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		params.Date = date
	}

	tx, err := h.store.Add(chi.URLParam(r, "userId"), params)
	if err != nil {
		if errors.Is(err, transaction.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
