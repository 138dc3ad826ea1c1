package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/middleware"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/service"
)

type TransactionHandler struct {
	transactions *service.TransactionService
}

func NewTransactionHandler(transactions *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

func (h *TransactionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/summary", h.Summary)
	r.Get("/{transactionID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleAccountant))
		r.Post("/", h.Create)
		r.Put("/{transactionID}", h.Update)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
		r.Post("/{transactionID}/approve", h.Approve)
		r.Post("/{transactionID}/reject", h.Reject)
		r.Delete("/{transactionID}", h.Delete)
	})

	return r
}

// GET /transactions
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)
	filter := model.TransactionFilter{Limit: page.Limit, Offset: page.Offset}

	query := r.URL.Query()
	if value := query.Get("type"); value != "" {
		txnType := model.TransactionType(value)
		filter.Type = &txnType
	}
	if value := query.Get("status"); value != "" {
		status := model.TransactionStatus(value)
		filter.Status = &status
	}
	if value := query.Get("categoryId"); value != "" {
		filter.CategoryID = &value
	}
	if value := query.Get("clientId"); value != "" {
		filter.ClientID = &value
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	filter.From, filter.To = from, to

	txns, total, err := h.transactions.ListTransactions(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse{
		Data:   txns,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GET /transactions/summary
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.transactions.Summary(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// GET /transactions/{transactionID}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	txn, err := h.transactions.GetTransaction(r.Context(), chi.URLParam(r, "transactionID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

type createTransactionRequest struct {
	TransactionNumber string                `json:"transactionNumber,omitempty"`
	Type              model.TransactionType `json:"type"`
	Amount            float64               `json:"amount"`
	Currency          string                `json:"currency,omitempty"`
	Description       *string               `json:"description,omitempty"`
	CategoryID        *string               `json:"categoryId,omitempty"`
	Date              time.Time             `json:"date,omitempty"`
	DueDate           *time.Time            `json:"dueDate,omitempty"`
	PaymentMethod     *string               `json:"paymentMethod,omitempty"`
	Reference         *string               `json:"reference,omitempty"`
	ClientID          *string               `json:"clientId,omitempty"`
	EmployeeID        *string               `json:"employeeId,omitempty"`
	Tax               *json.RawMessage      `json:"tax,omitempty"`
	Tags              *json.RawMessage      `json:"tags,omitempty"`
	Notes             *string               `json:"notes,omitempty"`
}

// POST /transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	txn, err := h.transactions.CreateTransaction(r.Context(), model.CreateTransactionParams{
		TransactionNumber: req.TransactionNumber,
		Type:              req.Type,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		Date:              req.Date,
		DueDate:           req.DueDate,
		PaymentMethod:     req.PaymentMethod,
		Reference:         req.Reference,
		ClientID:          req.ClientID,
		EmployeeID:        req.EmployeeID,
		Tax:               req.Tax,
		Tags:              req.Tags,
		Notes:             req.Notes,
		CreatedBy:         actor.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, txn)
}

type updateTransactionRequest struct {
	Amount        *float64         `json:"amount,omitempty"`
	Description   *string          `json:"description,omitempty"`
	CategoryID    *string          `json:"categoryId,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	DueDate       *time.Time       `json:"dueDate,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
	Reference     *string          `json:"reference,omitempty"`
	Tax           *json.RawMessage `json:"tax,omitempty"`
	Tags          *json.RawMessage `json:"tags,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// PUT /transactions/{transactionID}
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	txn, err := h.transactions.UpdateTransaction(r.Context(), chi.URLParam(r, "transactionID"), model.UpdateTransactionParams{
		Amount:        req.Amount,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Date:          req.Date,
		DueDate:       req.DueDate,
		PaymentMethod: req.PaymentMethod,
		Reference:     req.Reference,
		Tax:           req.Tax,
		Tags:          req.Tags,
		Notes:         req.Notes,
		UpdatedBy:     actor.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

// POST /transactions/{transactionID}/approve
func (h *TransactionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	txn, err := h.transactions.Approve(r.Context(), chi.URLParam(r, "transactionID"), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

// POST /transactions/{transactionID}/reject
func (h *TransactionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	txn, err := h.transactions.Reject(r.Context(), chi.URLParam(r, "transactionID"), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

// DELETE /transactions/{transactionID}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.transactions.DeleteTransaction(r.Context(), chi.URLParam(r, "transactionID")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// parseDateRange reads optional from/to query params in YYYY-MM-DD form.
func parseDateRange(r *http.Request) (*time.Time, *time.Time, error) {
	parse := func(name string) (*time.Time, error) {
		value := r.URL.Query().Get(name)
		if value == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil, apperrors.InvalidInput(name, "must be YYYY-MM-DD")
		}
		return &t, nil
	}

	from, err := parse("from")
	if err != nil {
		return nil, nil, err
	}
	to, err := parse("to")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
