package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/teniee/installment-service/internal/amortization"
	"github.com/teniee/installment-service/internal/budget"
	"github.com/teniee/installment-service/internal/models"
	"github.com/teniee/installment-service/internal/service"
)

// Request bounds enforced at the API boundary. The engines themselves only
// guard against division hazards; range validation lives here.
var (
	maxPurchaseAmount = decimal.NewFromInt(50_000)
	maxAnnualRate     = decimal.NewFromInt(50)
)

const (
	minPayments = 2
	maxPayments = 48
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type evaluateRequest struct {
	UserID      int64                     `json:"user_id"`
	Amount      decimal.Decimal           `json:"amount"`
	Category    models.Category           `json:"category"`
	NumPayments int                       `json:"num_payments"`
	AnnualRate  *decimal.Decimal          `json:"annual_rate,omitempty"`
	Snapshot    *models.FinancialSnapshot `json:"snapshot,omitempty"`
}

func validatePurchase(amount decimal.Decimal, category models.Category, numPayments int, annualRate *decimal.Decimal) error {
	if !amount.GreaterThan(decimal.Zero) || amount.GreaterThan(maxPurchaseAmount) {
		return fmt.Errorf("amount must be between 0 and %s", maxPurchaseAmount)
	}
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", category)
	}
	if numPayments < minPayments || numPayments > maxPayments {
		return fmt.Errorf("num_payments must be between %d and %d", minPayments, maxPayments)
	}
	if annualRate != nil && (annualRate.LessThan(decimal.Zero) || annualRate.GreaterThan(maxAnnualRate)) {
		return fmt.Errorf("annual_rate must be between 0 and %s", maxAnnualRate)
	}
	return nil
}

func validateSnapshot(snap *models.FinancialSnapshot) error {
	if !snap.MonthlyIncome.GreaterThan(decimal.Zero) {
		return fmt.Errorf("monthly_income must be positive")
	}
	if snap.CurrentBalance.LessThan(decimal.Zero) {
		return fmt.Errorf("current_balance must not be negative")
	}
	if !snap.AgeGroup.Valid() {
		return fmt.Errorf("unknown age_group %q", snap.AgeGroup)
	}
	if snap.ActiveInstallments < 0 {
		return fmt.Errorf("active_installments must not be negative")
	}
	if snap.InstallmentsPayment.LessThan(decimal.Zero) || snap.OtherObligations.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly obligations must not be negative")
	}
	return nil
}

// EvaluateInstallment assesses the risk of one installment purchase.
func (h *Handler) EvaluateInstallment(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validatePurchase(req.Amount, req.Category, req.NumPayments, req.AnnualRate); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Snapshot != nil {
		if err := validateSnapshot(req.Snapshot); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	purchase := models.PurchaseRequest{
		Amount:      req.Amount,
		Category:    req.Category,
		NumPayments: req.NumPayments,
	}
	if req.AnnualRate != nil {
		purchase.AnnualRate = *req.AnnualRate
	} else {
		rate, err := h.svc.ReferenceRate(r.Context())
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to resolve interest rate: %v", err), http.StatusBadGateway)
			return
		}
		purchase.AnnualRate = rate
	}

	assessment, err := h.svc.EvaluateInstallment(req.UserID, purchase, req.Snapshot)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.log.Errorf("Evaluation failed for user %d: %v", req.UserID, err)
		http.Error(w, "evaluation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

type scheduleRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	NumPayments int             `json:"num_payments"`
	AnnualRate  decimal.Decimal `json:"annual_rate"`
}

type scheduleResponse struct {
	MonthlyPayment decimal.Decimal        `json:"monthly_payment"`
	TotalInterest  decimal.Decimal        `json:"total_interest"`
	Schedule       []models.ScheduleEntry `json:"schedule"`
}

// PaymentSchedule returns the amortization schedule without a risk verdict.
func (h *Handler) PaymentSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validatePurchase(req.Amount, models.CategoryOther, req.NumPayments, &req.AnnualRate); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	monthly, totalInterest, schedule := amortization.Schedule(req.Amount, req.NumPayments, req.AnnualRate)
	writeJSON(w, http.StatusOK, scheduleResponse{
		MonthlyPayment: monthly,
		TotalInterest:  totalInterest,
		Schedule:       schedule,
	})
}

type redistributeRequest struct {
	Calendar map[string]*models.DayBudget `json:"calendar"`
}

type redistributeResponse struct {
	Calendar  map[string]*models.DayBudget `json:"calendar"`
	Transfers []models.Transfer            `json:"transfers"`
}

// RedistributeCalendar reconciles a caller-supplied spending calendar.
// Nothing is persisted; the updated calendar and transfer log come back.
func (h *Handler) RedistributeCalendar(w http.ResponseWriter, r *http.Request) {
	var req redistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Calendar) == 0 {
		http.Error(w, "calendar must not be empty", http.StatusBadRequest)
		return
	}
	for day, b := range req.Calendar {
		if b == nil || b.Total.LessThan(decimal.Zero) || b.Limit.LessThan(decimal.Zero) {
			http.Error(w, fmt.Sprintf("invalid budget for day %q", day), http.StatusBadRequest)
			return
		}
	}

	updated, transfers := budget.NewRedistributor(req.Calendar).Redistribute()
	writeJSON(w, http.StatusOK, redistributeResponse{Calendar: updated, Transfers: transfers})
}

// UserBudget returns a user's stored calendar for the requested month.
func (h *Handler) UserBudget(w http.ResponseWriter, r *http.Request) {
	userID, month, ok := h.userAndMonth(w, r)
	if !ok {
		return
	}

	calendar, err := h.svc.MonthBudgets(userID, month)
	if err != nil {
		h.log.Errorf("Failed to load budget for user %d: %v", userID, err)
		http.Error(w, "failed to load budget", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, redistributeResponse{Calendar: calendar})
}

// RedistributeUserBudget reconciles and persists a user's stored calendar.
func (h *Handler) RedistributeUserBudget(w http.ResponseWriter, r *http.Request) {
	userID, month, ok := h.userAndMonth(w, r)
	if !ok {
		return
	}

	updated, transfers, err := h.svc.RedistributeMonth(userID, month)
	if err != nil {
		h.log.Errorf("Redistribution failed for user %d: %v", userID, err)
		http.Error(w, "redistribution failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, redistributeResponse{Calendar: updated, Transfers: transfers})
}

// ReferenceRate reports the current benchmark APR.
func (h *Handler) ReferenceRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.ReferenceRate(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get reference rate: %v", err), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"annual_rate": rate})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) userAndMonth(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return 0, "", false
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	} else if _, err := time.Parse("2006-01", month); err != nil {
		http.Error(w, "month must be in YYYY-MM form", http.StatusBadRequest)
		return 0, "", false
	}
	return userID, month, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
