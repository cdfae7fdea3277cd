package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/teniee/installment-service/internal/models"
)

// ErrNoProfile is returned when a user has no stored financial profile.
var ErrNoProfile = errors.New("financial profile not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetFinancialProfile retrieves the stored financial snapshot for a user.
func (r *Repository) GetFinancialProfile(userID int64) (*models.FinancialSnapshot, error) {
	snap := &models.FinancialSnapshot{}
	query := `
		SELECT monthly_income, current_balance, age_group, has_credit_card_debt,
		       active_installments, installments_payment, other_obligations, plans_mortgage
		FROM finance.financial_profiles
		WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).
		Scan(&snap.MonthlyIncome, &snap.CurrentBalance, &snap.AgeGroup, &snap.HasCreditCardDebt,
			&snap.ActiveInstallments, &snap.InstallmentsPayment, &snap.OtherObligations, &snap.PlansMortgage)
	if err == sql.ErrNoRows {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load financial profile: %w", err)
	}
	return snap, nil
}

// SaveAssessment stores the summary row of a completed risk assessment.
func (r *Repository) SaveAssessment(userID int64, purchase models.PurchaseRequest, a *models.Assessment) error {
	query := `
		INSERT INTO finance.installment_assessments
			(id, user_id, amount, category, num_payments, annual_rate,
			 risk_level, risk_score, monthly_payment, total_interest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_TIMESTAMP)`
	_, err := r.db.Exec(query,
		a.ID, userID, purchase.Amount, string(purchase.Category), purchase.NumPayments,
		purchase.AnnualRate, string(a.RiskLevel), a.RiskScore, a.MonthlyPayment, a.TotalInterest)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// DailyBudgets loads a user's spending calendar for one month (YYYY-MM).
// Day keys are dates in YYYY-MM-DD form.
func (r *Repository) DailyBudgets(userID int64, month string) (map[string]*models.DayBudget, error) {
	query := `
		SELECT to_char(day, 'YYYY-MM-DD'), spent_total, limit_amount
		FROM finance.daily_budgets
		WHERE user_id = $1 AND to_char(day, 'YYYY-MM') = $2`
	rows, err := r.db.Query(query, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily budgets: %w", err)
	}
	defer rows.Close()

	calendar := make(map[string]*models.DayBudget)
	for rows.Next() {
		var day string
		b := &models.DayBudget{}
		if err := rows.Scan(&day, &b.Total, &b.Limit); err != nil {
			return nil, fmt.Errorf("failed to scan daily budget: %w", err)
		}
		calendar[day] = b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily budgets: %w", err)
	}
	return calendar, nil
}

// SaveDailyBudgets writes back redistributed totals in one transaction.
func (r *Repository) SaveDailyBudgets(userID int64, calendar map[string]*models.DayBudget) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE finance.daily_budgets
		SET spent_total = $1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $2 AND day = $3`
	for day, b := range calendar {
		if _, err := tx.Exec(query, b.Total, userID, day); err != nil {
			return fmt.Errorf("failed to update budget for %s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit daily budgets: %w", err)
	}
	return nil
}

// UsersWithBudgets lists users that have a spending calendar for the month.
func (r *Repository) UsersWithBudgets(month string) ([]int64, error) {
	query := `
		SELECT DISTINCT user_id
		FROM finance.daily_budgets
		WHERE to_char(day, 'YYYY-MM') = $1
		ORDER BY user_id`
	rows, err := r.db.Query(query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget users: %w", err)
	}
	defer rows.Close()

	var users []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read budget users: %w", err)
	}
	return users, nil
}
