package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/teniee/installment-service/internal/budget"
	"github.com/teniee/installment-service/internal/cache"
	"github.com/teniee/installment-service/internal/config"
	"github.com/teniee/installment-service/internal/models"
	"github.com/teniee/installment-service/internal/repository"
	"github.com/teniee/installment-service/internal/risk"
)

// ErrProfileNotFound is returned when an evaluation needs a financial
// snapshot, none was supplied, and the user has no stored profile.
var ErrProfileNotFound = repository.ErrNoProfile

// Store is the persistence surface the service needs.
type Store interface {
	GetFinancialProfile(userID int64) (*models.FinancialSnapshot, error)
	SaveAssessment(userID int64, purchase models.PurchaseRequest, a *models.Assessment) error
	DailyBudgets(userID int64, month string) (map[string]*models.DayBudget, error)
	SaveDailyBudgets(userID int64, calendar map[string]*models.DayBudget) error
	UsersWithBudgets(month string) ([]int64, error)
}

// RateSource supplies the benchmark APR used when a request omits one.
type RateSource interface {
	ReferenceRate() (decimal.Decimal, error)
}

// Notifier delivers high-risk assessment alerts.
type Notifier interface {
	SendRiskAlert(to string, userID int64, a *models.Assessment, amount decimal.Decimal) error
}

// Service handles business logic
type Service struct {
	store    Store
	rates    RateSource
	cache    *cache.Cache
	notifier Notifier
	engine   *risk.Engine
	log      *logrus.Logger
	cfg      *config.Config
}

// NewService initializes a new service. cache and notifier may be nil.
func NewService(store Store, rates RateSource, c *cache.Cache, notifier Notifier, engine *risk.Engine, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		store:    store,
		rates:    rates,
		cache:    c,
		notifier: notifier,
		engine:   engine,
		log:      log,
		cfg:      cfg,
	}
}

// EvaluateInstallment runs the full risk assessment for one purchase.
// When snap is nil the user's stored profile is used; without either the
// call fails with ErrProfileNotFound.
func (s *Service) EvaluateInstallment(userID int64, purchase models.PurchaseRequest, snap *models.FinancialSnapshot) (*models.Assessment, error) {
	if snap == nil {
		stored, err := s.store.GetFinancialProfile(userID)
		if err != nil {
			return nil, err
		}
		snap = stored
	}

	assessment := s.engine.Evaluate(purchase, *snap)
	assessment.ID = uuid.NewString()

	if err := s.store.SaveAssessment(userID, purchase, &assessment); err != nil {
		return nil, err
	}

	s.log.Infof("Assessment %s for user %d: %s (score %d)",
		assessment.ID, userID, assessment.RiskLevel, assessment.RiskScore)

	// Alerts are best-effort; a mail outage must not fail the evaluation.
	if assessment.RiskLevel == models.RiskRed && s.notifier != nil && s.cfg.AlertEmail != "" {
		if err := s.notifier.SendRiskAlert(s.cfg.AlertEmail, userID, &assessment, purchase.Amount); err != nil {
			s.log.Warnf("Risk alert for assessment %s not delivered: %v", assessment.ID, err)
		}
	}

	return &assessment, nil
}

// ReferenceRate returns the benchmark APR, consulting the cache first.
func (s *Service) ReferenceRate(ctx context.Context) (decimal.Decimal, error) {
	if rate, ok := s.cache.ReferenceRate(ctx); ok {
		return rate, nil
	}

	rate, err := s.rates.ReferenceRate()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch reference rate: %w", err)
	}

	s.cache.SetReferenceRate(ctx, rate)
	return rate, nil
}

// MonthBudgets returns a user's stored spending calendar for a month.
func (s *Service) MonthBudgets(userID int64, month string) (map[string]*models.DayBudget, error) {
	return s.store.DailyBudgets(userID, month)
}

// RedistributeMonth reconciles a user's stored calendar for one month and
// persists the updated totals.
func (s *Service) RedistributeMonth(userID int64, month string) (map[string]*models.DayBudget, []models.Transfer, error) {
	calendar, err := s.store.DailyBudgets(userID, month)
	if err != nil {
		return nil, nil, err
	}
	if len(calendar) == 0 {
		return calendar, nil, nil
	}

	updated, transfers := budget.NewRedistributor(calendar).Redistribute()

	if err := s.store.SaveDailyBudgets(userID, updated); err != nil {
		return nil, nil, err
	}

	s.log.Infof("Redistributed budget for user %d, month %s: %d transfers", userID, month, len(transfers))
	return updated, transfers, nil
}

// RedistributeAll runs the month-end reconciliation for every user with a
// calendar for the month. Per-user failures are logged and skipped.
func (s *Service) RedistributeAll(month string) {
	users, err := s.store.UsersWithBudgets(month)
	if err != nil {
		s.log.Errorf("Failed to list users for redistribution: %v", err)
		return
	}

	for _, userID := range users {
		if _, _, err := s.RedistributeMonth(userID, month); err != nil {
			s.log.Errorf("Redistribution failed for user %d: %v", userID, err)
		}
	}
	s.log.Infof("Month-end redistribution finished for %s (%d users)", month, len(users))
}
