package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teniee/installment-service/internal/config"
	"github.com/teniee/installment-service/internal/models"
	"github.com/teniee/installment-service/internal/repository"
	"github.com/teniee/installment-service/internal/risk"
)

type fakeStore struct {
	profile     *models.FinancialSnapshot
	profileErr  error
	saved       []*models.Assessment
	saveErr     error
	calendar    map[string]*models.DayBudget
	savedBudget map[string]*models.DayBudget
	users       []int64
}

func (f *fakeStore) GetFinancialProfile(userID int64) (*models.FinancialSnapshot, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeStore) SaveAssessment(userID int64, purchase models.PurchaseRequest, a *models.Assessment) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, a)
	return nil
}

func (f *fakeStore) DailyBudgets(userID int64, month string) (map[string]*models.DayBudget, error) {
	return f.calendar, nil
}

func (f *fakeStore) SaveDailyBudgets(userID int64, calendar map[string]*models.DayBudget) error {
	f.savedBudget = calendar
	return nil
}

func (f *fakeStore) UsersWithBudgets(month string) ([]int64, error) {
	return f.users, nil
}

type fakeRates struct {
	rate decimal.Decimal
	err  error
}

func (f *fakeRates) ReferenceRate() (decimal.Decimal, error) {
	return f.rate, f.err
}

type fakeNotifier struct {
	alerts int
	err    error
}

func (f *fakeNotifier) SendRiskAlert(to string, userID int64, a *models.Assessment, amount decimal.Decimal) error {
	f.alerts++
	return f.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestService(store *fakeStore, rates *fakeRates, notifier *fakeNotifier) *Service {
	return NewService(
		store, rates, nil, notifier,
		risk.NewEngine(risk.DefaultThresholds()),
		testLogger(),
		&config.Config{AlertEmail: "advisors@example.com"},
	)
}

func safePurchase() models.PurchaseRequest {
	return models.PurchaseRequest{
		Amount:      decimal.NewFromInt(600),
		Category:    models.CategoryFurniture,
		NumPayments: 12,
		AnnualRate:  decimal.Zero,
	}
}

func wealthySnapshot() *models.FinancialSnapshot {
	return &models.FinancialSnapshot{
		MonthlyIncome:  decimal.NewFromInt(5000),
		CurrentBalance: decimal.NewFromInt(8000),
		AgeGroup:       models.AgeGroup35To44,
	}
}

func TestEvaluateInstallment_UsesSuppliedSnapshot(t *testing.T) {
	store := &fakeStore{profileErr: repository.ErrNoProfile}
	svc := newTestService(store, &fakeRates{}, nil)

	a, err := svc.EvaluateInstallment(1, safePurchase(), wealthySnapshot())

	require.NoError(t, err, "a supplied snapshot must bypass the profile lookup")
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, models.RiskGreen, a.RiskLevel)
	require.Len(t, store.saved, 1)
	assert.Equal(t, a.ID, store.saved[0].ID)
}

func TestEvaluateInstallment_FallsBackToStoredProfile(t *testing.T) {
	store := &fakeStore{profile: wealthySnapshot()}
	svc := newTestService(store, &fakeRates{}, nil)

	a, err := svc.EvaluateInstallment(1, safePurchase(), nil)

	require.NoError(t, err)
	assert.Equal(t, models.RiskGreen, a.RiskLevel)
}

func TestEvaluateInstallment_NoProfileAnywhere(t *testing.T) {
	store := &fakeStore{profileErr: repository.ErrNoProfile}
	svc := newTestService(store, &fakeRates{}, nil)

	_, err := svc.EvaluateInstallment(1, safePurchase(), nil)

	assert.True(t, errors.Is(err, ErrProfileNotFound))
}

func TestEvaluateInstallment_RedAssessmentTriggersAlert(t *testing.T) {
	notifier := &fakeNotifier{}
	store := &fakeStore{}
	svc := newTestService(store, &fakeRates{}, notifier)

	snap := wealthySnapshot()
	snap.HasCreditCardDebt = true

	a, err := svc.EvaluateInstallment(1, safePurchase(), snap)

	require.NoError(t, err)
	assert.Equal(t, models.RiskRed, a.RiskLevel)
	assert.Equal(t, 1, notifier.alerts)
}

func TestEvaluateInstallment_AlertFailureDoesNotFailCall(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc := newTestService(&fakeStore{}, &fakeRates{}, notifier)

	snap := wealthySnapshot()
	snap.HasCreditCardDebt = true

	_, err := svc.EvaluateInstallment(1, safePurchase(), snap)

	assert.NoError(t, err)
	assert.Equal(t, 1, notifier.alerts)
}

func TestEvaluateInstallment_GreenDoesNotAlert(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(&fakeStore{}, &fakeRates{}, notifier)

	_, err := svc.EvaluateInstallment(1, safePurchase(), wealthySnapshot())

	require.NoError(t, err)
	assert.Equal(t, 0, notifier.alerts)
}

func TestReferenceRate_PassesThroughWithoutCache(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeRates{rate: decimal.NewFromFloat(14.5)}, nil)

	rate, err := svc.ReferenceRate(context.Background())

	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(14.5)))
}

func TestRedistributeMonth_PersistsUpdatedCalendar(t *testing.T) {
	store := &fakeStore{
		calendar: map[string]*models.DayBudget{
			"2026-07-01": {Total: decimal.NewFromInt(45), Limit: decimal.NewFromInt(30)},
			"2026-07-02": {Total: decimal.NewFromInt(10), Limit: decimal.NewFromInt(30)},
		},
	}
	svc := newTestService(store, &fakeRates{}, nil)

	updated, transfers, err := svc.RedistributeMonth(1, "2026-07")

	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.True(t, updated["2026-07-01"].Total.Equal(decimal.NewFromInt(30)))
	assert.True(t, updated["2026-07-02"].Total.Equal(decimal.NewFromInt(25)))
	require.NotNil(t, store.savedBudget, "updated calendar must be persisted")
}

func TestRedistributeMonth_EmptyCalendarIsANoop(t *testing.T) {
	store := &fakeStore{calendar: map[string]*models.DayBudget{}}
	svc := newTestService(store, &fakeRates{}, nil)

	_, transfers, err := svc.RedistributeMonth(1, "2026-07")

	require.NoError(t, err)
	assert.Empty(t, transfers)
	assert.Nil(t, store.savedBudget, "nothing to persist for an empty month")
}
