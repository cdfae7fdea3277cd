package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/teniee/installment-service/internal/config"
	"github.com/teniee/installment-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendRiskAlert notifies the advisor inbox about a high-risk assessment.
func (s *Sender) SendRiskAlert(to string, userID int64, a *models.Assessment, amount decimal.Decimal) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("%s risk assessment for user %d", a.RiskLevel, userID)

	body := fmt.Sprintf(
		"User %d requested an installment purchase of %s USD.\n\n"+
			"Risk level: %s (score %d)\n"+
			"Monthly payment: %s USD\n"+
			"Verdict: %s\n"+
			"Assessed at: %s\n",
		userID, amount.Round(2), a.RiskLevel, a.RiskScore,
		a.MonthlyPayment, a.Verdict, time.Now().Format("2006-01-02 15:04:05"),
	)
	for _, f := range a.Factors {
		if f.Severity == models.SeverityHigh {
			body += fmt.Sprintf("- %s\n", f.Message)
		}
	}
	e.Text = []byte(body)

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send risk alert to %s: %v", to, err)
		return fmt.Errorf("failed to send risk alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
