package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"movequote/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Mailer sends one transactional email. Failures are caught and logged by
// the orchestrator; they never fail a submission.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type mailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type mailResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// APIMailer calls the transactional email service over HTTP.
type APIMailer struct {
	httpClient *resty.Client
	from       string
	logger     *zap.Logger
}

func NewAPIMailer(baseURL, apiKey, from string, logger *zap.Logger) *APIMailer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &APIMailer{httpClient: client, from: from, logger: logger}
}

var _ Mailer = (*APIMailer)(nil)

func (m *APIMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	var response mailResponse
	resp, err := m.httpClient.R().
		SetContext(ctx).
		SetBody(mailRequest{From: m.from, To: []string{to}, Subject: subject, HTML: htmlBody}).
		SetResult(&response).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("failed to call mail API: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode(), resp.String())
	}

	m.logger.Info("Sent email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("mail_id", response.ID),
	)
	return nil
}

// NopMailer is used when no mail API key is configured.
type NopMailer struct {
	logger *zap.Logger
}

func NewNopMailer(logger *zap.Logger) *NopMailer { return &NopMailer{logger: logger} }

var _ Mailer = (*NopMailer)(nil)

func (m *NopMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.logger.Info("Mail sending disabled, skipping email",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// NotificationBody renders the internal "new quote request" email.
func NotificationBody(rec domain.QuoteRecord, phase domain.SubmissionPhase) string {
	var b strings.Builder
	if phase == domain.PhaseFinal {
		b.WriteString("<h2>Moving quote request (completed)</h2>")
	} else {
		b.WriteString("<h2>Moving quote request (initial details)</h2>")
	}
	b.WriteString("<table>")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<tr><td><b>%s</b></td><td>%s</td></tr>", label, html.EscapeString(value))
	}
	row("Name", rec.Name)
	row("Phone", displayPhone(rec))
	row("Email", rec.Email)
	row("Move scope", string(rec.MoveScope))
	row("Moving date", rec.MovingDate)
	row("Home type", rec.HomeTypeDetails)
	row("Vehicles", rec.VehicleSelection)
	row("Requirements", rec.Requirements)
	switch rec.MoveScope {
	case domain.ScopeLocal:
		row("Current address", rec.CurrentAddress)
		row("New address", rec.NewAddress)
	case domain.ScopeDomestic:
		row("Current city", rec.CurrentCity)
		row("New city", rec.NewCity)
	case domain.ScopeInternational:
		row("From", joinPlace(rec.FromCity, rec.CurrentCountry))
		row("To", joinPlace(rec.ToCity, rec.NewCountry))
	}
	row("Estimated cost", rec.EstimatedCost)
	row("Distance", rec.Distance)
	row("Reference", rec.SessionID)
	b.WriteString("</table>")
	return b.String()
}

// ConfirmationBody renders the customer-facing confirmation email.
func ConfirmationBody(rec domain.QuoteRecord) string {
	name := rec.Name
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your moving quote request"+
			" and will get back to you shortly.</p>"+
			"<p>Your reference: %s</p>",
		html.EscapeString(name), html.EscapeString(rec.SessionID),
	)
}

func joinPlace(city, country string) string {
	switch {
	case city == "":
		return country
	case country == "":
		return city
	default:
		return city + ", " + country
	}
}

func displayPhone(rec domain.QuoteRecord) string {
	if rec.Phone != "" {
		return rec.Phone
	}
	return strings.TrimSpace(rec.PhoneCountryCode + " " + rec.PhoneNumber)
}
