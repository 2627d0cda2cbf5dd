package notify

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/lesson-booking/internal/domain/settings"
)

type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends plain-text mail over unauthenticated SMTP.
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(host string, port int, from string) *SMTPSender {
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@lesson-booking.local"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", strings.TrimSpace(host), port),
		from: from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := buildMessage(s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		headerValue(from),
		headerValue(to),
		mime.QEncoding.Encode("utf-8", headerValue(subject)),
		body,
	)
}

// headerValue folds a value onto one line so it cannot start a new header.
func headerValue(v string) string {
	return strings.Join(strings.FieldsFunc(v, func(r rune) bool {
		return r == '\r' || r == '\n'
	}), " ")
}

// LogSender writes messages to the log instead of sending them. Used when no
// SMTP host is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(to, subject, body string) error {
	s.log.Info("email (not sent, smtp disabled)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)),
	)
	return nil
}

// EmailNotifier mails new bookings to the contact address from the current
// form settings.
type EmailNotifier struct {
	sender   Sender
	settings settings.Repository
}

func NewEmailNotifier(sender Sender, settings settings.Repository) *EmailNotifier {
	return &EmailNotifier{sender: sender, settings: settings}
}

func (n *EmailNotifier) Notify(ctx context.Context, ev Event) error {
	if ev.Type != BookingCreated {
		return nil
	}

	fs, err := n.settings.GetFormSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if fs.ContactEmail == "" {
		return nil
	}

	b := ev.Booking
	subject := fmt.Sprintf("New booking: %s %s (%s)", b.FirstName, b.LastName, b.Subject)

	return n.sender.Send(fs.ContactEmail, subject, bookingBody(ev))
}

func bookingBody(ev Event) string {
	b := ev.Booking

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s %s\n", b.FirstName, b.LastName)
	fmt.Fprintf(&sb, "Contact: %s\n", b.Contact)
	fmt.Fprintf(&sb, "Subject: %s\n", b.Subject)
	sb.WriteString("Slots:\n")
	for _, s := range b.TimeSlots {
		label := s.Day
		if s.DayName != "" {
			label = s.DayName + " (" + s.Day + ")"
		}
		fmt.Fprintf(&sb, "  - %s %s\n", label, s.Time)
	}
	fmt.Fprintf(&sb, "Duration: %d min\n", b.TotalDuration)
	fmt.Fprintf(&sb, "Cost: %s\n", FormatCents(b.TotalCost))
	fmt.Fprintf(&sb, "Booking id: %s\n", b.ID)
	return sb.String()
}

// FormatCents renders an amount of cents as "€12.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s€%d.%02d", sign, cents/100, cents%100)
}
