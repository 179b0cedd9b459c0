package reminder

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"Proofchain-Backend/entities"
	"Proofchain-Backend/pkg/bill"
	"Proofchain-Backend/pkg/user"
	"Proofchain-Backend/pkg/warranty"
)

// lookaheadDays bounds the candidate query; per-bill eligibility is the
// tighter of this window and the bill's own reminder lead time.
const lookaheadDays = 30

type (
	// Mailer is the outbound email collaborator. A nil error means the
	// message was accepted for delivery.
	Mailer interface {
		Send(toEmail string, subject string, htmlBody string) error
	}

	ReminderService interface {
		// Sweep scans every user's bills and dispatches expiry reminders.
		// It is idempotent across runs: a bill is marked after a
		// successful dispatch and skipped from then on. Per-bill and
		// per-user failures are logged and never abort the sweep.
		Sweep(ctx context.Context) (int, error)
	}

	reminderService struct {
		userRepository user.UserRepository
		billRepository bill.BillRepository
		mailer         Mailer
	}
)

func NewReminderService(userRepository user.UserRepository, billRepository bill.BillRepository, mailer Mailer) ReminderService {
	return &reminderService{
		userRepository: userRepository,
		billRepository: billRepository,
		mailer:         mailer,
	}
}

func (s *reminderService) Sweep(ctx context.Context) (int, error) {
	return s.sweepAt(ctx, time.Now())
}

func (s *reminderService) sweepAt(ctx context.Context, now time.Time) (int, error) {
	log.Printf("running warranty reminder sweep")

	users, err := s.userRepository.GetUsersWithEmail(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, u := range users {
		bills, err := s.billRepository.GetReminderCandidates(
			ctx, u.ID.String(), now, now.AddDate(0, 0, lookaheadDays))
		if err != nil {
			log.Printf("reminder sweep: failed to load bills for user %s: %v", u.ID, err)
			continue
		}

		for _, b := range bills {
			select {
			case <-ctx.Done():
				log.Printf("reminder sweep cancelled after %d dispatch(es)", sent)
				return sent, ctx.Err()
			default:
			}

			daysLeft := warranty.DaysRemaining(b.ExpiryDate, now)
			if daysLeft <= 0 || daysLeft > b.ReminderDaysBefore {
				continue
			}

			subject := fmt.Sprintf("Warranty Expiring Soon - %s", b.ProductName)
			body, err := renderReminderHTML(b, daysLeft)
			if err != nil {
				log.Printf("reminder sweep: failed to render email for bill %s: %v", b.ID, err)
				continue
			}

			if err := s.mailer.Send(u.Email, subject, body); err != nil {
				log.Printf("reminder sweep: dispatch failed for bill %s: %v", b.ID, err)
				continue
			}

			// Dispatch then persist: a crash between the two can cause a
			// duplicate send on the next sweep. At-least-once is the
			// accepted contract here.
			if err := s.billRepository.MarkReminderSent(ctx, b.ID.String()); err != nil {
				log.Printf("reminder sweep: failed to mark bill %s as reminded: %v", b.ID, err)
			}
			sent++
		}
	}

	log.Printf("warranty reminder sweep completed, sent %d reminder(s)", sent)
	return sent, nil
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Warranty Expiring Soon</h2>
  <p>Your warranty for <strong>{{.ProductName}}</strong> is about to expire!</p>
  <p><strong>{{.DaysLeft}} day(s) remaining</strong> &mdash; expiry date: {{.ExpiryDate}}</p>
  <table>
    <tr><td>Product</td><td>{{.ProductName}}</td></tr>
    <tr><td>Purchase Date</td><td>{{.PurchaseDate}}</td></tr>
    {{if .StoreName}}<tr><td>Store</td><td>{{.StoreName}}</td></tr>{{end}}
    {{if gt .PurchasePrice 0.0}}<tr><td>Purchase Price</td><td>{{printf "%.2f" .PurchasePrice}}</td></tr>{{end}}
  </table>
  {{if or .StoreEmail .StorePhone}}
  <p><strong>Warranty claim contacts:</strong><br>
    {{if .StoreEmail}}Email: <a href="mailto:{{.StoreEmail}}">{{.StoreEmail}}</a><br>{{end}}
    {{if .StorePhone}}Phone: {{.StorePhone}}{{end}}
  </p>
  {{end}}
  <p style="color: #666; font-size: 13px;">Some warranties require you to file a claim before the expiry date to receive coverage.</p>
</body>
</html>`))

func renderReminderHTML(b *entities.Bill, daysLeft int) (string, error) {
	data := struct {
		ProductName   string
		DaysLeft      int
		ExpiryDate    string
		PurchaseDate  string
		StoreName     string
		PurchasePrice float64
		StoreEmail    string
		StorePhone    string
	}{
		ProductName:   b.ProductName,
		DaysLeft:      daysLeft,
		ExpiryDate:    b.ExpiryDate.Format("January 2, 2006"),
		PurchaseDate:  b.PurchaseDate.Format("January 2, 2006"),
		StoreName:     b.StoreName,
		PurchasePrice: b.PurchasePrice,
		StoreEmail:    b.StoreEmail,
		StorePhone:    b.StorePhone,
	}

	var buf bytes.Buffer
	if err := reminderTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
