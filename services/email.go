package services

import (
	"assist_flow_app_go/config"
	"assist_flow_app_go/models"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail delivers an email through Resend. In test mode the message is
// logged instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	if cfg.EmailTestMode {
		log.Printf("[EMAIL TEST MODE] To: %v | Subject: %s | Body: %s", email.To, email.Subject, email.TextBody)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email sent to %v (id: %s)", email.To, sent.Id)
	return nil
}

// SendWelcomeEmail greets a newly registered user. Runs after the user row
// is committed; a failure here is logged by the caller, never rolled back.
func SendWelcomeEmail(cfg *config.Config, user *models.Usuario) error {
	email := &Email{
		To:      []string{user.Email},
		Subject: "Bienvenido a AssisTravel Casos",
		HTMLBody: fmt.Sprintf(
			"<p>Hola %s,</p><p>Tu cuenta fue creada correctamente. Ya puedes ingresar en <a href=\"%s\">%s</a>.</p>",
			user.Nombre, cfg.AppURL, cfg.AppURL,
		),
		TextBody: fmt.Sprintf(
			"Hola %s,\n\nTu cuenta fue creada correctamente. Ya puedes ingresar en %s.\n",
			user.Nombre, cfg.AppURL,
		),
	}
	return SendEmail(cfg, email)
}
