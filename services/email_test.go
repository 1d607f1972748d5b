package services

import (
	"assist_flow_app_go/config"
	"assist_flow_app_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendEmailRequiresBody(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}

	err := SendEmail(cfg, &Email{To: []string{"user@test.com"}, Subject: "Sin cuerpo"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTMLBody or TextBody")
}

func TestSendEmailTestMode(t *testing.T) {
	// Test mode logs instead of calling the provider, so no API key is needed
	cfg := &config.Config{EmailTestMode: true}

	err := SendEmail(cfg, &Email{
		To:       []string{"user@test.com"},
		Subject:  "Prueba",
		TextBody: "Hola",
	})
	assert.NoError(t, err)
}

func TestSendEmailMissingAPIKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false, ResendAPIKey: ""}

	err := SendEmail(cfg, &Email{
		To:       []string{"user@test.com"},
		Subject:  "Prueba",
		TextBody: "Hola",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestSendWelcomeEmail(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true, AppURL: "http://localhost:8080"}
	user := &models.Usuario{Email: "nuevo@test.com", Nombre: "Ana"}

	assert.NoError(t, SendWelcomeEmail(cfg, user))
}
