package handlers

import (
	"assist_flow_app_go/middleware"
	"assist_flow_app_go/models"
	"assist_flow_app_go/services"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedUsuario(t *testing.T, testDB *gorm.DB, email, password, rol string) *models.Usuario {
	hash, err := services.HashPassword(password)
	assert.NoError(t, err)

	user := &models.Usuario{
		Email:    email,
		Nombre:   "Test",
		Apellido: "User",
		Rol:      rol,
		Password: hash,
	}
	assert.NoError(t, testDB.Create(user).Error)
	return user
}

func TestLoginHandler(t *testing.T) {
	t.Run("ValidCredentials", func(t *testing.T) {
		testDB := setupTestDB(t)
		seedUsuario(t, testDB, "valid@test.com", "pass123456", models.RolUser)

		body := `{"email":"valid@test.com","password":"pass123456"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/auth/login", strings.NewReader(body))

		assert.NoError(t, LoginHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		// The session travels in an HttpOnly cookie, never in the body
		assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), middleware.SessionCookieName+"=")
		assert.NotContains(t, rec.Body.String(), "token")
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("WrongPassword", func(t *testing.T) {
		testDB := setupTestDB(t)
		seedUsuario(t, testDB, "wrong@test.com", "pass123456", models.RolUser)

		body := `{"email":"wrong@test.com","password":"otra-clave"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/auth/login", strings.NewReader(body))

		err := LoginHandler(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "Email o contraseña incorrectos", he.Message)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		setupTestDB(t)

		body := `{"email":"nadie@test.com","password":"pass123456"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/auth/login", strings.NewReader(body))

		err := LoginHandler(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		// Unknown email and wrong password are indistinguishable
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "Email o contraseña incorrectos", he.Message)
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		setupTestDB(t)

		body := `{"email":"bad","password":"123"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/auth/login", strings.NewReader(body))

		assert.NoError(t, LoginHandler(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Datos inválidos")
	})
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		testDB := setupTestDB(t)

		body := `{"email":"nuevo@test.com","password":"abcdef","confirm_password":"abcdef","nombre":"Ana","apellido":"Pérez","rol":"user"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/auth/register", strings.NewReader(body))

		assert.NoError(t, RegisterHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var count int64
		testDB.Model(&models.Usuario{}).Where("email = ?", "nuevo@test.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		testDB := setupTestDB(t)
		seedUsuario(t, testDB, "dup@test.com", "pass123456", models.RolUser)

		body := `{"email":"dup@test.com","password":"abcdef","confirm_password":"abcdef","nombre":"Ana","apellido":"Pérez","rol":"user"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/auth/register", strings.NewReader(body))

		err := RegisterHandler(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)
	})

	t.Run("PasswordMismatch", func(t *testing.T) {
		setupTestDB(t)

		body := `{"email":"mism@test.com","password":"abcdef","confirm_password":"abcdeg","nombre":"Ana","apellido":"Pérez","rol":"user"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/auth/register", strings.NewReader(body))

		assert.NoError(t, RegisterHandler(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Fields map[string]string `json:"fields"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Las contraseñas no coinciden", resp.Fields["confirm_password"])
	})
}

func TestLogoutHandler(t *testing.T) {
	testDB := setupTestDB(t)
	user := seedUsuario(t, testDB, "logout@test.com", "pass123456", models.RolUser)
	session, err := services.CreateSession(testDB, user.ID, "127.0.0.1", "test-agent")
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodPost, "/api/auth/logout", nil)
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session.Token})

	assert.NoError(t, LogoutHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	testDB.Model(&models.Session{}).Where("token = ?", session.Token).Count(&count)
	assert.Equal(t, int64(0), count)
}
