package handlers

import (
	"assist_flow_app_go/models"
	"assist_flow_app_go/services"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// casoResponse decorates a stored case with its derived invoice status
type casoResponse struct {
	*models.Caso
	EstadoFactura string `json:"estado_factura"`
}

func newCasoResponse(caso *models.Caso) casoResponse {
	return casoResponse{Caso: caso, EstadoFactura: caso.EstadoFactura()}
}

func newCasoResponses(casos []models.Caso) []casoResponse {
	out := make([]casoResponse, 0, len(casos))
	for i := range casos {
		out = append(out, newCasoResponse(&casos[i]))
	}
	return out
}

// respondValidationErrors maps field-scoped validation failures to a 422
// with a field -> message object the form can render
func respondValidationErrors(c echo.Context, verrs services.ValidationErrors) error {
	return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
		"error":  "Datos inválidos",
		"fields": verrs.Fields(),
	})
}

// respondServiceError translates a service failure into the matching HTTP
// error: 422 for validation, 404 for missing rows, 500 for the rest. The
// store's message string is surfaced as-is; nothing is retried.
func respondServiceError(c echo.Context, err error) error {
	var verrs services.ValidationErrors
	if errors.As(err, &verrs) {
		return respondValidationErrors(c, verrs)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "No encontrado")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
