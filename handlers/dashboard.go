package handlers

import (
	"assist_flow_app_go/db"
	"assist_flow_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetDashboardHandler returns the KPI snapshot, the per-country rollup, the
// latest cases, and the cases needing attention in one response
func GetDashboardHandler(c echo.Context) error {
	data, err := services.FetchDashboardData(db.DB)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"kpis":            data.KPIs,
		"casos_por_pais":  data.CasosPorPais,
		"casos_recientes": newCasoResponses(data.CasosRecientes),
		"casos_atencion":  newCasoResponses(data.CasosAtencion),
	})
}
