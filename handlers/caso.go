package handlers

import (
	"assist_flow_app_go/db"
	"assist_flow_app_go/middleware"
	"assist_flow_app_go/services"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// filtrosFromQuery reads the filter criteria from query parameters
func filtrosFromQuery(c echo.Context) services.FiltrosInput {
	filtros := services.FiltrosInput{
		Pais:          c.QueryParam("pais"),
		EstadoFactura: c.QueryParam("estado_factura"),
		FechaInicio:   c.QueryParam("fecha_inicio"),
		FechaFin:      c.QueryParam("fecha_fin"),
		Busqueda:      c.QueryParam("busqueda"),
	}
	if v := c.QueryParam("corresponsal_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filtros.CorresponsalID = uint(id)
		}
	}
	return filtros
}

// GetCasosHandler returns a page of cases matching the filter criteria
func GetCasosHandler(c echo.Context) error {
	filtros := filtrosFromQuery(c)
	if verrs := services.ValidateFiltros(filtros); verrs != nil {
		return respondValidationErrors(c, verrs)
	}

	page := 1
	limit := 10
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	result, err := services.ListCasos(db.DB, filtros, page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": newCasoResponses(result.Data),
		"pagination": map[string]interface{}{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

// GetCasoHandler returns a single case with its derived invoice status
func GetCasoHandler(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid case id")
	}

	caso, err := services.GetCasoByID(db.DB, uint(id))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, newCasoResponse(caso))
}

// CreateCasoHandler validates and creates a case
func CreateCasoHandler(c echo.Context) error {
	var input services.CasoInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	currentUser := middleware.GetCurrentUser(c)
	createdBy := ""
	if currentUser != nil {
		createdBy = currentUser.ID
	}

	caso, err := services.CreateCaso(db.DB, input, createdBy)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, newCasoResponse(caso))
}

// UpdateCasoHandler validates and updates a case in place
func UpdateCasoHandler(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid case id")
	}

	var input services.CasoInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	caso, err := services.UpdateCaso(db.DB, uint(id), input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, newCasoResponse(caso))
}

// DeleteCasoHandler removes a case (admin only, enforced on the route)
func DeleteCasoHandler(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid case id")
	}

	if err := services.DeleteCaso(db.DB, uint(id)); err != nil {
		return respondServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GenerateCaseNumberHandler returns a fresh default case number for the form
func GenerateCaseNumberHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"nro_caso": services.GenerateCaseNumber(),
	})
}

// ExportCasosHandler streams the filtered case list as an Excel workbook
func ExportCasosHandler(c echo.Context) error {
	filtros := filtrosFromQuery(c)
	if verrs := services.ValidateFiltros(filtros); verrs != nil {
		return respondValidationErrors(c, verrs)
	}

	buf, err := services.ExportCasosExcel(db.DB, filtros)
	if err != nil {
		return respondServiceError(c, err)
	}

	filename := fmt.Sprintf("casos_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
