package handlers

import (
	"assist_flow_app_go/db"
	"assist_flow_app_go/services"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetCorresponsalesHandler returns all correspondents ordered by name.
// Readable by every authenticated user: the case form needs the dropdown.
func GetCorresponsalesHandler(c echo.Context) error {
	corresponsales, err := services.ListCorresponsales(db.DB)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, corresponsales)
}

// GetCorresponsalHandler returns a single correspondent
func GetCorresponsalHandler(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid correspondent id")
	}

	corresponsal, err := services.GetCorresponsalByID(db.DB, uint(id))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, corresponsal)
}

// CreateCorresponsalHandler validates and creates a correspondent (admin only)
func CreateCorresponsalHandler(c echo.Context) error {
	var input services.CorresponsalInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	corresponsal, err := services.CreateCorresponsal(db.DB, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, corresponsal)
}

// UpdateCorresponsalHandler validates and updates a correspondent (admin only)
func UpdateCorresponsalHandler(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid correspondent id")
	}

	var input services.CorresponsalInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	corresponsal, err := services.UpdateCorresponsal(db.DB, uint(id), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, corresponsal)
}

// DeleteCorresponsalHandler removes a correspondent and, through the store's
// cascade, its cases (admin only)
func DeleteCorresponsalHandler(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid correspondent id")
	}

	if err := services.DeleteCorresponsal(db.DB, uint(id)); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
