package services

import (
	"assist_flow_app_go/models"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ListCorresponsales returns all correspondents ordered by name
func ListCorresponsales(dbConn *gorm.DB) ([]models.Corresponsal, error) {
	var corresponsales []models.Corresponsal
	if err := dbConn.Order("nombre ASC").Find(&corresponsales).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch correspondents: %w", err)
	}
	return corresponsales, nil
}

// GetCorresponsalByID fetches a single correspondent
func GetCorresponsalByID(dbConn *gorm.DB, id uint) (*models.Corresponsal, error) {
	var corresponsal models.Corresponsal
	if err := dbConn.First(&corresponsal, id).Error; err != nil {
		return nil, err
	}
	return &corresponsal, nil
}

func buildCorresponsal(input CorresponsalInput) *models.Corresponsal {
	return &models.Corresponsal{
		Nombre:    strings.TrimSpace(input.Nombre),
		Contacto:  strings.TrimSpace(input.Contacto),
		Email:     strings.TrimSpace(input.Email),
		Telefonos: optString(input.Telefonos),
		PaginaWeb: optString(input.PaginaWeb),
		Direccion: optString(input.Direccion),
		PaisSede:  strings.TrimSpace(input.PaisSede),
	}
}

// CreateCorresponsal validates and persists a new correspondent
func CreateCorresponsal(dbConn *gorm.DB, input CorresponsalInput) (*models.Corresponsal, error) {
	if verrs := ValidateCorresponsal(input); verrs != nil {
		return nil, verrs
	}

	corresponsal := buildCorresponsal(input)
	if err := dbConn.Create(corresponsal).Error; err != nil {
		return nil, fmt.Errorf("failed to create correspondent: %w", err)
	}
	return corresponsal, nil
}

// UpdateCorresponsal validates and applies a full update in place
func UpdateCorresponsal(dbConn *gorm.DB, id uint, input CorresponsalInput) (*models.Corresponsal, error) {
	if verrs := ValidateCorresponsal(input); verrs != nil {
		return nil, verrs
	}

	var existing models.Corresponsal
	if err := dbConn.First(&existing, id).Error; err != nil {
		return nil, err
	}

	updated := buildCorresponsal(input)
	updates := map[string]interface{}{
		"nombre":     updated.Nombre,
		"contacto":   updated.Contacto,
		"email":      updated.Email,
		"telefonos":  updated.Telefonos,
		"pagina_web": updated.PaginaWeb,
		"direccion":  updated.Direccion,
		"pais_sede":  updated.PaisSede,
	}

	if err := dbConn.Model(&existing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update correspondent: %w", err)
	}
	return &existing, nil
}

// DeleteCorresponsal removes a correspondent. The store cascades the delete
// to its cases.
func DeleteCorresponsal(dbConn *gorm.DB, id uint) error {
	result := dbConn.Delete(&models.Corresponsal{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete correspondent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
