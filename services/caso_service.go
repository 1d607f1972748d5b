package services

import (
	"assist_flow_app_go/models"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// Free text is stripped of any markup before it reaches the store
var sanitizePolicy = bluemonday.StrictPolicy()

func sanitizeText(s string) string {
	return strings.TrimSpace(sanitizePolicy.Sanitize(s))
}

// optString converts an empty form value to NULL
func optString(s string) *string {
	s = sanitizeText(s)
	if s == "" {
		return nil
	}
	return &s
}

// optDate parses an optional YYYY-MM-DD form value, empty meaning NULL
func optDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GenerateCaseNumber builds a default case number: AST-<year>-<6 digits
// derived from the current time>. Unique with overwhelming probability for
// this volume; the store's unique index is the real backstop.
func GenerateCaseNumber() string {
	now := time.Now()
	millis := fmt.Sprintf("%d", now.UnixMilli())
	return fmt.Sprintf("AST-%d-%s", now.Year(), millis[len(millis)-6:])
}

// PagedCasos is one page of the case listing
type PagedCasos struct {
	Data       []models.Caso `json:"data"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// ApplyCasoFilters translates the filter criteria into store predicates.
// The estado_factura predicates mirror the derivation in models.Caso so a
// filtered list agrees with each row's derived status.
func ApplyCasoFilters(dbConn *gorm.DB, query *gorm.DB, f FiltrosInput, now time.Time) *gorm.DB {
	if f.CorresponsalID > 0 {
		query = query.Where("corresponsal_id = ?", f.CorresponsalID)
	}

	if f.Pais != "" {
		query = query.Where("pais = ?", f.Pais)
	}

	if f.FechaInicio != "" {
		if parsed, err := ParseDate(f.FechaInicio); err == nil {
			query = query.Where("fecha_de_inicio >= ?", parsed)
		}
	}
	if f.FechaFin != "" {
		if parsed, err := ParseDate(f.FechaFin); err == nil {
			query = query.Where("fecha_de_inicio <= ?", parsed)
		}
	}

	if f.Busqueda != "" {
		term := "%" + f.Busqueda + "%"
		query = query.Where(
			dbConn.Where("nro_caso_assistravel LIKE ?", term).
				Or("nro_caso_corresponsal LIKE ?", term).
				Or("pais LIKE ?", term),
		)
	}

	switch f.EstadoFactura {
	case models.EstadoSinFactura:
		query = query.Where("tiene_factura = ?", false)
	case models.EstadoPagada:
		query = query.Where("fecha_pago_factura IS NOT NULL")
	case models.EstadoVencida:
		query = query.Where("tiene_factura = ?", true).
			Where("fecha_pago_factura IS NULL").
			Where("fecha_vencimiento_factura < ?", now)
	case models.EstadoPendiente:
		query = query.Where("tiene_factura = ?", true).
			Where("fecha_pago_factura IS NULL").
			Where(dbConn.Where("fecha_vencimiento_factura IS NULL").
				Or("fecha_vencimiento_factura >= ?", now))
	}

	return query
}

// ListCasos returns one page of cases matching the filter criteria,
// newest first, with the owning correspondent preloaded
func ListCasos(dbConn *gorm.DB, f FiltrosInput, page, limit int) (*PagedCasos, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := ApplyCasoFilters(dbConn, dbConn.Model(&models.Caso{}), f, time.Now())

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count cases: %w", err)
	}

	offset := (page - 1) * limit
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	var casos []models.Caso
	if err := query.
		Preload("Corresponsal").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&casos).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cases: %w", err)
	}

	return &PagedCasos{
		Data:       casos,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetCasoByID fetches a single case with its correspondent
func GetCasoByID(dbConn *gorm.DB, id uint) (*models.Caso, error) {
	var caso models.Caso
	if err := dbConn.Preload("Corresponsal").First(&caso, id).Error; err != nil {
		return nil, err
	}
	return &caso, nil
}

// buildCaso shapes a validated payload into the entity. costo_total is not
// part of the payload: the store computes it.
func buildCaso(input CasoInput) (*models.Caso, error) {
	fechaInicio, err := ParseDate(input.FechaDeInicio)
	if err != nil {
		return nil, fmt.Errorf("fecha_de_inicio: %w", err)
	}
	fechaEmision, err := optDate(input.FechaEmisionFactura)
	if err != nil {
		return nil, fmt.Errorf("fecha_emision_factura: %w", err)
	}
	fechaVencimiento, err := optDate(input.FechaVencimientoFactura)
	if err != nil {
		return nil, fmt.Errorf("fecha_vencimiento_factura: %w", err)
	}
	fechaPago, err := optDate(input.FechaPagoFactura)
	if err != nil {
		return nil, fmt.Errorf("fecha_pago_factura: %w", err)
	}

	return &models.Caso{
		CorresponsalID:          input.CorresponsalID,
		NroCasoAssistravel:      strings.TrimSpace(input.NroCasoAssistravel),
		NroCasoCorresponsal:     optString(input.NroCasoCorresponsal),
		FechaDeInicio:           fechaInicio,
		Pais:                    strings.TrimSpace(input.Pais),
		Fee:                     input.Fee,
		CostoUSD:                input.CostoUSD,
		MontoAgregado:           input.MontoAgregado,
		CostoMonedaLocal:        input.CostoMonedaLocal,
		SimboloML:               strings.TrimSpace(input.SimboloML),
		InformeMedico:           input.InformeMedico,
		TieneFactura:            input.TieneFactura,
		FechaEmisionFactura:     fechaEmision,
		FechaVencimientoFactura: fechaVencimiento,
		FechaPagoFactura:        fechaPago,
		NroFactura:              optString(input.NroFactura),
		Observaciones:           optString(input.Observaciones),
	}, nil
}

// CreateCaso validates and persists a new case, then returns it as stored
// (including the computed total)
func CreateCaso(dbConn *gorm.DB, input CasoInput, createdBy string) (*models.Caso, error) {
	if verrs := ValidateCaso(input); verrs != nil {
		return nil, verrs
	}

	caso, err := buildCaso(input)
	if err != nil {
		return nil, err
	}
	if createdBy != "" {
		caso.CreatedBy = &createdBy
	}

	if err := dbConn.Create(caso).Error; err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	return GetCasoByID(dbConn, caso.ID)
}

// UpdateCaso validates and applies a full update in place. Every mutable
// column is written explicitly; the computed total is never among them.
func UpdateCaso(dbConn *gorm.DB, id uint, input CasoInput) (*models.Caso, error) {
	if verrs := ValidateCaso(input); verrs != nil {
		return nil, verrs
	}

	caso, err := buildCaso(input)
	if err != nil {
		return nil, err
	}

	var existing models.Caso
	if err := dbConn.First(&existing, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"corresponsal_id":           caso.CorresponsalID,
		"nro_caso_assistravel":      caso.NroCasoAssistravel,
		"nro_caso_corresponsal":     caso.NroCasoCorresponsal,
		"fecha_de_inicio":           caso.FechaDeInicio,
		"pais":                      caso.Pais,
		"fee":                       caso.Fee,
		"costo_usd":                 caso.CostoUSD,
		"monto_agregado":            caso.MontoAgregado,
		"costo_moneda_local":        caso.CostoMonedaLocal,
		"simbolo_ml":                caso.SimboloML,
		"informe_medico":            caso.InformeMedico,
		"tiene_factura":             caso.TieneFactura,
		"fecha_emision_factura":     caso.FechaEmisionFactura,
		"fecha_vencimiento_factura": caso.FechaVencimientoFactura,
		"fecha_pago_factura":        caso.FechaPagoFactura,
		"nro_factura":               caso.NroFactura,
		"observaciones":             caso.Observaciones,
	}

	if err := dbConn.Model(&existing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update case: %w", err)
	}

	return GetCasoByID(dbConn, id)
}

// DeleteCaso removes a case
func DeleteCaso(dbConn *gorm.DB, id uint) error {
	result := dbConn.Delete(&models.Caso{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete case: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
