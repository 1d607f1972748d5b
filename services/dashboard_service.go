package services

import (
	"assist_flow_app_go/models"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	recentCasesLimit    = 5
	attentionCasesLimit = 10
	highCostCasesLimit  = 5
	// A case without an invoice goes stale after this long
	staleCaseAge = 30 * 24 * time.Hour
	// Cases costing this many times the average are flagged
	highCostFactor = 3.0
)

// DashboardData is everything the summary dashboard renders in one fetch
type DashboardData struct {
	KPIs           models.KPIDashboard   `json:"kpis"`
	CasosPorPais   []models.CasosPorPais `json:"casos_por_pais"`
	CasosRecientes []models.Caso         `json:"casos_recientes"`
	CasosAtencion  []models.Caso         `json:"casos_atencion"`
}

// FetchDashboardData reads the precomputed KPI row and per-country rollup,
// the most recently updated cases, and the cases that need attention:
// stale ones without an invoice, overdue ones, and unusually expensive ones.
func FetchDashboardData(dbConn *gorm.DB) (*DashboardData, error) {
	data := &DashboardData{}

	// Views have no primary key, so Take instead of First
	if err := dbConn.Take(&data.KPIs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch KPIs: %w", err)
	}

	if err := dbConn.Find(&data.CasosPorPais).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch per-country rollup: %w", err)
	}

	if err := dbConn.
		Preload("Corresponsal").
		Order("updated_at DESC").
		Limit(recentCasesLimit).
		Find(&data.CasosRecientes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent cases: %w", err)
	}

	atencion, err := fetchCasosAtencion(dbConn)
	if err != nil {
		return nil, err
	}
	data.CasosAtencion = atencion

	return data, nil
}

func fetchCasosAtencion(dbConn *gorm.DB) ([]models.Caso, error) {
	now := time.Now()
	cutoff := now.Add(-staleCaseAge)

	var atencion []models.Caso
	if err := dbConn.
		Preload("Corresponsal").
		Where(
			dbConn.Where("tiene_factura = ? AND fecha_de_inicio < ?", false, cutoff).
				Or("fecha_vencimiento_factura < ? AND fecha_pago_factura IS NULL", now),
		).
		Order("fecha_de_inicio ASC").
		Limit(attentionCasesLimit).
		Find(&atencion).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch attention cases: %w", err)
	}

	// Merge in cases well above the average total cost
	var avg *float64
	if err := dbConn.Model(&models.Caso{}).
		Select("AVG(costo_total)").
		Scan(&avg).Error; err != nil || avg == nil {
		// No cases yet, or the average failed; the base list stands
		return atencion, nil
	}

	var altos []models.Caso
	if err := dbConn.
		Preload("Corresponsal").
		Where("costo_total >= ?", *avg*highCostFactor).
		Order("costo_total DESC").
		Limit(highCostCasesLimit).
		Find(&altos).Error; err != nil {
		return atencion, nil
	}

	seen := make(map[uint]bool, len(atencion))
	for _, caso := range atencion {
		seen[caso.ID] = true
	}
	for _, caso := range altos {
		if !seen[caso.ID] {
			atencion = append(atencion, caso)
			seen[caso.ID] = true
		}
	}

	return atencion, nil
}
