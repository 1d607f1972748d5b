package db

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// The dashboard reads from precomputed views instead of aggregating in Go.
// The store owns these definitions; the application only ever selects from them.
const (
	kpiDashboardView = `
CREATE VIEW IF NOT EXISTS kpi_dashboard AS
SELECT
  (SELECT COUNT(*) FROM caso WHERE fecha_pago_factura IS NULL) AS casos_abiertos,
  (SELECT COALESCE(SUM(costo_total), 0) FROM caso
     WHERE strftime('%Y-%m', fecha_de_inicio) = strftime('%Y-%m', 'now')) AS costo_mes_actual,
  (SELECT COUNT(*) FROM caso
     WHERE tiene_factura = 1
       AND fecha_pago_factura IS NULL
       AND fecha_vencimiento_factura < datetime('now')) AS facturas_vencidas,
  (SELECT COUNT(*) FROM caso
     WHERE tiene_factura = 0
       AND fecha_de_inicio < datetime('now', '-30 days')) AS casos_sin_factura_30d`

	casosPorPaisView = `
CREATE VIEW IF NOT EXISTS casos_por_pais AS
SELECT
  pais,
  COUNT(*) AS total_casos,
  COALESCE(SUM(costo_total), 0) AS costo_total_pais
FROM caso
GROUP BY pais`
)

// SetupViews creates the aggregate views the dashboard depends on.
// Must run after AutoMigrate so the caso table exists.
func SetupViews(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	for _, stmt := range []string{kpiDashboardView, casosPorPaisView} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create view: %w", err)
		}
	}

	log.Println("Dashboard views ready")
	return nil
}
