package services

import (
	appdb "assist_flow_app_go/db"
	"assist_flow_app_go/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDashboardTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Corresponsal{}, &models.Caso{})
	assert.NoError(t, appdb.SetupViews(db))
	return db
}

func TestFetchDashboardDataEmpty(t *testing.T) {
	db := setupDashboardTestDB(t)

	data, err := FetchDashboardData(db)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), data.KPIs.CasosAbiertos)
	assert.Equal(t, 0.0, data.KPIs.CostoMesActual)
	assert.Empty(t, data.CasosPorPais)
	assert.Empty(t, data.CasosRecientes)
	assert.Empty(t, data.CasosAtencion)
}

func TestFetchDashboardData(t *testing.T) {
	db := setupDashboardTestDB(t)
	corresponsal := seedCorresponsal(db, "dashboard")
	now := time.Now()

	// Stale: no invoice and started over a month ago
	estancado := seedCaso(db, models.Caso{
		CorresponsalID:     corresponsal.ID,
		NroCasoAssistravel: "AST-2024-100001",
		FechaDeInicio:      now.Add(-40 * 24 * time.Hour),
		Pais:               "Argentina",
		SimboloML:          "ARS",
		Fee:                100,
	})
	// Overdue invoice
	vencido := seedCaso(db, models.Caso{
		CorresponsalID:          corresponsal.ID,
		NroCasoAssistravel:      "AST-2024-100002",
		FechaDeInicio:           now,
		Pais:                    "Argentina",
		SimboloML:               "ARS",
		Fee:                     200,
		TieneFactura:            true,
		FechaEmisionFactura:     timePtr(now.Add(-96 * time.Hour)),
		FechaVencimientoFactura: timePtr(now.Add(-48 * time.Hour)),
	})
	// Paid and closed
	pagado := seedCaso(db, models.Caso{
		CorresponsalID:      corresponsal.ID,
		NroCasoAssistravel:  "AST-2024-100003",
		FechaDeInicio:       now,
		Pais:                "Chile",
		SimboloML:           "CLP",
		Fee:                 50,
		TieneFactura:        true,
		FechaEmisionFactura: timePtr(now.Add(-96 * time.Hour)),
		FechaPagoFactura:    timePtr(now.Add(-24 * time.Hour)),
	})
	// Pending, but costing several times the average
	costoso := seedCaso(db, models.Caso{
		CorresponsalID:          corresponsal.ID,
		NroCasoAssistravel:      "AST-2024-100004",
		FechaDeInicio:           now,
		Pais:                    "Chile",
		SimboloML:               "CLP",
		Fee:                     3000,
		TieneFactura:            true,
		FechaEmisionFactura:     timePtr(now.Add(-24 * time.Hour)),
		FechaVencimientoFactura: timePtr(now.Add(72 * time.Hour)),
	})

	data, err := FetchDashboardData(db)
	assert.NoError(t, err)

	t.Run("KPIs", func(t *testing.T) {
		assert.Equal(t, int64(3), data.KPIs.CasosAbiertos)
		assert.Equal(t, int64(1), data.KPIs.FacturasVencidas)
		assert.Equal(t, int64(1), data.KPIs.CasosSinFactura30d)
		// Only this month's cases count toward the monthly cost
		assert.Equal(t, 3250.0, data.KPIs.CostoMesActual)
	})

	t.Run("CasosPorPais", func(t *testing.T) {
		porPais := make(map[string]models.CasosPorPais, len(data.CasosPorPais))
		for _, fila := range data.CasosPorPais {
			porPais[fila.Pais] = fila
		}

		assert.Equal(t, int64(2), porPais["Argentina"].TotalCasos)
		assert.Equal(t, 300.0, porPais["Argentina"].CostoTotalPais)
		assert.Equal(t, int64(2), porPais["Chile"].TotalCasos)
		assert.Equal(t, 3050.0, porPais["Chile"].CostoTotalPais)
	})

	t.Run("CasosRecientes", func(t *testing.T) {
		assert.Len(t, data.CasosRecientes, 4)
	})

	t.Run("CasosAtencion", func(t *testing.T) {
		ids := make([]uint, 0, len(data.CasosAtencion))
		for _, caso := range data.CasosAtencion {
			ids = append(ids, caso.ID)
		}

		// Stale, overdue, and high-cost cases appear exactly once each
		assert.ElementsMatch(t, []uint{estancado.ID, vencido.ID, costoso.ID}, ids)
		assert.NotContains(t, ids, pagado.ID)

		// Oldest start date leads the base list
		assert.Equal(t, estancado.ID, data.CasosAtencion[0].ID)
	})
}
