package models

// KPIDashboard maps the single-row kpi_dashboard view.
type KPIDashboard struct {
	CasosAbiertos      int64   `gorm:"column:casos_abiertos" json:"casos_abiertos"`
	CostoMesActual     float64 `gorm:"column:costo_mes_actual" json:"costo_mes_actual"`
	FacturasVencidas   int64   `gorm:"column:facturas_vencidas" json:"facturas_vencidas"`
	CasosSinFactura30d int64   `gorm:"column:casos_sin_factura_30d" json:"casos_sin_factura_30d"`
}

func (KPIDashboard) TableName() string {
	return "kpi_dashboard"
}

// CasosPorPais maps one row of the per-country rollup view.
type CasosPorPais struct {
	Pais           string  `gorm:"column:pais" json:"pais"`
	TotalCasos     int64   `gorm:"column:total_casos" json:"total_casos"`
	CostoTotalPais float64 `gorm:"column:costo_total_pais" json:"costo_total_pais"`
}

func (CasosPorPais) TableName() string {
	return "casos_por_pais"
}
