package models

import (
	"math"
	"time"
)

// Derived invoice status values. Not stored: always computed on read.
const (
	EstadoSinFactura = "Sin Factura"
	EstadoPagada     = "Pagada"
	EstadoVencida    = "Vencida"
	EstadoPendiente  = "Pendiente"
)

// Caso is a tracked assistance incident with financial and invoice attributes.
type Caso struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owning correspondent
	CorresponsalID uint          `gorm:"not null;index" json:"corresponsal_id"`
	Corresponsal   *Corresponsal `gorm:"foreignKey:CorresponsalID" json:"corresponsal,omitempty"`

	// Case identification
	NroCasoAssistravel  string  `gorm:"not null;uniqueIndex" json:"nro_caso_assistravel"`
	NroCasoCorresponsal *string `json:"nro_caso_corresponsal,omitempty"`

	FechaDeInicio time.Time `gorm:"not null;index" json:"fecha_de_inicio"`
	Pais          string    `gorm:"not null;index" json:"pais"`

	// Monetary amounts. CostoTotal is a generated column owned by the store;
	// the application reads it and never writes it.
	Fee              float64  `gorm:"not null;default:0" json:"fee"`
	CostoUSD         float64  `gorm:"column:costo_usd;not null;default:0" json:"costo_usd"`
	MontoAgregado    float64  `gorm:"not null;default:0" json:"monto_agregado"`
	CostoMonedaLocal *float64 `json:"costo_moneda_local,omitempty"`
	CostoTotal       float64  `gorm:"->;type:REAL GENERATED ALWAYS AS (fee + costo_usd + monto_agregado) VIRTUAL" json:"costo_total"`
	SimboloML        string   `gorm:"column:simbolo_ml;not null" json:"simbolo_ml"`

	InformeMedico bool `gorm:"not null;default:false" json:"informe_medico"`

	// Invoice lifecycle
	TieneFactura            bool       `gorm:"not null;default:false" json:"tiene_factura"`
	FechaEmisionFactura     *time.Time `json:"fecha_emision_factura,omitempty"`
	FechaVencimientoFactura *time.Time `json:"fecha_vencimiento_factura,omitempty"`
	FechaPagoFactura        *time.Time `json:"fecha_pago_factura,omitempty"`
	NroFactura              *string    `json:"nro_factura,omitempty"`

	Observaciones *string `gorm:"type:text" json:"observaciones,omitempty"`

	// Audit
	CreatedBy *string  `gorm:"type:uuid" json:"created_by,omitempty"`
	Creator   *Usuario `gorm:"foreignKey:CreatedBy" json:"-"`
}

// TableName specifies the table name for Caso model
func (Caso) TableName() string {
	return "caso"
}

// EstadoFacturaAt derives the invoice status at the given instant.
// Precedence is fixed: no invoice, then paid, then overdue, then pending.
// A case can satisfy several raw conditions at once, so the order matters.
// Dates sit at midnight UTC, so an invoice counts as overdue from the first
// evaluation after the midnight that starts its due date.
func (c *Caso) EstadoFacturaAt(now time.Time) string {
	if !c.TieneFactura {
		return EstadoSinFactura
	}
	if c.FechaPagoFactura != nil {
		return EstadoPagada
	}
	if c.FechaVencimientoFactura != nil && c.FechaVencimientoFactura.Before(now) {
		return EstadoVencida
	}
	return EstadoPendiente
}

// EstadoFactura derives the invoice status at the current time
func (c *Caso) EstadoFactura() string {
	return c.EstadoFacturaAt(time.Now())
}

// IsValidEstadoFactura checks if the value is one of the derived statuses
func IsValidEstadoFactura(estado string) bool {
	switch estado {
	case EstadoSinFactura, EstadoPagada, EstadoVencida, EstadoPendiente:
		return true
	}
	return false
}

// ComputeCostoTotal mirrors the store's generated column for form previews.
// The result is never written back; the column is the authoritative value.
func ComputeCostoTotal(fee, costoUSD, montoAgregado float64) float64 {
	return math.Round((fee+costoUSD+montoAgregado)*100) / 100
}
