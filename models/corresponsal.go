package models

import (
	"time"
)

// Corresponsal is a partner agency that handles assistance cases abroad.
// Optional free-text fields use NULL for "not provided"; handlers normalize
// empty strings to nil before persisting.
type Corresponsal struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Nombre    string  `gorm:"size:100;not null" json:"nombre"`
	Contacto  string  `gorm:"size:100;not null" json:"contacto"`
	Email     string  `gorm:"not null" json:"email"`
	Telefonos *string `json:"telefonos,omitempty"` // Free text, comma separated
	PaginaWeb *string `json:"pagina_web,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	PaisSede  string  `gorm:"not null;index" json:"pais_sede"`

	// Deleting a correspondent cascades to its cases (store-enforced)
	Casos []Caso `gorm:"foreignKey:CorresponsalID;constraint:OnDelete:CASCADE" json:"casos,omitempty"`
}

// TableName specifies the table name for Corresponsal model
func (Corresponsal) TableName() string {
	return "corresponsal"
}
