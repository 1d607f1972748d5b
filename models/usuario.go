package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User role constants
const (
	RolAdmin = "admin"
	RolUser  = "user"
)

// Usuario is the application profile row mirrored from the auth identity.
type Usuario struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Nombre   string `gorm:"size:50;not null" json:"nombre"`
	Apellido string `gorm:"size:50;not null" json:"apellido"`
	Rol      string `gorm:"size:10;not null;default:user" json:"rol"`
	Password string `gorm:"not null" json:"-"`
}

// BeforeCreate hook to generate UUID
func (u *Usuario) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Usuario model
func (Usuario) TableName() string {
	return "usuarios"
}

// IsAdmin checks if the user holds the admin role
func (u *Usuario) IsAdmin() bool {
	return u.Rol == RolAdmin
}

// IsValidRol checks if the role is one the application knows
func IsValidRol(rol string) bool {
	return rol == RolAdmin || rol == RolUser
}
