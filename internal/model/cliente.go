package model

import "time"

// Cliente tipo values. TipoJuridica clients receive Factura-type fiscal
// documents; TipoNatural clients receive Boleta (see comprobante.go).
const (
	TipoNatural  = "Natural"
	TipoJuridica = "Jurídica"
)

// Cliente is a storefront account. Estado "Activo" | "Inactivo" implements
// soft delete: inactive clients are invisible to every query and cannot log in.
type Cliente struct {
	ID              int64 `gorm:"column:id_cliente;primaryKey;autoIncrement"`
	Nombres         *string
	Apellidos       *string
	RazonSocial     *string
	NumeroDocumento string `gorm:"uniqueIndex;not null"`
	Email           string `gorm:"uniqueIndex;not null"`
	Telefono        *string
	Direccion       *string
	IDDistrito      *int64 `gorm:"column:id_distrito"`
	TipoCliente     string `gorm:"type:varchar(20);not null"`
	Contrasena      string `gorm:"not null"`
	// Rol "cliente" | "admin"; admin accounts unlock the management panel.
	Rol    string `gorm:"type:varchar(20);not null;default:'cliente'"`
	Estado string `gorm:"type:varchar(20);not null;default:'Activo'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "cliente" }

// NombreCompleto returns razón social for legal entities, otherwise
// "nombres apellidos", the display name used on pedidos and comprobantes.
func (c *Cliente) NombreCompleto() string {
	if c.RazonSocial != nil && *c.RazonSocial != "" {
		return *c.RazonSocial
	}
	nombre := ""
	if c.Nombres != nil {
		nombre = *c.Nombres
	}
	if c.Apellidos != nil && *c.Apellidos != "" {
		if nombre != "" {
			nombre += " "
		}
		nombre += *c.Apellidos
	}
	return nombre
}
