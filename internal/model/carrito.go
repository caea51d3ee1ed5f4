package model

import "time"

// CarritoItem is a persisted shopping cart line. Lines with the same product
// AND the same options snapshot are merged by quantity; differing options
// produce separate lines.
type CarritoItem struct {
	ID         int64 `gorm:"column:id_carrito;primaryKey;autoIncrement"`
	IDCliente  int64 `gorm:"column:id_cliente;index;not null"`
	IDProducto int64 `gorm:"column:id_producto;not null"`
	Cantidad   int   `gorm:"not null"`
	// Opciones holds the selected option ids as JSON, compared as text when
	// merging lines.
	Opciones      string    `gorm:"type:jsonb;not null;default:'[]'"`
	FechaAgregado time.Time `gorm:"not null"`

	Producto *Producto `gorm:"foreignKey:IDProducto"`
}

func (CarritoItem) TableName() string { return "carrito" }
