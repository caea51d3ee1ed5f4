package model

// Categoria classifies products for storefront navigation.
type Categoria struct {
	ID          int64  `gorm:"column:id_categoria;primaryKey;autoIncrement"`
	Descripcion string `gorm:"uniqueIndex;not null"`
}

func (Categoria) TableName() string { return "categoria" }

// UnidadMedida is the unit of measure a product is sold in (kg, caja, unidad…).
type UnidadMedida struct {
	ID          int64  `gorm:"column:id_unidad;primaryKey;autoIncrement"`
	Descripcion string `gorm:"uniqueIndex;not null"`
}

func (UnidadMedida) TableName() string { return "unidad_medida" }

// TipoPago is a payment method reference (contra entrega, transferencia…).
type TipoPago struct {
	ID          int64  `gorm:"column:id_tipo_pago;primaryKey;autoIncrement"`
	Descripcion string `gorm:"not null"`
}

func (TipoPago) TableName() string { return "tipo_pago" }
