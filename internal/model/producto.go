package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is a catalog item. EsPack=true means the product is composed of
// other products via PackComponente (bill-of-materials, catalog data only).
type Producto struct {
	ID             int64  `gorm:"column:id_producto;primaryKey;autoIncrement"`
	Nombre         string `gorm:"index;not null"`
	Descripcion    *string
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Stock is decremented inside the order placement transaction and must
	// never go negative; the row is locked FOR UPDATE while it changes.
	Stock       int    `gorm:"not null;default:0"`
	IDUnidad    *int64 `gorm:"column:id_unidad"`
	IDCategoria *int64 `gorm:"column:id_categoria"`
	ImagenURL   *string
	EsPack      bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria   *Categoria         `gorm:"foreignKey:IDCategoria"`
	Unidad      *UnidadMedida      `gorm:"foreignKey:IDUnidad"`
	Descuentos  []DescuentoVolumen `gorm:"foreignKey:IDProducto"`
	Opciones    []OpcionAdicional  `gorm:"many2many:producto_opcion;foreignKey:ID;joinForeignKey:IDProducto;References:ID;joinReferences:IDOpcion"`
	Componentes []PackComponente   `gorm:"foreignKey:IDPack"`
}

func (Producto) TableName() string { return "producto" }

// DescuentoVolumen is a flat discounted unit price for order quantities inside
// [CantidadMinima, CantidadMaxima]. CantidadMaxima nil = unbounded above.
type DescuentoVolumen struct {
	ID              int64 `gorm:"column:id_descuento;primaryKey;autoIncrement"`
	IDProducto      int64 `gorm:"column:id_producto;index;not null"`
	CantidadMinima  int   `gorm:"not null"`
	CantidadMaxima  *int
	PrecioDescuento decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (DescuentoVolumen) TableName() string { return "descuento_volumen" }

// OpcionAdicional is a named add-on (e.g. "NDS") with a per-unit surcharge.
// Products opt in through the producto_opcion join table.
type OpcionAdicional struct {
	ID              int64  `gorm:"column:id_opcion;primaryKey;autoIncrement"`
	Nombre          string `gorm:"not null"`
	Descripcion     *string
	PrecioAdicional decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (OpcionAdicional) TableName() string { return "opcion_adicional" }

// ProductoOpcion restricts which options apply to which product.
type ProductoOpcion struct {
	IDProducto int64 `gorm:"column:id_producto;primaryKey"`
	IDOpcion   int64 `gorm:"column:id_opcion;primaryKey"`
}

func (ProductoOpcion) TableName() string { return "producto_opcion" }

// PackComponente links a pack product to one of its component products.
type PackComponente struct {
	ID         int64 `gorm:"column:id_componente;primaryKey;autoIncrement"`
	IDPack     int64 `gorm:"column:id_pack;index;not null"`
	IDProducto int64 `gorm:"column:id_producto;not null"`
	Cantidad   int   `gorm:"not null;default:1"`

	Producto *Producto `gorm:"foreignKey:IDProducto"`
}

func (PackComponente) TableName() string { return "pack_componente" }
