package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DescuentoVolumenRequest struct {
	CantidadMinima  int             `json:"cantidad_minima"  validate:"required,min=1"`
	CantidadMaxima  *int            `json:"cantidad_maxima"  validate:"omitempty,min=1"`
	PrecioDescuento decimal.Decimal `json:"precio_descuento" validate:"required"`
}

type ComponentePackRequest struct {
	IDProducto int64 `json:"id_producto" validate:"required,min=1"`
	Cantidad   int   `json:"cantidad"    validate:"required,min=1"`
}

type CrearProductoRequest struct {
	Nombre         string          `json:"nombre"          validate:"required,min=2,max=120"`
	Descripcion    *string         `json:"descripcion"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
	Stock          int             `json:"stock"           validate:"min=0"`
	IDUnidad       *int64          `json:"id_unidad"`
	IDCategoria    *int64          `json:"id_categoria"`
	ImagenURL      *string         `json:"imagen_url"`
	EsPack         bool            `json:"es_pack"`

	Descuentos  []DescuentoVolumenRequest `json:"volumenes"   validate:"dive"`
	Opciones    []int64                   `json:"opciones"`
	Componentes []ComponentePackRequest   `json:"componentes" validate:"dive"`
}

type ActualizarProductoRequest struct {
	Nombre         *string          `json:"nombre" validate:"omitempty,min=2,max=120"`
	Descripcion    *string          `json:"descripcion"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
	Stock          *int             `json:"stock"  validate:"omitempty,min=0"`
	IDUnidad       *int64           `json:"id_unidad"`
	IDCategoria    *int64           `json:"id_categoria"`
	ImagenURL      *string          `json:"imagen_url"`
	EsPack         *bool            `json:"es_pack"`

	Descuentos  []DescuentoVolumenRequest `json:"volumenes"   validate:"dive"`
	Opciones    []int64                   `json:"opciones"`
	Componentes []ComponentePackRequest   `json:"componentes" validate:"dive"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	IDCategoria int64  `form:"id_categoria"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DescuentoVolumenResponse struct {
	IDDescuento     int64           `json:"id_descuento"`
	CantidadMinima  int             `json:"cantidad_minima"`
	CantidadMaxima  *int            `json:"cantidad_maxima"`
	PrecioDescuento decimal.Decimal `json:"precio_descuento"`
}

type OpcionAdicionalResponse struct {
	IDOpcion        int64           `json:"id_opcion"`
	Nombre          string          `json:"nombre"`
	Descripcion     *string         `json:"descripcion"`
	PrecioAdicional decimal.Decimal `json:"precio_adicional"`
}

type ComponentePackResponse struct {
	IDComponente   int64           `json:"id_componente"`
	IDProducto     int64           `json:"id_producto"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

type ProductoResponse struct {
	IDProducto     int64           `json:"id_producto"`
	Nombre         string          `json:"nombre"`
	Descripcion    *string         `json:"descripcion"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Stock          int             `json:"stock"`
	ImagenURL      *string         `json:"imagen_url"`
	Categoria      *string         `json:"categoria"`
	UnidadMedida   *string         `json:"unidad_medida"`
	EsPack         bool            `json:"es_pack"`

	Volumenes   []DescuentoVolumenResponse `json:"volumenes,omitempty"`
	Opciones    []OpcionAdicionalResponse  `json:"opciones,omitempty"`
	Componentes []ComponentePackResponse   `json:"componentes,omitempty"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
