package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AgregarItemRequest struct {
	IDProducto int64   `json:"id_producto" validate:"required,min=1"`
	Cantidad   int     `json:"cantidad"    validate:"required,min=1"`
	Opciones   []int64 `json:"opciones"`
}

type ActualizarCantidadRequest struct {
	// Cantidad <= 0 removes the line instead of updating it.
	Cantidad int `json:"cantidad"`
}

// SincronizarCarritoRequest carries the browser-side cart merged at login.
type SincronizarCarritoRequest struct {
	Items []AgregarItemRequest `json:"items" validate:"dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CarritoItemResponse struct {
	IDCarrito      int64           `json:"id_carrito"`
	IDProducto     int64           `json:"id_producto"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	Opciones       []int64         `json:"opciones"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Stock          int             `json:"stock"`
	ImagenURL      *string         `json:"imagen_url"`
	UnidadMedida   *string         `json:"unidad_medida"`
	FechaAgregado  string          `json:"fecha_agregado"`
}

type CarritoResponse struct {
	Items []CarritoItemResponse `json:"items"`
}
