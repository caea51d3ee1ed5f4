package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemPedidoRequest is one requested order line. Cantidad below 1 is coerced
// to 1 by the service, matching the storefront contract.
type ItemPedidoRequest struct {
	IDProducto int64   `json:"id_producto" validate:"required,min=1"`
	Cantidad   int     `json:"cantidad"    validate:"min=0"`
	Opciones   []int64 `json:"opciones"`
}

type CrearPedidoRequest struct {
	IDTipoPago *int64              `json:"id_tipo_pago"`
	Items      []ItemPedidoRequest `json:"items" validate:"required,min=1,dive"`
}

// ActualizarEstadoRequest is bound on the admin transition endpoint.
type ActualizarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=Pendiente Entregado Cancelado"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// PedidoFilter is bound from the query string of GET /v1/admin/pedidos.
type PedidoFilter struct {
	Estado      string `form:"estado"       validate:"omitempty,oneof=Pendiente Entregado Cancelado"`
	FechaInicio string `form:"fecha_inicio"`
	FechaFin    string `form:"fecha_fin"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemPedidoResponse struct {
	IDProducto     int64           `json:"id_producto"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Opciones       []int64         `json:"opciones"`
}

// PedidoConfirmacion is the checkout receipt returned by POST /v1/pedidos.
type PedidoConfirmacion struct {
	IDPedido          int64                `json:"id_pedido"`
	IDComprobante     int64                `json:"id_comprobante"`
	TipoComprobante   string               `json:"tipo_comprobante"`
	NumeroComprobante int64                `json:"numero_comprobante"`
	Total             decimal.Decimal      `json:"total"`
	Subtotal          decimal.Decimal      `json:"subtotal"`
	IGV               decimal.Decimal      `json:"igv"`
	Items             []ItemPedidoResponse `json:"items_detalle"`
}

type PedidoListItem struct {
	IDPedido      int64           `json:"id_pedido"`
	FechaPedido   string          `json:"fecha_pedido"`
	FechaEntrega  *string         `json:"fecha_entrega"`
	Estado        string          `json:"estado"`
	Total         decimal.Decimal `json:"total"`
	NombreCliente string          `json:"nombre_cliente,omitempty"`
	TipoPago      *string         `json:"tipo_pago"`
}

type PedidoListResponse struct {
	Data  []PedidoListItem `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type PedidoDetalleResponse struct {
	PedidoListItem
	Items       []ItemPedidoResponse `json:"items"`
	Comprobante *ComprobanteResponse `json:"comprobante"`
}

type ComprobanteResponse struct {
	IDComprobante     int64           `json:"id_comprobante"`
	TipoComprobante   string          `json:"tipo_comprobante"`
	NumeroComprobante int64           `json:"numero_comprobante"`
	FechaEmision      string          `json:"fecha_emision"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	IGV               decimal.Decimal `json:"igv"`
	TotalPago         decimal.Decimal `json:"total_pago"`
	PDFUrl            *string         `json:"pdf_url,omitempty"`
}
