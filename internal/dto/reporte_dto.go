package dto

import "github.com/shopspring/decimal"

// TopProducto is scanned directly from the top-sellers aggregate query.
type TopProducto struct {
	Nombre       string `json:"nombre"`
	TotalVendido int64  `json:"total_vendido"`
	Stock        int    `json:"stock"`
}

type ProductoCritico struct {
	IDProducto     int64           `json:"id_producto"`
	Nombre         string          `json:"nombre"`
	Stock          int             `json:"stock"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// DashboardResponse aggregates the admin panel home widgets.
type DashboardResponse struct {
	VentasMes             decimal.Decimal   `json:"ventas_mes"`
	PedidosPendientes     int64             `json:"pedidos_pendientes"`
	PedidosHoy            int64             `json:"pedidos_hoy"`
	ClientesNuevos        int64             `json:"clientes_nuevos"`
	StockBajo             int64             `json:"stock_bajo"`
	TopProductos          []TopProducto     `json:"top_productos"`
	ProductosStockCritico []ProductoCritico `json:"productos_stock_critico"`
}
