package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pedido estado values. Pendiente is the initial state; Entregado and
// Cancelado are terminal. Cancelling restores stock for every line item.
const (
	EstadoPendiente = "Pendiente"
	EstadoEntregado = "Entregado"
	EstadoCancelado = "Cancelado"
)

// Pedido is an order header. It is created atomically together with its
// DetallePedido rows and its Comprobante, never partially.
type Pedido struct {
	ID        int64 `gorm:"column:id_pedido;primaryKey;autoIncrement"`
	IDCliente int64 `gorm:"column:id_cliente;index;not null"`
	// FechaPedido is a DATE column, not a timestamp. Day granularity keeps
	// the dashboard's CURRENT_DATE comparison and the admin range filter
	// (fecha_inicio/fecha_fin, end date inclusive) correct without casts.
	FechaPedido  time.Time       `gorm:"type:date;not null"`
	FechaEntrega *time.Time
	Estado       string          `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	IDTipoPago   *int64          `gorm:"column:id_tipo_pago"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time

	Cliente  *Cliente        `gorm:"foreignKey:IDCliente"`
	TipoPago *TipoPago       `gorm:"foreignKey:IDTipoPago"`
	Items    []DetallePedido `gorm:"foreignKey:IDPedido"`
}

func (Pedido) TableName() string { return "pedido" }

// DetallePedido is one order line. PrecioUnitario is the resolved price
// (volume tier applied, option surcharges included), immutable after creation.
type DetallePedido struct {
	ID             int64           `gorm:"column:id_detalle;primaryKey;autoIncrement"`
	IDPedido       int64           `gorm:"column:id_pedido;index;not null"`
	IDProducto     int64           `gorm:"column:id_producto;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Opciones is the snapshot of selected option ids, stored as JSON.
	Opciones string `gorm:"type:jsonb;not null;default:'[]'"`

	Producto *Producto `gorm:"foreignKey:IDProducto"`
}

func (DetallePedido) TableName() string { return "detalle_pedido" }
