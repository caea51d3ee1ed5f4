package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Comprobante tipo values: Boleta for Natural clients, Factura for Jurídica.
// Each tipo draws from its own number sequence.
const (
	ComprobanteBoleta  = "Boleta"
	ComprobanteFactura = "Factura"
)

// IGVRate is the fixed 18% value-added tax. Unit prices are tax-inclusive;
// the subtotal/IGV breakdown is derived from the gross total.
var IGVRate = decimal.NewFromFloat(0.18)

// Comprobante is the fiscal document issued 1:1 with a Pedido, inside the
// same transaction. Invariant: TotalPago = Subtotal + IGV.
type Comprobante struct {
	ID                int64           `gorm:"column:id_comprobante;primaryKey;autoIncrement"`
	IDPedido          int64           `gorm:"column:id_pedido;uniqueIndex;not null"`
	TipoComprobante   string          `gorm:"type:varchar(20);not null"`
	NumeroComprobante int64           `gorm:"not null"`
	FechaEmision      time.Time       `gorm:"not null"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IGV               decimal.Decimal `gorm:"column:igv;type:decimal(12,2);not null"`
	TotalPago         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// PDFPath is the full path of the rendered file under PDF_STORAGE_PATH,
	// as returned by GenerarComprobantePDF. Nil until the worker runs.
	PDFPath   *string `gorm:"column:pdf_path"`
	CreatedAt time.Time

	Items []DetalleComprobante `gorm:"foreignKey:IDComprobante"`
}

func (Comprobante) TableName() string { return "comprobante" }

// DetalleComprobante mirrors DetallePedido on the fiscal document. More than
// one row per product is allowed.
type DetalleComprobante struct {
	ID             int64           `gorm:"column:id_detalle;primaryKey;autoIncrement"`
	IDComprobante  int64           `gorm:"column:id_comprobante;index;not null"`
	IDProducto     int64           `gorm:"column:id_producto;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *Producto `gorm:"foreignKey:IDProducto"`
}

func (DetalleComprobante) TableName() string { return "detalle_comprobante" }
