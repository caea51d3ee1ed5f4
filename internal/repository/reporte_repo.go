package repository

import (
	"context"

	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// stockBajoUmbral marks a product as low-stock on the admin dashboard.
const stockBajoUmbral = 10

// ReporteRepository runs the aggregate queries behind the admin dashboard.
// All queries are read-only; cancelled orders are excluded from sales totals.
type ReporteRepository interface {
	VentasDelMes(ctx context.Context) (decimal.Decimal, error)
	PedidosPendientes(ctx context.Context) (int64, error)
	PedidosDeHoy(ctx context.Context) (int64, error)
	ClientesNuevosDelMes(ctx context.Context) (int64, error)
	ProductosStockBajo(ctx context.Context) (int64, error)
	TopProductosDelMes(ctx context.Context, limit int) ([]dto.TopProducto, error)
	ProductosStockCritico(ctx context.Context, limit int) ([]model.Producto, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) VentasDelMes(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Select("COALESCE(SUM(total), 0)").
		Where("EXTRACT(MONTH FROM fecha_pedido) = EXTRACT(MONTH FROM CURRENT_DATE)").
		Where("EXTRACT(YEAR FROM fecha_pedido) = EXTRACT(YEAR FROM CURRENT_DATE)").
		Where("estado <> ?", model.EstadoCancelado).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *reporteRepo) PedidosPendientes(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("estado = ?", model.EstadoPendiente).
		Count(&n).Error
	return n, err
}

func (r *reporteRepo) PedidosDeHoy(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("fecha_pedido = CURRENT_DATE").
		Count(&n).Error
	return n, err
}

func (r *reporteRepo) ClientesNuevosDelMes(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).
		Where("EXTRACT(MONTH FROM created_at) = EXTRACT(MONTH FROM CURRENT_DATE)").
		Where("EXTRACT(YEAR FROM created_at) = EXTRACT(YEAR FROM CURRENT_DATE)").
		Count(&n).Error
	return n, err
}

func (r *reporteRepo) ProductosStockBajo(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("stock < ?", stockBajoUmbral).
		Count(&n).Error
	return n, err
}

func (r *reporteRepo) TopProductosDelMes(ctx context.Context, limit int) ([]dto.TopProducto, error) {
	var top []dto.TopProducto
	err := r.db.WithContext(ctx).Model(&model.DetallePedido{}).
		Select("pr.nombre AS nombre, SUM(detalle_pedido.cantidad) AS total_vendido, pr.stock AS stock").
		Joins("JOIN pedido p ON p.id_pedido = detalle_pedido.id_pedido").
		Joins("JOIN producto pr ON pr.id_producto = detalle_pedido.id_producto").
		Where("EXTRACT(MONTH FROM p.fecha_pedido) = EXTRACT(MONTH FROM CURRENT_DATE)").
		Where("EXTRACT(YEAR FROM p.fecha_pedido) = EXTRACT(YEAR FROM CURRENT_DATE)").
		Where("p.estado <> ?", model.EstadoCancelado).
		Group("pr.id_producto, pr.nombre, pr.stock").
		Order("total_vendido DESC").
		Limit(limit).
		Scan(&top).Error
	return top, err
}

func (r *reporteRepo) ProductosStockCritico(ctx context.Context, limit int) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("stock < ?", stockBajoUmbral).
		Order("stock ASC").
		Limit(limit).
		Find(&productos).Error
	return productos, err
}
