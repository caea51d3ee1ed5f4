package repository

import (
	"context"

	"github.com/Alcm1997/Agroconecta/internal/model"

	"gorm.io/gorm"
)

type CarritoRepository interface {
	ListByCliente(ctx context.Context, idCliente int64) ([]model.CarritoItem, error)
	FindLinea(ctx context.Context, idCliente, idProducto int64, opciones string) (*model.CarritoItem, error)
	Crear(ctx context.Context, item *model.CarritoItem) error
	ActualizarCantidad(ctx context.Context, idCarrito, idCliente int64, cantidad int) (bool, error)
	Eliminar(ctx context.Context, idCarrito, idCliente int64) (bool, error)
	Vaciar(ctx context.Context, idCliente int64) error

	// Tx variants used by the login-time sync merge.
	FindLineaTx(tx *gorm.DB, idCliente, idProducto int64, opciones string) (*model.CarritoItem, error)
	CrearTx(tx *gorm.DB, item *model.CarritoItem) error
	SumarCantidadTx(tx *gorm.DB, idCarrito int64, cantidad int) error

	DB() *gorm.DB
}

type carritoRepo struct{ db *gorm.DB }

func NewCarritoRepository(db *gorm.DB) CarritoRepository { return &carritoRepo{db: db} }

func (r *carritoRepo) DB() *gorm.DB { return r.db }

func (r *carritoRepo) ListByCliente(ctx context.Context, idCliente int64) ([]model.CarritoItem, error) {
	var items []model.CarritoItem
	err := r.db.WithContext(ctx).
		Preload("Producto.Unidad").
		Where("id_cliente = ?", idCliente).
		Order("fecha_agregado DESC").
		Find(&items).Error
	return items, err
}

func (r *carritoRepo) FindLinea(ctx context.Context, idCliente, idProducto int64, opciones string) (*model.CarritoItem, error) {
	return r.FindLineaTx(r.db.WithContext(ctx), idCliente, idProducto, opciones)
}

func (r *carritoRepo) Crear(ctx context.Context, item *model.CarritoItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *carritoRepo) ActualizarCantidad(ctx context.Context, idCarrito, idCliente int64, cantidad int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.CarritoItem{}).
		Where("id_carrito = ? AND id_cliente = ?", idCarrito, idCliente).
		Updates(map[string]interface{}{
			"cantidad":       cantidad,
			"fecha_agregado": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	return res.RowsAffected > 0, res.Error
}

func (r *carritoRepo) Eliminar(ctx context.Context, idCarrito, idCliente int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id_carrito = ? AND id_cliente = ?", idCarrito, idCliente).
		Delete(&model.CarritoItem{})
	return res.RowsAffected > 0, res.Error
}

func (r *carritoRepo) Vaciar(ctx context.Context, idCliente int64) error {
	return r.db.WithContext(ctx).
		Where("id_cliente = ?", idCliente).
		Delete(&model.CarritoItem{}).Error
}

func (r *carritoRepo) FindLineaTx(tx *gorm.DB, idCliente, idProducto int64, opciones string) (*model.CarritoItem, error) {
	var item model.CarritoItem
	// Lines merge only when the options snapshot matches exactly.
	err := tx.Where("id_cliente = ? AND id_producto = ? AND opciones::text = ?::text",
		idCliente, idProducto, opciones).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *carritoRepo) CrearTx(tx *gorm.DB, item *model.CarritoItem) error {
	return tx.Create(item).Error
}

func (r *carritoRepo) SumarCantidadTx(tx *gorm.DB, idCarrito int64, cantidad int) error {
	return tx.Model(&model.CarritoItem{}).
		Where("id_carrito = ?", idCarrito).
		Update("cantidad", gorm.Expr("cantidad + ?", cantidad)).Error
}
