package repository

import (
	"context"

	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/model"

	"gorm.io/gorm"
)

type PedidoRepository interface {
	CrearTx(tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id int64) (*model.Pedido, error)
	FindByIDTx(tx *gorm.DB, id int64) (*model.Pedido, error)
	FindByIDYCliente(ctx context.Context, id, idCliente int64) (*model.Pedido, error)
	ListByCliente(ctx context.Context, idCliente int64) ([]model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)

	// UpdateEstadoTx transitions estado only when the row is still in
	// estadoPrevio; it reports whether a row was actually updated. The guard
	// makes concurrent double-cancellations lose cleanly instead of
	// double-restoring stock.
	UpdateEstadoTx(tx *gorm.DB, id int64, estadoPrevio, estadoNuevo string) (bool, error)
	StampFechaEntregaTx(tx *gorm.DB, id int64) error

	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) CrearTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id int64) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("TipoPago").
		Preload("Items.Producto.Unidad").Preload("Items.Producto.Categoria").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) FindByIDTx(tx *gorm.DB, id int64) (*model.Pedido, error) {
	var p model.Pedido
	if err := tx.Preload("Items").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) FindByIDYCliente(ctx context.Context, id, idCliente int64) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("TipoPago").Preload("Items.Producto.Unidad").
		Where("id_pedido = ? AND id_cliente = ?", id, idCliente).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) ListByCliente(ctx context.Context, idCliente int64) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("TipoPago").
		Where("id_cliente = ?", idCliente).
		Order("fecha_pedido DESC, id_pedido DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pedido{})

	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	// fecha_pedido is a DATE column, so a YYYY-MM-DD fecha_fin is
	// end-date inclusive: orders placed any time that day match.
	if filter.FechaInicio != "" {
		q = q.Where("fecha_pedido >= ?", filter.FechaInicio)
	}
	if filter.FechaFin != "" {
		q = q.Where("fecha_pedido <= ?", filter.FechaFin)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("TipoPago").
		Order("fecha_pedido DESC, id_pedido DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) UpdateEstadoTx(tx *gorm.DB, id int64, estadoPrevio, estadoNuevo string) (bool, error) {
	res := tx.Model(&model.Pedido{}).
		Where("id_pedido = ? AND estado = ?", id, estadoPrevio).
		Update("estado", estadoNuevo)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *pedidoRepo) StampFechaEntregaTx(tx *gorm.DB, id int64) error {
	return tx.Model(&model.Pedido{}).Where("id_pedido = ?", id).
		Update("fecha_entrega", gorm.Expr("CURRENT_DATE")).Error
}
