package repository

import (
	"context"

	"github.com/Alcm1997/Agroconecta/internal/model"

	"gorm.io/gorm"
)

// ClienteRepository only ever surfaces active clients; soft-deleted rows
// (estado = 'Inactivo') stay in the table but are invisible here.
type ClienteRepository interface {
	Crear(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id int64) (*model.Cliente, error)
	FindByEmail(ctx context.Context, email string) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	Actualizar(ctx context.Context, c *model.Cliente) error
	Desactivar(ctx context.Context, id int64) error
	FindByIDTx(tx *gorm.DB, id int64) (*model.Cliente, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Crear(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id int64) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("id_cliente = ? AND estado = ?", id, "Activo").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByEmail(ctx context.Context, email string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("email = ? AND estado = ?", email, "Activo").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).
		Where("estado = ?", "Activo").
		Order("id_cliente ASC").
		Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Actualizar(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) Desactivar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).
		Where("id_cliente = ?", id).Update("estado", "Inactivo").Error
}

func (r *clienteRepo) FindByIDTx(tx *gorm.DB, id int64) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.Where("id_cliente = ? AND estado = ?", id, "Activo").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
