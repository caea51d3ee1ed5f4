package repository

import (
	"context"

	"github.com/Alcm1997/Agroconecta/internal/model"

	"gorm.io/gorm"
)

// CatalogoRepository groups the small reference tables the storefront and the
// admin panel read: categorías, unidades de medida y tipos de pago.
type CatalogoRepository interface {
	ListCategorias(ctx context.Context) ([]model.Categoria, error)
	CrearCategoria(ctx context.Context, c *model.Categoria) error
	FindCategoriaPorDescripcion(ctx context.Context, descripcion string) (*model.Categoria, error)

	ListUnidades(ctx context.Context) ([]model.UnidadMedida, error)
	CrearUnidad(ctx context.Context, u *model.UnidadMedida) error

	ListTiposPago(ctx context.Context) ([]model.TipoPago, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) ListCategorias(ctx context.Context) ([]model.Categoria, error) {
	var categorias []model.Categoria
	err := r.db.WithContext(ctx).Order("id_categoria ASC").Find(&categorias).Error
	return categorias, err
}

func (r *catalogoRepo) CrearCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogoRepo) FindCategoriaPorDescripcion(ctx context.Context, descripcion string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Where("descripcion = ?", descripcion).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *catalogoRepo) ListUnidades(ctx context.Context) ([]model.UnidadMedida, error) {
	var unidades []model.UnidadMedida
	err := r.db.WithContext(ctx).Order("id_unidad ASC").Find(&unidades).Error
	return unidades, err
}

func (r *catalogoRepo) CrearUnidad(ctx context.Context, u *model.UnidadMedida) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *catalogoRepo) ListTiposPago(ctx context.Context) ([]model.TipoPago, error) {
	var tipos []model.TipoPago
	err := r.db.WithContext(ctx).Order("id_tipo_pago ASC").Find(&tipos).Error
	return tipos, err
}
