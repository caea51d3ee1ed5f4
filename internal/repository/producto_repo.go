package repository

import (
	"context"

	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Crear(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id int64) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Actualizar(ctx context.Context, p *model.Producto) error
	Eliminar(ctx context.Context, id int64) error

	// Volume tiers and add-on options
	ReemplazarDescuentos(ctx context.Context, idProducto int64, descuentos []model.DescuentoVolumen) error
	ReemplazarOpciones(ctx context.Context, idProducto int64, idOpciones []int64) error
	ListOpciones(ctx context.Context) ([]model.OpcionAdicional, error)
	ReemplazarComponentes(ctx context.Context, idPack int64, componentes []model.PackComponente) error

	// Used inside the order placement transaction; callers must pass the tx.
	FindByIDForUpdateTx(tx *gorm.DB, id int64) (*model.Producto, error)
	DescontarStockTx(tx *gorm.DB, id int64, cantidad int) error
	RestaurarStockTx(tx *gorm.DB, id int64, cantidad int) error

	// Pricing lookups, tx-scoped so they observe locked rows consistently.
	FindDescuentoAplicableTx(tx *gorm.DB, idProducto int64, cantidad int) (*model.DescuentoVolumen, error)
	SumarAdicionalesTx(tx *gorm.DB, idProducto int64, idOpciones []int64) (decimal.Decimal, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) Crear(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id int64) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Categoria").Preload("Unidad").
		Preload("Descuentos", func(db *gorm.DB) *gorm.DB { return db.Order("cantidad_minima ASC") }).
		Preload("Opciones").
		Preload("Componentes.Producto").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.IDCategoria != 0 {
		q = q.Where("id_categoria = ?", filter.IDCategoria)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Categoria").Preload("Unidad").
		Order("id_producto ASC").
		Limit(filter.Limit).Offset(offset).
		Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Actualizar(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Eliminar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, id).Error
}

func (r *productoRepo) ReemplazarDescuentos(ctx context.Context, idProducto int64, descuentos []model.DescuentoVolumen) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_producto = ?", idProducto).Delete(&model.DescuentoVolumen{}).Error; err != nil {
			return err
		}
		if len(descuentos) == 0 {
			return nil
		}
		for i := range descuentos {
			descuentos[i].IDProducto = idProducto
		}
		return tx.Create(&descuentos).Error
	})
}

func (r *productoRepo) ReemplazarOpciones(ctx context.Context, idProducto int64, idOpciones []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_producto = ?", idProducto).Delete(&model.ProductoOpcion{}).Error; err != nil {
			return err
		}
		for _, idOpcion := range idOpciones {
			po := model.ProductoOpcion{IDProducto: idProducto, IDOpcion: idOpcion}
			if err := tx.Create(&po).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *productoRepo) ListOpciones(ctx context.Context) ([]model.OpcionAdicional, error) {
	var opciones []model.OpcionAdicional
	err := r.db.WithContext(ctx).Order("id_opcion ASC").Find(&opciones).Error
	return opciones, err
}

func (r *productoRepo) ReemplazarComponentes(ctx context.Context, idPack int64, componentes []model.PackComponente) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_pack = ?", idPack).Delete(&model.PackComponente{}).Error; err != nil {
			return err
		}
		if len(componentes) == 0 {
			return nil
		}
		for i := range componentes {
			componentes[i].IDPack = idPack
		}
		return tx.Create(&componentes).Error
	})
}

// FindByIDForUpdateTx locks the product row (SELECT … FOR UPDATE) until the
// enclosing transaction ends. This is what serializes concurrent stock
// reservations per product.
func (r *productoRepo) FindByIDForUpdateTx(tx *gorm.DB, id int64) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id int64, cantidad int) error {
	return tx.Model(&model.Producto{}).Where("id_producto = ?", id).
		Update("stock", gorm.Expr("stock - ?", cantidad)).Error
}

func (r *productoRepo) RestaurarStockTx(tx *gorm.DB, id int64, cantidad int) error {
	return tx.Model(&model.Producto{}).Where("id_producto = ?", id).
		Update("stock", gorm.Expr("stock + ?", cantidad)).Error
}

// FindDescuentoAplicableTx returns the volume tier that applies to cantidad,
// or nil when none matches. With overlapping tiers the one with the highest
// cantidad_minima wins; ORDER BY cantidad_minima DESC LIMIT 1 makes the
// tie-break deterministic.
func (r *productoRepo) FindDescuentoAplicableTx(tx *gorm.DB, idProducto int64, cantidad int) (*model.DescuentoVolumen, error) {
	var d model.DescuentoVolumen
	err := tx.
		Where("id_producto = ? AND cantidad_minima <= ? AND (cantidad_maxima IS NULL OR cantidad_maxima >= ?)",
			idProducto, cantidad, cantidad).
		Order("cantidad_minima DESC").
		Limit(1).
		Take(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// SumarAdicionalesTx sums precio_adicional over the selected options that are
// actually associated with the product; options outside the association are
// ignored by the join, not rejected.
func (r *productoRepo) SumarAdicionalesTx(tx *gorm.DB, idProducto int64, idOpciones []int64) (decimal.Decimal, error) {
	if len(idOpciones) == 0 {
		return decimal.Zero, nil
	}
	var extra decimal.NullDecimal
	err := tx.Model(&model.OpcionAdicional{}).
		Select("COALESCE(SUM(opcion_adicional.precio_adicional), 0)").
		Joins("JOIN producto_opcion po ON po.id_opcion = opcion_adicional.id_opcion").
		Where("po.id_producto = ? AND opcion_adicional.id_opcion IN ?", idProducto, idOpciones).
		Scan(&extra).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !extra.Valid {
		return decimal.Zero, nil
	}
	return extra.Decimal, nil
}
