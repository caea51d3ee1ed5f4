package repository

import (
	"context"
	"fmt"

	"github.com/Alcm1997/Agroconecta/internal/model"

	"gorm.io/gorm"
)

type ComprobanteRepository interface {
	CrearTx(tx *gorm.DB, c *model.Comprobante) error
	FindByID(ctx context.Context, id int64) (*model.Comprobante, error)
	FindByPedidoID(ctx context.Context, idPedido int64) (*model.Comprobante, error)
	UpdatePDFPath(ctx context.Context, id int64, path string) error

	// NextNumeroTx allocates the next number for the given tipo from its
	// Postgres sequence. Safe under concurrent transactions; a rollback after
	// allocation leaves a gap, never a duplicate.
	NextNumeroTx(tx *gorm.DB, tipo string) (int64, error)
}

type comprobanteRepo struct{ db *gorm.DB }

func NewComprobanteRepository(db *gorm.DB) ComprobanteRepository {
	return &comprobanteRepo{db: db}
}

func (r *comprobanteRepo) CrearTx(tx *gorm.DB, c *model.Comprobante) error {
	return tx.Create(c).Error
}

func (r *comprobanteRepo) FindByID(ctx context.Context, id int64) (*model.Comprobante, error) {
	var c model.Comprobante
	err := r.db.WithContext(ctx).Preload("Items.Producto").First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comprobanteRepo) FindByPedidoID(ctx context.Context, idPedido int64) (*model.Comprobante, error) {
	var c model.Comprobante
	err := r.db.WithContext(ctx).Preload("Items.Producto").
		Where("id_pedido = ?", idPedido).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comprobanteRepo) UpdatePDFPath(ctx context.Context, id int64, path string) error {
	return r.db.WithContext(ctx).Model(&model.Comprobante{}).
		Where("id_comprobante = ?", id).Update("pdf_path", path).Error
}

func (r *comprobanteRepo) NextNumeroTx(tx *gorm.DB, tipo string) (int64, error) {
	seq := "comprobante_boleta_seq"
	if tipo == model.ComprobanteFactura {
		seq = "comprobante_factura_seq"
	}
	var num int64
	if err := tx.Raw(fmt.Sprintf("SELECT nextval('%s')", seq)).Scan(&num).Error; err != nil {
		return 0, err
	}
	return num, nil
}
