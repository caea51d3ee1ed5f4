package service

import (
	"github.com/Alcm1997/Agroconecta/internal/model"
	"github.com/Alcm1997/Agroconecta/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PrecioService resolves the unit price of an order line: the product's base
// price, overridden by a matching volume tier, plus the per-unit surcharge of
// the selected add-on options. Read-only, safe to call while the product row
// is locked by the enclosing transaction.
type PrecioService interface {
	// PrecioUnitarioTx returns the final per-unit price for cantidad units of
	// producto with the given option selection, rounded to 2 decimals.
	PrecioUnitarioTx(tx *gorm.DB, producto *model.Producto, cantidad int, opciones []int64) (decimal.Decimal, error)
}

type precioService struct {
	productoRepo repository.ProductoRepository
}

func NewPrecioService(productoRepo repository.ProductoRepository) PrecioService {
	return &precioService{productoRepo: productoRepo}
}

func (s *precioService) PrecioUnitarioTx(tx *gorm.DB, producto *model.Producto, cantidad int, opciones []int64) (decimal.Decimal, error) {
	precio := producto.PrecioUnitario

	// Volume tier: the tier with the highest cantidad_minima containing the
	// quantity wins; no match keeps the base price.
	descuento, err := s.productoRepo.FindDescuentoAplicableTx(tx, producto.ID, cantidad)
	if err != nil {
		return decimal.Zero, err
	}
	if descuento != nil {
		precio = descuento.PrecioDescuento
	}

	// Per-unit surcharges. Options not associated with the product are
	// ignored by the lookup, not rejected.
	adicional, err := s.productoRepo.SumarAdicionalesTx(tx, producto.ID, opciones)
	if err != nil {
		return decimal.Zero, err
	}

	// Round at the unit price, before any multiplication by quantity.
	return precio.Add(adicional).Round(2), nil
}
