package service

import (
	"errors"
	"fmt"

	"github.com/Alcm1997/Agroconecta/internal/model"
	"github.com/Alcm1997/Agroconecta/internal/repository"

	"gorm.io/gorm"
)

// InventarioService guards product stock inside the order placement
// transaction: lock the row, validate availability, decrement immediately.
// The row lock is what prevents overselling under concurrent placements.
type InventarioService interface {
	// ReservarStockTx locks the product row, validates cantidad against the
	// current stock and decrements it. Returns the locked product so callers
	// can resolve pricing without re-reading.
	ReservarStockTx(tx *gorm.DB, idProducto int64, cantidad int) (*model.Producto, error)

	// RestaurarStockTx re-adds the recorded quantity of every line item.
	// Called from order cancellation, inside the cancelling transaction.
	RestaurarStockTx(tx *gorm.DB, items []model.DetallePedido) error
}

type inventarioService struct {
	productoRepo repository.ProductoRepository
}

func NewInventarioService(productoRepo repository.ProductoRepository) InventarioService {
	return &inventarioService{productoRepo: productoRepo}
}

func (s *inventarioService) ReservarStockTx(tx *gorm.DB, idProducto int64, cantidad int) (*model.Producto, error) {
	producto, err := s.productoRepo.FindByIDForUpdateTx(tx, idProducto)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: producto %d", ErrProductoNoExiste, idProducto)
		}
		return nil, err
	}

	if producto.Stock < cantidad {
		return nil, fmt.Errorf("%w para producto %d", ErrStockInsuficiente, idProducto)
	}

	// Decrement now, not at commit: later lines of the same order (and
	// concurrent orders once we commit) must see the reduced value.
	if err := s.productoRepo.DescontarStockTx(tx, idProducto, cantidad); err != nil {
		return nil, err
	}
	producto.Stock -= cantidad
	return producto, nil
}

func (s *inventarioService) RestaurarStockTx(tx *gorm.DB, items []model.DetallePedido) error {
	for _, item := range items {
		if err := s.productoRepo.RestaurarStockTx(tx, item.IDProducto, item.Cantidad); err != nil {
			return err
		}
	}
	return nil
}
