package service

import (
	"context"
	"errors"
	"time"

	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/model"
	"github.com/Alcm1997/Agroconecta/internal/repository"

	"gorm.io/gorm"
)

type CarritoService interface {
	Listar(ctx context.Context, idCliente int64) (*dto.CarritoResponse, error)
	Agregar(ctx context.Context, idCliente int64, req dto.AgregarItemRequest) error
	ActualizarCantidad(ctx context.Context, idCliente, idCarrito int64, cantidad int) error
	Eliminar(ctx context.Context, idCliente, idCarrito int64) error
	Vaciar(ctx context.Context, idCliente int64) error

	// Sincronizar merges the browser-side cart into the persisted cart at
	// login: same product + same options snapshot adds quantities, anything
	// else becomes a new line. All lines merge in one transaction.
	Sincronizar(ctx context.Context, idCliente int64, req dto.SincronizarCarritoRequest) (*dto.CarritoResponse, error)
}

type carritoService struct {
	repo         repository.CarritoRepository
	productoRepo repository.ProductoRepository
}

func NewCarritoService(repo repository.CarritoRepository, productoRepo repository.ProductoRepository) CarritoService {
	return &carritoService{repo: repo, productoRepo: productoRepo}
}

func (s *carritoService) Listar(ctx context.Context, idCliente int64) (*dto.CarritoResponse, error) {
	items, err := s.repo.ListByCliente(ctx, idCliente)
	if err != nil {
		return nil, err
	}
	resp := &dto.CarritoResponse{Items: make([]dto.CarritoItemResponse, 0, len(items))}
	for _, item := range items {
		line := dto.CarritoItemResponse{
			IDCarrito:     item.ID,
			IDProducto:    item.IDProducto,
			Cantidad:      item.Cantidad,
			Opciones:      opcionesFromJSON(item.Opciones),
			FechaAgregado: item.FechaAgregado.Format(time.RFC3339),
		}
		if item.Producto != nil {
			line.Nombre = item.Producto.Nombre
			line.PrecioUnitario = item.Producto.PrecioUnitario
			line.Stock = item.Producto.Stock
			line.ImagenURL = item.Producto.ImagenURL
			if item.Producto.Unidad != nil {
				line.UnidadMedida = &item.Producto.Unidad.Descripcion
			}
		}
		resp.Items = append(resp.Items, line)
	}
	return resp, nil
}

func (s *carritoService) Agregar(ctx context.Context, idCliente int64, req dto.AgregarItemRequest) error {
	if _, err := s.productoRepo.FindByID(ctx, req.IDProducto); err != nil {
		return ErrProductoNoExiste
	}

	opciones := opcionesJSON(req.Opciones)
	existente, err := s.repo.FindLinea(ctx, idCliente, req.IDProducto, opciones)
	switch {
	case err == nil:
		_, err = s.repo.ActualizarCantidad(ctx, existente.ID, idCliente, existente.Cantidad+req.Cantidad)
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.repo.Crear(ctx, &model.CarritoItem{
			IDCliente:     idCliente,
			IDProducto:    req.IDProducto,
			Cantidad:      req.Cantidad,
			Opciones:      opciones,
			FechaAgregado: time.Now(),
		})
	default:
		return err
	}
}

func (s *carritoService) ActualizarCantidad(ctx context.Context, idCliente, idCarrito int64, cantidad int) error {
	// Zero or negative quantity removes the line.
	if cantidad <= 0 {
		return s.Eliminar(ctx, idCliente, idCarrito)
	}
	ok, err := s.repo.ActualizarCantidad(ctx, idCarrito, idCliente, cantidad)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("ítem del carrito no encontrado")
	}
	return nil
}

func (s *carritoService) Eliminar(ctx context.Context, idCliente, idCarrito int64) error {
	ok, err := s.repo.Eliminar(ctx, idCarrito, idCliente)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("ítem del carrito no encontrado")
	}
	return nil
}

func (s *carritoService) Vaciar(ctx context.Context, idCliente int64) error {
	return s.repo.Vaciar(ctx, idCliente)
}

func (s *carritoService) Sincronizar(ctx context.Context, idCliente int64, req dto.SincronizarCarritoRequest) (*dto.CarritoResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, it := range req.Items {
			if it.Cantidad < 1 {
				continue
			}
			opciones := opcionesJSON(it.Opciones)
			existente, err := s.repo.FindLineaTx(tx, idCliente, it.IDProducto, opciones)
			switch {
			case err == nil:
				if err := s.repo.SumarCantidadTx(tx, existente.ID, it.Cantidad); err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				item := &model.CarritoItem{
					IDCliente:     idCliente,
					IDProducto:    it.IDProducto,
					Cantidad:      it.Cantidad,
					Opciones:      opciones,
					FechaAgregado: time.Now(),
				}
				if err := s.repo.CrearTx(tx, item); err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Listar(ctx, idCliente)
}
