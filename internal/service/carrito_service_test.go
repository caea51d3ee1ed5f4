package service

import (
	"context"
	"testing"
	"time"

	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/model"
	"github.com/Alcm1997/Agroconecta/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCarritoRepo struct {
	items  map[int64]*model.CarritoItem
	nextID int64
}

func newStubCarritoRepo() *stubCarritoRepo {
	return &stubCarritoRepo{items: make(map[int64]*model.CarritoItem)}
}

func (r *stubCarritoRepo) ListByCliente(_ context.Context, idCliente int64) ([]model.CarritoItem, error) {
	var out []model.CarritoItem
	for _, item := range r.items {
		if item.IDCliente == idCliente {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubCarritoRepo) FindLinea(_ context.Context, idCliente, idProducto int64, opciones string) (*model.CarritoItem, error) {
	return r.FindLineaTx(nil, idCliente, idProducto, opciones)
}

func (r *stubCarritoRepo) Crear(_ context.Context, item *model.CarritoItem) error {
	return r.CrearTx(nil, item)
}

func (r *stubCarritoRepo) ActualizarCantidad(_ context.Context, idCarrito, idCliente int64, cantidad int) (bool, error) {
	item, ok := r.items[idCarrito]
	if !ok || item.IDCliente != idCliente {
		return false, nil
	}
	item.Cantidad = cantidad
	return true, nil
}

func (r *stubCarritoRepo) Eliminar(_ context.Context, idCarrito, idCliente int64) (bool, error) {
	item, ok := r.items[idCarrito]
	if !ok || item.IDCliente != idCliente {
		return false, nil
	}
	delete(r.items, idCarrito)
	return true, nil
}

func (r *stubCarritoRepo) Vaciar(_ context.Context, idCliente int64) error {
	for id, item := range r.items {
		if item.IDCliente == idCliente {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *stubCarritoRepo) FindLineaTx(_ *gorm.DB, idCliente, idProducto int64, opciones string) (*model.CarritoItem, error) {
	for _, item := range r.items {
		if item.IDCliente == idCliente && item.IDProducto == idProducto && item.Opciones == opciones {
			cloned := *item
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCarritoRepo) CrearTx(_ *gorm.DB, item *model.CarritoItem) error {
	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = item
	return nil
}

func (r *stubCarritoRepo) SumarCantidadTx(_ *gorm.DB, idCarrito int64, cantidad int) error {
	r.items[idCarrito].Cantidad += cantidad
	return nil
}

func (r *stubCarritoRepo) DB() *gorm.DB { return nil }

var _ repository.CarritoRepository = (*stubCarritoRepo)(nil)

func newCarritoFixture() (*stubCarritoRepo, *stubProductoRepo, CarritoService) {
	carrito := newStubCarritoRepo()
	productos := newStubProductoRepo()
	return carrito, productos, NewCarritoService(carrito, productos)
}

const idClienteCarrito int64 = 1

func TestAgregar_NuevaLinea(t *testing.T) {
	_, productos, svc := newCarritoFixture()
	p := seedProducto(productos, "10.00", 20)

	err := svc.Agregar(context.Background(), idClienteCarrito, dto.AgregarItemRequest{
		IDProducto: p.ID, Cantidad: 3,
	})
	require.NoError(t, err)

	resp, err := svc.Listar(context.Background(), idClienteCarrito)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Cantidad)
	assert.Equal(t, p.ID, resp.Items[0].IDProducto)
}

func TestAgregar_MismaLineaSumaCantidades(t *testing.T) {
	_, productos, svc := newCarritoFixture()
	p := seedProducto(productos, "10.00", 20)

	req := dto.AgregarItemRequest{IDProducto: p.ID, Cantidad: 2}
	require.NoError(t, svc.Agregar(context.Background(), idClienteCarrito, req))
	require.NoError(t, svc.Agregar(context.Background(), idClienteCarrito, req))

	resp, err := svc.Listar(context.Background(), idClienteCarrito)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 4, resp.Items[0].Cantidad)
}

func TestAgregar_OpcionesDistintasCreanLineasSeparadas(t *testing.T) {
	_, productos, svc := newCarritoFixture()
	p := seedProducto(productos, "10.00", 20)

	require.NoError(t, svc.Agregar(context.Background(), idClienteCarrito,
		dto.AgregarItemRequest{IDProducto: p.ID, Cantidad: 1}))
	require.NoError(t, svc.Agregar(context.Background(), idClienteCarrito,
		dto.AgregarItemRequest{IDProducto: p.ID, Cantidad: 1, Opciones: []int64{1}}))

	resp, err := svc.Listar(context.Background(), idClienteCarrito)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
}

func TestAgregar_ProductoNoExiste(t *testing.T) {
	_, _, svc := newCarritoFixture()

	err := svc.Agregar(context.Background(), idClienteCarrito, dto.AgregarItemRequest{
		IDProducto: 99, Cantidad: 1,
	})
	require.ErrorIs(t, err, ErrProductoNoExiste)
}

func TestActualizarCantidad_CeroElimina(t *testing.T) {
	carrito, productos, svc := newCarritoFixture()
	p := seedProducto(productos, "10.00", 20)
	require.NoError(t, svc.Agregar(context.Background(), idClienteCarrito,
		dto.AgregarItemRequest{IDProducto: p.ID, Cantidad: 2}))

	var idCarrito int64
	for id := range carrito.items {
		idCarrito = id
	}

	require.NoError(t, svc.ActualizarCantidad(context.Background(), idClienteCarrito, idCarrito, 0))
	assert.Empty(t, carrito.items)
}

func TestActualizarCantidad_LineaAjena(t *testing.T) {
	carrito, productos, svc := newCarritoFixture()
	p := seedProducto(productos, "10.00", 20)
	carrito.items[7] = &model.CarritoItem{
		ID: 7, IDCliente: 99, IDProducto: p.ID, Cantidad: 1,
		Opciones: "[]", FechaAgregado: time.Now(),
	}

	err := svc.ActualizarCantidad(context.Background(), idClienteCarrito, 7, 5)
	require.Error(t, err)
	assert.Equal(t, 1, carrito.items[7].Cantidad)
}

func TestVaciar_SoloDelCliente(t *testing.T) {
	carrito, productos, svc := newCarritoFixture()
	p := seedProducto(productos, "10.00", 20)
	require.NoError(t, svc.Agregar(context.Background(), idClienteCarrito,
		dto.AgregarItemRequest{IDProducto: p.ID, Cantidad: 1}))
	carrito.items[50] = &model.CarritoItem{
		ID: 50, IDCliente: 2, IDProducto: p.ID, Cantidad: 1,
		Opciones: "[]", FechaAgregado: time.Now(),
	}

	require.NoError(t, svc.Vaciar(context.Background(), idClienteCarrito))
	require.Len(t, carrito.items, 1)
	assert.Equal(t, int64(2), carrito.items[50].IDCliente)
}

func TestSincronizar_FusionaConCarritoPersistido(t *testing.T) {
	_, productos, svc := newCarritoFixture()
	p1 := seedProducto(productos, "10.00", 20)
	p2 := seedProducto(productos, "4.50", 20)
	require.NoError(t, svc.Agregar(context.Background(), idClienteCarrito,
		dto.AgregarItemRequest{IDProducto: p1.ID, Cantidad: 2}))

	resp, err := svc.Sincronizar(context.Background(), idClienteCarrito, dto.SincronizarCarritoRequest{
		Items: []dto.AgregarItemRequest{
			{IDProducto: p1.ID, Cantidad: 3},
			{IDProducto: p2.ID, Cantidad: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	cantidades := map[int64]int{}
	for _, item := range resp.Items {
		cantidades[item.IDProducto] = item.Cantidad
	}
	assert.Equal(t, 5, cantidades[p1.ID])
	assert.Equal(t, 1, cantidades[p2.ID])
}

func TestSincronizar_IgnoraCantidadesInvalidas(t *testing.T) {
	_, productos, svc := newCarritoFixture()
	p := seedProducto(productos, "10.00", 20)

	resp, err := svc.Sincronizar(context.Background(), idClienteCarrito, dto.SincronizarCarritoRequest{
		Items: []dto.AgregarItemRequest{{IDProducto: p.ID, Cantidad: 0}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}
