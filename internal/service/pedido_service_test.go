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

// ── In-memory PedidoRepository stub ──────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[int64]*model.Pedido
	nextID  int64
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[int64]*model.Pedido)}
}

func (r *stubPedidoRepo) CrearTx(_ *gorm.DB, p *model.Pedido) error {
	r.nextID++
	p.ID = r.nextID
	for i := range p.Items {
		p.Items[i].IDPedido = p.ID
	}
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id int64) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) FindByIDTx(_ *gorm.DB, id int64) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubPedidoRepo) FindByIDYCliente(_ context.Context, id, idCliente int64) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok || p.IDCliente != idCliente {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) ListByCliente(_ context.Context, idCliente int64) ([]model.Pedido, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if p.IDCliente == idCliente {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) List(_ context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if filter.Estado != "" && p.Estado != filter.Estado {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) UpdateEstadoTx(_ *gorm.DB, id int64, estadoPrevio, estadoNuevo string) (bool, error) {
	p, ok := r.pedidos[id]
	if !ok || p.Estado != estadoPrevio {
		return false, nil
	}
	p.Estado = estadoNuevo
	return true, nil
}

func (r *stubPedidoRepo) StampFechaEntregaTx(_ *gorm.DB, id int64) error {
	hoy := time.Now()
	r.pedidos[id].FechaEntrega = &hoy
	return nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// ── In-memory ComprobanteRepository stub ─────────────────────────────────────

type stubComprobanteRepo struct {
	comprobantes map[int64]*model.Comprobante
	byPedido     map[int64]*model.Comprobante
	nextID       int64
	boletaSeq    int64
	facturaSeq   int64
}

func newStubComprobanteRepo() *stubComprobanteRepo {
	return &stubComprobanteRepo{
		comprobantes: make(map[int64]*model.Comprobante),
		byPedido:     make(map[int64]*model.Comprobante),
	}
}

func (r *stubComprobanteRepo) CrearTx(_ *gorm.DB, c *model.Comprobante) error {
	r.nextID++
	c.ID = r.nextID
	r.comprobantes[c.ID] = c
	r.byPedido[c.IDPedido] = c
	return nil
}

func (r *stubComprobanteRepo) FindByID(_ context.Context, id int64) (*model.Comprobante, error) {
	c, ok := r.comprobantes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubComprobanteRepo) FindByPedidoID(_ context.Context, idPedido int64) (*model.Comprobante, error) {
	c, ok := r.byPedido[idPedido]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubComprobanteRepo) UpdatePDFPath(_ context.Context, id int64, path string) error {
	r.comprobantes[id].PDFPath = &path
	return nil
}

func (r *stubComprobanteRepo) NextNumeroTx(_ *gorm.DB, tipo string) (int64, error) {
	if tipo == model.ComprobanteFactura {
		r.facturaSeq++
		return r.facturaSeq, nil
	}
	r.boletaSeq++
	return r.boletaSeq, nil
}

var _ repository.ComprobanteRepository = (*stubComprobanteRepo)(nil)

// ── In-memory ClienteRepository stub ─────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[int64]*model.Cliente
	nextID   int64
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[int64]*model.Cliente)}
}

func (r *stubClienteRepo) Crear(_ context.Context, c *model.Cliente) error {
	r.nextID++
	c.ID = r.nextID
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id int64) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok || c.Estado != "Activo" {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByEmail(_ context.Context, email string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Email == email && c.Estado == "Activo" {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if c.Estado == "Activo" {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) Actualizar(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Desactivar(_ context.Context, id int64) error {
	if c, ok := r.clientes[id]; ok {
		c.Estado = "Inactivo"
	}
	return nil
}

func (r *stubClienteRepo) FindByIDTx(tx *gorm.DB, id int64) (*model.Cliente, error) {
	return r.FindByID(context.Background(), id)
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

type pedidoFixture struct {
	productos    *stubProductoRepo
	pedidos      *stubPedidoRepo
	comprobantes *stubComprobanteRepo
	clientes     *stubClienteRepo
	svc          PedidoService
}

func newPedidoFixture() *pedidoFixture {
	productos := newStubProductoRepo()
	pedidos := newStubPedidoRepo()
	comprobantes := newStubComprobanteRepo()
	clientes := newStubClienteRepo()
	svc := NewPedidoService(
		pedidos, comprobantes, clientes,
		NewInventarioService(productos),
		NewPrecioService(productos),
		nil, // no async dispatcher in unit tests
	)
	return &pedidoFixture{
		productos:    productos,
		pedidos:      pedidos,
		comprobantes: comprobantes,
		clientes:     clientes,
		svc:          svc,
	}
}

func (f *pedidoFixture) seedCliente(tipo string) *model.Cliente {
	nombres, apellidos := "María", "Quispe"
	razon := "Agroexportadora del Valle SAC"
	c := &model.Cliente{
		NumeroDocumento: "45678912",
		Email:           "maria@example.com",
		TipoCliente:     tipo,
		Estado:          "Activo",
	}
	if tipo == model.TipoJuridica {
		c.RazonSocial = &razon
		c.NumeroDocumento = "20123456789"
	} else {
		c.Nombres = &nombres
		c.Apellidos = &apellidos
	}
	_ = f.clientes.Crear(context.Background(), c)
	return c
}

// ── CrearPedido ──────────────────────────────────────────────────────────────

func TestCrearPedido_NaturalEmiteBoletaConIGV(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 50)
	f.productos.descuentos[p.ID] = []model.DescuentoVolumen{
		{IDProducto: p.ID, CantidadMinima: 10, PrecioDescuento: dec("8.00")},
	}

	resp, err := f.svc.CrearPedido(context.Background(), cliente.ID, dto.CrearPedidoRequest{
		Items: []dto.ItemPedidoRequest{{IDProducto: p.ID, Cantidad: 12}},
	})
	require.NoError(t, err)

	// 12 × 8.00 tier price
	assert.True(t, resp.Total.Equal(dec("96.00")), "total = %s", resp.Total)
	assert.True(t, resp.Subtotal.Equal(dec("81.36")), "subtotal = %s", resp.Subtotal)
	assert.True(t, resp.IGV.Equal(dec("14.64")), "igv = %s", resp.IGV)
	assert.True(t, resp.Subtotal.Add(resp.IGV).Equal(resp.Total))

	assert.Equal(t, model.ComprobanteBoleta, resp.TipoComprobante)
	assert.Equal(t, int64(1), resp.NumeroComprobante)
	assert.Equal(t, 38, f.productos.productos[p.ID].Stock)

	pedido := f.pedidos.pedidos[resp.IDPedido]
	require.NotNil(t, pedido)
	assert.Equal(t, model.EstadoPendiente, pedido.Estado)
	require.Len(t, pedido.Items, 1)
	assert.True(t, pedido.Items[0].PrecioUnitario.Equal(dec("8.00")))
}

func TestCrearPedido_JuridicaEmiteFactura(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoJuridica)
	p := seedProducto(f.productos, "25.00", 10)

	resp, err := f.svc.CrearPedido(context.Background(), cliente.ID, dto.CrearPedidoRequest{
		Items: []dto.ItemPedidoRequest{{IDProducto: p.ID, Cantidad: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ComprobanteFactura, resp.TipoComprobante)
	assert.Equal(t, int64(1), resp.NumeroComprobante)
}

func TestCrearPedido_NumeracionIndependientePorTipo(t *testing.T) {
	f := newPedidoFixture()
	natural := f.seedCliente(model.TipoNatural)
	juridica := f.seedCliente(model.TipoJuridica)
	p := seedProducto(f.productos, "5.00", 100)

	item := []dto.ItemPedidoRequest{{IDProducto: p.ID, Cantidad: 1}}
	r1, err := f.svc.CrearPedido(context.Background(), natural.ID, dto.CrearPedidoRequest{Items: item})
	require.NoError(t, err)
	r2, err := f.svc.CrearPedido(context.Background(), natural.ID, dto.CrearPedidoRequest{Items: item})
	require.NoError(t, err)
	r3, err := f.svc.CrearPedido(context.Background(), juridica.ID, dto.CrearPedidoRequest{Items: item})
	require.NoError(t, err)

	assert.Equal(t, int64(1), r1.NumeroComprobante)
	assert.Equal(t, int64(2), r2.NumeroComprobante)
	// Facturas draw from their own sequence
	assert.Equal(t, int64(1), r3.NumeroComprobante)
}

func TestCrearPedido_CantidadCeroSeCorrigeAUno(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 5)

	resp, err := f.svc.CrearPedido(context.Background(), cliente.ID, dto.CrearPedidoRequest{
		Items: []dto.ItemPedidoRequest{{IDProducto: p.ID, Cantidad: 0}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Cantidad)
	assert.Equal(t, 4, f.productos.productos[p.ID].Stock)
}

func TestCrearPedido_StockInsuficiente(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 3)

	_, err := f.svc.CrearPedido(context.Background(), cliente.ID, dto.CrearPedidoRequest{
		Items: []dto.ItemPedidoRequest{{IDProducto: p.ID, Cantidad: 4}},
	})
	require.ErrorIs(t, err, ErrStockInsuficiente)

	// Nothing persisted, no number consumed
	assert.Empty(t, f.pedidos.pedidos)
	assert.Empty(t, f.comprobantes.comprobantes)
	assert.Equal(t, int64(0), f.comprobantes.boletaSeq)
}

func TestCrearPedido_ProductoNoExiste(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)

	_, err := f.svc.CrearPedido(context.Background(), cliente.ID, dto.CrearPedidoRequest{
		Items: []dto.ItemPedidoRequest{{IDProducto: 999, Cantidad: 1}},
	})
	require.ErrorIs(t, err, ErrProductoNoExiste)
	assert.Empty(t, f.pedidos.pedidos)
}

func TestCrearPedido_ClienteNoExiste(t *testing.T) {
	f := newPedidoFixture()
	p := seedProducto(f.productos, "10.00", 5)

	_, err := f.svc.CrearPedido(context.Background(), 777, dto.CrearPedidoRequest{
		Items: []dto.ItemPedidoRequest{{IDProducto: p.ID, Cantidad: 1}},
	})
	require.ErrorIs(t, err, ErrClienteNoExiste)
}

func TestCrearPedido_SinItems(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)

	_, err := f.svc.CrearPedido(context.Background(), cliente.ID, dto.CrearPedidoRequest{})
	require.ErrorIs(t, err, ErrPedidoSinItems)
}

func TestCrearPedido_VariasLineasConOpciones(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p1 := seedProducto(f.productos, "10.00", 50)
	p2 := seedProducto(f.productos, "4.50", 50)
	f.productos.opciones[1] = model.OpcionAdicional{ID: 1, Nombre: "Empaque premium", PrecioAdicional: dec("1.50")}
	f.productos.asociadas[p1.ID] = []int64{1}

	resp, err := f.svc.CrearPedido(context.Background(), cliente.ID, dto.CrearPedidoRequest{
		Items: []dto.ItemPedidoRequest{
			{IDProducto: p1.ID, Cantidad: 2, Opciones: []int64{1}},
			{IDProducto: p2.ID, Cantidad: 3},
		},
	})
	require.NoError(t, err)

	// (10.00+1.50)×2 + 4.50×3 = 23.00 + 13.50 = 36.50
	assert.True(t, resp.Total.Equal(dec("36.50")), "total = %s", resp.Total)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].PrecioUnitario.Equal(dec("11.50")))
	assert.Equal(t, 48, f.productos.productos[p1.ID].Stock)
	assert.Equal(t, 47, f.productos.productos[p2.ID].Stock)
}

// ── Estado transitions ───────────────────────────────────────────────────────

func crearPedidoDePrueba(t *testing.T, f *pedidoFixture, idCliente, idProducto int64, cantidad int) *dto.PedidoConfirmacion {
	t.Helper()
	resp, err := f.svc.CrearPedido(context.Background(), idCliente, dto.CrearPedidoRequest{
		Items: []dto.ItemPedidoRequest{{IDProducto: idProducto, Cantidad: cantidad}},
	})
	require.NoError(t, err)
	return resp
}

func TestCancelarPedidoCliente_RestauraStock(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 20)
	resp := crearPedidoDePrueba(t, f, cliente.ID, p.ID, 5)
	require.Equal(t, 15, f.productos.productos[p.ID].Stock)

	err := f.svc.CancelarPedidoCliente(context.Background(), resp.IDPedido, cliente.ID)
	require.NoError(t, err)

	assert.Equal(t, model.EstadoCancelado, f.pedidos.pedidos[resp.IDPedido].Estado)
	assert.Equal(t, 20, f.productos.productos[p.ID].Stock)
}

func TestCancelarPedidoCliente_AjenoNoEncontrado(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	otro := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 20)
	resp := crearPedidoDePrueba(t, f, cliente.ID, p.ID, 1)

	err := f.svc.CancelarPedidoCliente(context.Background(), resp.IDPedido, otro.ID)
	require.ErrorIs(t, err, ErrPedidoNoEncontrado)
	assert.Equal(t, model.EstadoPendiente, f.pedidos.pedidos[resp.IDPedido].Estado)
}

func TestCancelarPedidoCliente_DobleCancelacionNoDuplicaStock(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 20)
	resp := crearPedidoDePrueba(t, f, cliente.ID, p.ID, 5)

	require.NoError(t, f.svc.CancelarPedidoCliente(context.Background(), resp.IDPedido, cliente.ID))
	err := f.svc.CancelarPedidoCliente(context.Background(), resp.IDPedido, cliente.ID)
	require.ErrorIs(t, err, ErrEstadoNoPermitido)

	// Stock restored exactly once
	assert.Equal(t, 20, f.productos.productos[p.ID].Stock)
}

func TestCancelarPedidoCliente_EntregadoNoSePuedeCancelar(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 20)
	resp := crearPedidoDePrueba(t, f, cliente.ID, p.ID, 2)

	require.NoError(t, f.svc.ActualizarEstadoAdmin(context.Background(), resp.IDPedido, model.EstadoEntregado))
	err := f.svc.CancelarPedidoCliente(context.Background(), resp.IDPedido, cliente.ID)
	require.ErrorIs(t, err, ErrEstadoNoPermitido)
}

func TestActualizarEstadoAdmin_EntregadoSellaFecha(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 20)
	resp := crearPedidoDePrueba(t, f, cliente.ID, p.ID, 2)

	err := f.svc.ActualizarEstadoAdmin(context.Background(), resp.IDPedido, model.EstadoEntregado)
	require.NoError(t, err)

	pedido := f.pedidos.pedidos[resp.IDPedido]
	assert.Equal(t, model.EstadoEntregado, pedido.Estado)
	assert.NotNil(t, pedido.FechaEntrega)
	// Delivery does not touch stock
	assert.Equal(t, 18, f.productos.productos[p.ID].Stock)
}

func TestActualizarEstadoAdmin_CancelarRestauraStock(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 20)
	resp := crearPedidoDePrueba(t, f, cliente.ID, p.ID, 7)

	err := f.svc.ActualizarEstadoAdmin(context.Background(), resp.IDPedido, model.EstadoCancelado)
	require.NoError(t, err)
	assert.Equal(t, 20, f.productos.productos[p.ID].Stock)
}

func TestActualizarEstadoAdmin_CancelarEntregadoRestauraStock(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 20)
	resp := crearPedidoDePrueba(t, f, cliente.ID, p.ID, 5)

	require.NoError(t, f.svc.ActualizarEstadoAdmin(context.Background(), resp.IDPedido, model.EstadoEntregado))
	assert.Equal(t, 15, f.productos.productos[p.ID].Stock)

	// Unlike the client path, an admin can still cancel a delivered pedido.
	err := f.svc.ActualizarEstadoAdmin(context.Background(), resp.IDPedido, model.EstadoCancelado)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoCancelado, f.pedidos.pedidos[resp.IDPedido].Estado)
	assert.Equal(t, 20, f.productos.productos[p.ID].Stock)
}

func TestActualizarEstadoAdmin_EstadoInvalido(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 20)
	resp := crearPedidoDePrueba(t, f, cliente.ID, p.ID, 1)

	err := f.svc.ActualizarEstadoAdmin(context.Background(), resp.IDPedido, "Enviado")
	require.ErrorIs(t, err, ErrEstadoNoPermitido)
}

func TestActualizarEstadoAdmin_MismoEstadoEsNoOp(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 20)
	resp := crearPedidoDePrueba(t, f, cliente.ID, p.ID, 1)

	require.NoError(t, f.svc.ActualizarEstadoAdmin(context.Background(), resp.IDPedido, model.EstadoPendiente))
	assert.Equal(t, 19, f.productos.productos[p.ID].Stock)
}

// ── Queries ──────────────────────────────────────────────────────────────────

func TestObtenerComprobanteCliente(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "11.80", 20)
	resp := crearPedidoDePrueba(t, f, cliente.ID, p.ID, 1)

	comp, err := f.svc.ObtenerComprobanteCliente(context.Background(), resp.IDPedido, cliente.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ComprobanteBoleta, comp.TipoComprobante)
	// 11.80 / 1.18 = 10.00
	assert.True(t, comp.Subtotal.Equal(dec("10.00")), "subtotal = %s", comp.Subtotal)
	assert.True(t, comp.IGV.Equal(dec("1.80")), "igv = %s", comp.IGV)

	_, err = f.svc.ObtenerComprobanteCliente(context.Background(), resp.IDPedido, 999)
	require.ErrorIs(t, err, ErrPedidoNoEncontrado)
}

func TestRutaPDFComprobante(t *testing.T) {
	f := newPedidoFixture()
	cliente := f.seedCliente(model.TipoNatural)
	p := seedProducto(f.productos, "10.00", 20)
	resp := crearPedidoDePrueba(t, f, cliente.ID, p.ID, 1)

	// PDF not rendered yet
	_, err := f.svc.RutaPDFComprobante(context.Background(), resp.IDComprobante, cliente.ID, false)
	require.ErrorIs(t, err, ErrPDFNoDisponible)

	require.NoError(t, f.comprobantes.UpdatePDFPath(context.Background(), resp.IDComprobante, "/var/pdfs/boleta_1.pdf"))

	path, err := f.svc.RutaPDFComprobante(context.Background(), resp.IDComprobante, cliente.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "/var/pdfs/boleta_1.pdf", path)

	// Another client cannot reach it, an admin can
	_, err = f.svc.RutaPDFComprobante(context.Background(), resp.IDComprobante, 999, false)
	require.ErrorIs(t, err, ErrPedidoNoEncontrado)
	_, err = f.svc.RutaPDFComprobante(context.Background(), resp.IDComprobante, 0, true)
	require.NoError(t, err)
}
