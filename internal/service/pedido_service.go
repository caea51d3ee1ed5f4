package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/model"
	"github.com/Alcm1997/Agroconecta/internal/repository"
	"github.com/Alcm1997/Agroconecta/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PedidoService interface {
	CrearPedido(ctx context.Context, idCliente int64, req dto.CrearPedidoRequest) (*dto.PedidoConfirmacion, error)

	// Client-facing queries (ownership enforced).
	ListarPorCliente(ctx context.Context, idCliente int64) ([]dto.PedidoListItem, error)
	ObtenerDetalleCliente(ctx context.Context, idPedido, idCliente int64) (*dto.PedidoDetalleResponse, error)
	ObtenerComprobanteCliente(ctx context.Context, idPedido, idCliente int64) (*dto.ComprobanteResponse, error)
	CancelarPedidoCliente(ctx context.Context, idPedido, idCliente int64) error

	// RutaPDFComprobante resolves the stored PDF path for download. Non-admin
	// callers only reach comprobantes of their own pedidos.
	RutaPDFComprobante(ctx context.Context, idComprobante, idCliente int64, esAdmin bool) (string, error)

	// Admin panel.
	ListarAdmin(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	ObtenerDetalleAdmin(ctx context.Context, idPedido int64) (*dto.PedidoDetalleResponse, error)
	ActualizarEstadoAdmin(ctx context.Context, idPedido int64, nuevoEstado string) error
}

type pedidoService struct {
	repo            repository.PedidoRepository
	comprobanteRepo repository.ComprobanteRepository
	clienteRepo     repository.ClienteRepository
	inventario      InventarioService
	precios         PrecioService
	dispatcher      *worker.Dispatcher
}

func NewPedidoService(
	repo repository.PedidoRepository,
	comprobanteRepo repository.ComprobanteRepository,
	clienteRepo repository.ClienteRepository,
	inventario InventarioService,
	precios PrecioService,
	dispatcher *worker.Dispatcher,
) PedidoService {
	return &pedidoService{
		repo:            repo,
		comprobanteRepo: comprobanteRepo,
		clienteRepo:     clienteRepo,
		inventario:      inventario,
		precios:         precios,
		dispatcher:      dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── CrearPedido ───────────────────────────────────────────────────────────────
// One atomic unit of work:
//   1. Resolve cliente and classify: Natural → Boleta, Jurídica → Factura
//   2. Per line, in input order: lock product row, validate + decrement stock,
//      resolve unit price (volume tier + option surcharges)
//   3. Insert pedido + detalle_pedido
//   4. nextval on the per-type sequence, IGV 18% split
//   5. Insert comprobante + detalle_comprobante
// Any failure rolls the whole thing back, stock and numbering included.

func (s *pedidoService) CrearPedido(ctx context.Context, idCliente int64, req dto.CrearPedidoRequest) (*dto.PedidoConfirmacion, error) {
	if len(req.Items) == 0 {
		return nil, ErrPedidoSinItems
	}

	type lineaResuelta struct {
		idProducto int64
		nombre     string
		cantidad   int
		precio     decimal.Decimal
		opciones   []int64
	}

	var (
		confirmacion dto.PedidoConfirmacion
		cliente      *model.Cliente
		lineas       []lineaResuelta
	)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		cliente, err = s.clienteRepo.FindByIDTx(tx, idCliente)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClienteNoExiste
			}
			return err
		}

		tipoComprobante := model.ComprobanteBoleta
		if cliente.TipoCliente == model.TipoJuridica {
			tipoComprobante = model.ComprobanteFactura
		}

		lineas = lineas[:0]
		total := decimal.Zero

		for _, it := range req.Items {
			cantidad := it.Cantidad
			if cantidad < 1 {
				cantidad = 1
			}

			producto, err := s.inventario.ReservarStockTx(tx, it.IDProducto, cantidad)
			if err != nil {
				return err
			}

			precio, err := s.precios.PrecioUnitarioTx(tx, producto, cantidad, it.Opciones)
			if err != nil {
				return err
			}

			lineaTotal := precio.Mul(decimal.NewFromInt(int64(cantidad))).Round(2)
			total = total.Add(lineaTotal)

			lineas = append(lineas, lineaResuelta{
				idProducto: producto.ID,
				nombre:     producto.Nombre,
				cantidad:   cantidad,
				precio:     precio,
				opciones:   it.Opciones,
			})
		}

		hoy := time.Now()
		pedido := model.Pedido{
			IDCliente:   idCliente,
			FechaPedido: hoy,
			Estado:      model.EstadoPendiente,
			IDTipoPago:  req.IDTipoPago,
			Total:       total,
		}
		for _, ln := range lineas {
			pedido.Items = append(pedido.Items, model.DetallePedido{
				IDProducto:     ln.idProducto,
				Cantidad:       ln.cantidad,
				PrecioUnitario: ln.precio,
				Opciones:       opcionesJSON(ln.opciones),
			})
		}
		if err := s.repo.CrearTx(tx, &pedido); err != nil {
			return err
		}

		numero, err := s.comprobanteRepo.NextNumeroTx(tx, tipoComprobante)
		if err != nil {
			return err
		}

		// Unit prices are IGV-inclusive: derive the breakdown from the gross.
		subtotal := total.Div(decimal.NewFromInt(1).Add(model.IGVRate)).Round(2)
		igv := total.Sub(subtotal)

		comprobante := model.Comprobante{
			IDPedido:          pedido.ID,
			TipoComprobante:   tipoComprobante,
			NumeroComprobante: numero,
			FechaEmision:      hoy,
			Subtotal:          subtotal,
			IGV:               igv,
			TotalPago:         total,
		}
		for _, ln := range lineas {
			comprobante.Items = append(comprobante.Items, model.DetalleComprobante{
				IDProducto:     ln.idProducto,
				Cantidad:       ln.cantidad,
				PrecioUnitario: ln.precio,
			})
		}
		if err := s.comprobanteRepo.CrearTx(tx, &comprobante); err != nil {
			return err
		}

		confirmacion = dto.PedidoConfirmacion{
			IDPedido:          pedido.ID,
			IDComprobante:     comprobante.ID,
			TipoComprobante:   tipoComprobante,
			NumeroComprobante: numero,
			Total:             total,
			Subtotal:          subtotal,
			IGV:               igv,
		}
		for _, ln := range lineas {
			confirmacion.Items = append(confirmacion.Items, dto.ItemPedidoResponse{
				IDProducto:     ln.idProducto,
				Producto:       ln.nombre,
				Cantidad:       ln.cantidad,
				PrecioUnitario: ln.precio,
				Subtotal:       ln.precio.Mul(decimal.NewFromInt(int64(ln.cantidad))).Round(2),
				Opciones:       ln.opciones,
			})
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async comprobante PDF + confirmation email, best effort, outside the tx.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueComprobante(ctx, worker.ComprobanteJobPayload{
			IDComprobante: confirmacion.IDComprobante,
			ClienteEmail:  cliente.Email,
			ClienteNombre: cliente.NombreCompleto(),
		})
	}

	return &confirmacion, nil
}

// ── Estado transitions ───────────────────────────────────────────────────────

// CancelarPedidoCliente cancels a client's own order. Only Pendiente orders
// may be cancelled; the estado-guarded UPDATE makes a concurrent second
// cancel lose instead of restoring stock twice.
func (s *pedidoService) CancelarPedidoCliente(ctx context.Context, idPedido, idCliente int64) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pedido, err := s.repo.FindByIDTx(tx, idPedido)
		if err != nil || pedido.IDCliente != idCliente {
			return ErrPedidoNoEncontrado
		}
		if pedido.Estado != model.EstadoPendiente {
			return fmt.Errorf("%w: solo se pueden cancelar pedidos en estado Pendiente", ErrEstadoNoPermitido)
		}

		ok, err := s.repo.UpdateEstadoTx(tx, idPedido, model.EstadoPendiente, model.EstadoCancelado)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: el pedido ya no está Pendiente", ErrEstadoNoPermitido)
		}

		return s.inventario.RestaurarStockTx(tx, pedido.Items)
	})
}

// ActualizarEstadoAdmin applies an admin-initiated transition. Cancelling
// from ANY non-cancelled state restores stock; delivering stamps the
// delivery date.
func (s *pedidoService) ActualizarEstadoAdmin(ctx context.Context, idPedido int64, nuevoEstado string) error {
	switch nuevoEstado {
	case model.EstadoPendiente, model.EstadoEntregado, model.EstadoCancelado:
	default:
		return fmt.Errorf("%w: estado %q inválido", ErrEstadoNoPermitido, nuevoEstado)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pedido, err := s.repo.FindByIDTx(tx, idPedido)
		if err != nil {
			return ErrPedidoNoEncontrado
		}
		if pedido.Estado == nuevoEstado {
			return nil
		}

		ok, err := s.repo.UpdateEstadoTx(tx, idPedido, pedido.Estado, nuevoEstado)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: el pedido cambió de estado", ErrEstadoNoPermitido)
		}

		if nuevoEstado == model.EstadoCancelado {
			if err := s.inventario.RestaurarStockTx(tx, pedido.Items); err != nil {
				return err
			}
		}
		if nuevoEstado == model.EstadoEntregado {
			if err := s.repo.StampFechaEntregaTx(tx, idPedido); err != nil {
				return err
			}
		}
		return nil
	})
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *pedidoService) ListarPorCliente(ctx context.Context, idCliente int64) ([]dto.PedidoListItem, error) {
	pedidos, err := s.repo.ListByCliente(ctx, idCliente)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PedidoListItem, 0, len(pedidos))
	for _, p := range pedidos {
		items = append(items, pedidoToListItem(&p))
	}
	return items, nil
}

func (s *pedidoService) ObtenerDetalleCliente(ctx context.Context, idPedido, idCliente int64) (*dto.PedidoDetalleResponse, error) {
	pedido, err := s.repo.FindByIDYCliente(ctx, idPedido, idCliente)
	if err != nil {
		return nil, ErrPedidoNoEncontrado
	}
	return s.buildDetalle(ctx, pedido), nil
}

func (s *pedidoService) ObtenerComprobanteCliente(ctx context.Context, idPedido, idCliente int64) (*dto.ComprobanteResponse, error) {
	if _, err := s.repo.FindByIDYCliente(ctx, idPedido, idCliente); err != nil {
		return nil, ErrPedidoNoEncontrado
	}
	comp, err := s.comprobanteRepo.FindByPedidoID(ctx, idPedido)
	if err != nil {
		return nil, fmt.Errorf("comprobante no encontrado para el pedido %d", idPedido)
	}
	resp := comprobanteToResponse(comp)
	return &resp, nil
}

func (s *pedidoService) RutaPDFComprobante(ctx context.Context, idComprobante, idCliente int64, esAdmin bool) (string, error) {
	comp, err := s.comprobanteRepo.FindByID(ctx, idComprobante)
	if err != nil {
		return "", ErrPedidoNoEncontrado
	}
	if !esAdmin {
		if _, err := s.repo.FindByIDYCliente(ctx, comp.IDPedido, idCliente); err != nil {
			return "", ErrPedidoNoEncontrado
		}
	}
	if comp.PDFPath == nil || *comp.PDFPath == "" {
		return "", ErrPDFNoDisponible
	}
	return *comp.PDFPath, nil
}

func (s *pedidoService) ListarAdmin(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	pedidos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PedidoListItem, 0, len(pedidos))
	for _, p := range pedidos {
		items = append(items, pedidoToListItem(&p))
	}
	return &dto.PedidoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *pedidoService) ObtenerDetalleAdmin(ctx context.Context, idPedido int64) (*dto.PedidoDetalleResponse, error) {
	pedido, err := s.repo.FindByID(ctx, idPedido)
	if err != nil {
		return nil, ErrPedidoNoEncontrado
	}
	return s.buildDetalle(ctx, pedido), nil
}

func (s *pedidoService) buildDetalle(ctx context.Context, pedido *model.Pedido) *dto.PedidoDetalleResponse {
	detalle := &dto.PedidoDetalleResponse{PedidoListItem: pedidoToListItem(pedido)}
	for _, item := range pedido.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		detalle.Items = append(detalle.Items, dto.ItemPedidoResponse{
			IDProducto:     item.IDProducto,
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad))).Round(2),
			Opciones:       opcionesFromJSON(item.Opciones),
		})
	}
	if comp, err := s.comprobanteRepo.FindByPedidoID(ctx, pedido.ID); err == nil {
		resp := comprobanteToResponse(comp)
		detalle.Comprobante = &resp
	}
	return detalle
}

// ── helpers ──────────────────────────────────────────────────────────────────

func pedidoToListItem(p *model.Pedido) dto.PedidoListItem {
	item := dto.PedidoListItem{
		IDPedido:    p.ID,
		FechaPedido: p.FechaPedido.Format("2006-01-02"),
		Estado:      p.Estado,
		Total:       p.Total,
	}
	if p.FechaEntrega != nil {
		f := p.FechaEntrega.Format("2006-01-02")
		item.FechaEntrega = &f
	}
	if p.Cliente != nil {
		item.NombreCliente = p.Cliente.NombreCompleto()
	}
	if p.TipoPago != nil {
		item.TipoPago = &p.TipoPago.Descripcion
	}
	return item
}

func comprobanteToResponse(c *model.Comprobante) dto.ComprobanteResponse {
	resp := dto.ComprobanteResponse{
		IDComprobante:     c.ID,
		TipoComprobante:   c.TipoComprobante,
		NumeroComprobante: c.NumeroComprobante,
		FechaEmision:      c.FechaEmision.Format("2006-01-02"),
		Subtotal:          c.Subtotal,
		IGV:               c.IGV,
		TotalPago:         c.TotalPago,
	}
	if c.PDFPath != nil && *c.PDFPath != "" {
		u := fmt.Sprintf("/v1/comprobantes/%d/pdf", c.ID)
		resp.PDFUrl = &u
	}
	return resp
}

func opcionesJSON(opciones []int64) string {
	if len(opciones) == 0 {
		return "[]"
	}
	b, err := json.Marshal(opciones)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func opcionesFromJSON(raw string) []int64 {
	var opciones []int64
	if err := json.Unmarshal([]byte(raw), &opciones); err != nil {
		return nil
	}
	return opciones
}
