package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/model"
	"github.com/Alcm1997/Agroconecta/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const productoCacheTTL = 5 * time.Minute

// ProductoService defines the business logic contract for the catalog.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id int64) error
	ListarOpciones(ctx context.Context) ([]dto.OpcionAdicionalResponse, error)
}

type productoService struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	producto := &model.Producto{
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		PrecioUnitario: req.PrecioUnitario,
		Stock:          req.Stock,
		IDUnidad:       req.IDUnidad,
		IDCategoria:    req.IDCategoria,
		ImagenURL:      req.ImagenURL,
		EsPack:         req.EsPack,
	}
	if err := s.repo.Crear(ctx, producto); err != nil {
		return nil, err
	}
	if err := s.guardarAsociaciones(ctx, producto.ID, req.Descuentos, req.Opciones, req.Componentes, req.EsPack); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, producto.ID)
}

// ObtenerPorID is the storefront's hottest read; it goes through a Redis
// read-through cache keyed by product id. Cache misses and Redis failures
// both fall through to Postgres.
func (s *productoService) ObtenerPorID(ctx context.Context, id int64) (*dto.ProductoResponse, error) {
	key := productoCacheKey(id)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp dto.ProductoResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoExiste
	}
	resp := productoToResponse(producto)

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, data, productoCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Int64("id_producto", id).Msg("producto cache set failed")
			}
		}
	}
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductoListResponse{
		Data:  make([]dto.ProductoResponse, 0, len(productos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range productos {
		resp.Data = append(resp.Data, productoToResponse(&productos[i]))
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id int64, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoExiste
	}
	if req.Nombre != nil {
		producto.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if req.PrecioUnitario != nil {
		producto.PrecioUnitario = *req.PrecioUnitario
	}
	if req.Stock != nil {
		producto.Stock = *req.Stock
	}
	if req.IDUnidad != nil {
		producto.IDUnidad = req.IDUnidad
	}
	if req.IDCategoria != nil {
		producto.IDCategoria = req.IDCategoria
	}
	if req.ImagenURL != nil {
		producto.ImagenURL = req.ImagenURL
	}
	if req.EsPack != nil {
		producto.EsPack = *req.EsPack
	}

	// Save only the scalar columns; associations are replaced explicitly below.
	producto.Descuentos = nil
	producto.Opciones = nil
	producto.Componentes = nil
	if err := s.repo.Actualizar(ctx, producto); err != nil {
		return nil, err
	}
	if err := s.guardarAsociaciones(ctx, id, req.Descuentos, req.Opciones, req.Componentes, producto.EsPack); err != nil {
		return nil, err
	}

	s.invalidar(ctx, id)
	return s.ObtenerPorID(ctx, id)
}

func (s *productoService) Eliminar(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductoNoExiste
	}
	if err := s.repo.Eliminar(ctx, id); err != nil {
		return err
	}
	s.invalidar(ctx, id)
	return nil
}

func (s *productoService) ListarOpciones(ctx context.Context) ([]dto.OpcionAdicionalResponse, error) {
	opciones, err := s.repo.ListOpciones(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OpcionAdicionalResponse, len(opciones))
	for i, o := range opciones {
		resp[i] = dto.OpcionAdicionalResponse{
			IDOpcion:        o.ID,
			Nombre:          o.Nombre,
			Descripcion:     o.Descripcion,
			PrecioAdicional: o.PrecioAdicional,
		}
	}
	return resp, nil
}

func (s *productoService) guardarAsociaciones(
	ctx context.Context,
	id int64,
	descuentos []dto.DescuentoVolumenRequest,
	opciones []int64,
	componentes []dto.ComponentePackRequest,
	esPack bool,
) error {
	if descuentos != nil {
		tiers := make([]model.DescuentoVolumen, len(descuentos))
		for i, d := range descuentos {
			tiers[i] = model.DescuentoVolumen{
				CantidadMinima:  d.CantidadMinima,
				CantidadMaxima:  d.CantidadMaxima,
				PrecioDescuento: d.PrecioDescuento,
			}
		}
		if err := s.repo.ReemplazarDescuentos(ctx, id, tiers); err != nil {
			return err
		}
	}
	if opciones != nil {
		if err := s.repo.ReemplazarOpciones(ctx, id, opciones); err != nil {
			return err
		}
	}
	if esPack && componentes != nil {
		comps := make([]model.PackComponente, len(componentes))
		for i, c := range componentes {
			comps[i] = model.PackComponente{IDProducto: c.IDProducto, Cantidad: c.Cantidad}
		}
		if err := s.repo.ReemplazarComponentes(ctx, id, comps); err != nil {
			return err
		}
	}
	return nil
}

func (s *productoService) invalidar(ctx context.Context, id int64) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, productoCacheKey(id)).Err(); err != nil {
		log.Warn().Err(err).Int64("id_producto", id).Msg("producto cache invalidation failed")
	}
}

func productoCacheKey(id int64) string { return fmt.Sprintf("producto:%d", id) }

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		IDProducto:     p.ID,
		Nombre:         p.Nombre,
		Descripcion:    p.Descripcion,
		PrecioUnitario: p.PrecioUnitario,
		Stock:          p.Stock,
		ImagenURL:      p.ImagenURL,
		EsPack:         p.EsPack,
	}
	if p.Categoria != nil {
		resp.Categoria = &p.Categoria.Descripcion
	}
	if p.Unidad != nil {
		resp.UnidadMedida = &p.Unidad.Descripcion
	}
	for _, d := range p.Descuentos {
		resp.Volumenes = append(resp.Volumenes, dto.DescuentoVolumenResponse{
			IDDescuento:     d.ID,
			CantidadMinima:  d.CantidadMinima,
			CantidadMaxima:  d.CantidadMaxima,
			PrecioDescuento: d.PrecioDescuento,
		})
	}
	for _, o := range p.Opciones {
		resp.Opciones = append(resp.Opciones, dto.OpcionAdicionalResponse{
			IDOpcion:        o.ID,
			Nombre:          o.Nombre,
			Descripcion:     o.Descripcion,
			PrecioAdicional: o.PrecioAdicional,
		})
	}
	for _, c := range p.Componentes {
		comp := dto.ComponentePackResponse{
			IDComponente: c.ID,
			IDProducto:   c.IDProducto,
			Cantidad:     c.Cantidad,
		}
		if c.Producto != nil {
			comp.Nombre = c.Producto.Nombre
			comp.PrecioUnitario = c.Producto.PrecioUnitario
		}
		resp.Componentes = append(resp.Componentes, comp)
	}
	return resp
}
