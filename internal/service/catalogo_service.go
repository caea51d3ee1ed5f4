package service

import (
	"context"
	"fmt"

	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/model"
	"github.com/Alcm1997/Agroconecta/internal/repository"
)

type CatalogoService interface {
	ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error)
	CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	ListarUnidades(ctx context.Context) ([]dto.UnidadMedidaResponse, error)
	CrearUnidad(ctx context.Context, req dto.CrearUnidadRequest) (*dto.UnidadMedidaResponse, error)
	ListarTiposPago(ctx context.Context) ([]dto.TipoPagoResponse, error)
}

type catalogoService struct {
	repo repository.CatalogoRepository
}

func NewCatalogoService(repo repository.CatalogoRepository) CatalogoService {
	return &catalogoService{repo: repo}
}

func (s *catalogoService) ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, len(categorias))
	for i, c := range categorias {
		resp[i] = dto.CategoriaResponse{IDCategoria: c.ID, Descripcion: c.Descripcion}
	}
	return resp, nil
}

func (s *catalogoService) CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	if _, err := s.repo.FindCategoriaPorDescripcion(ctx, req.Descripcion); err == nil {
		return nil, fmt.Errorf("la categoría %q ya existe", req.Descripcion)
	}
	categoria := &model.Categoria{Descripcion: req.Descripcion}
	if err := s.repo.CrearCategoria(ctx, categoria); err != nil {
		return nil, err
	}
	return &dto.CategoriaResponse{IDCategoria: categoria.ID, Descripcion: categoria.Descripcion}, nil
}

func (s *catalogoService) ListarUnidades(ctx context.Context) ([]dto.UnidadMedidaResponse, error) {
	unidades, err := s.repo.ListUnidades(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UnidadMedidaResponse, len(unidades))
	for i, u := range unidades {
		resp[i] = dto.UnidadMedidaResponse{IDUnidad: u.ID, Descripcion: u.Descripcion}
	}
	return resp, nil
}

func (s *catalogoService) CrearUnidad(ctx context.Context, req dto.CrearUnidadRequest) (*dto.UnidadMedidaResponse, error) {
	unidad := &model.UnidadMedida{Descripcion: req.Descripcion}
	if err := s.repo.CrearUnidad(ctx, unidad); err != nil {
		return nil, err
	}
	return &dto.UnidadMedidaResponse{IDUnidad: unidad.ID, Descripcion: unidad.Descripcion}, nil
}

func (s *catalogoService) ListarTiposPago(ctx context.Context) ([]dto.TipoPagoResponse, error) {
	tipos, err := s.repo.ListTiposPago(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TipoPagoResponse, len(tipos))
	for i, t := range tipos {
		resp[i] = dto.TipoPagoResponse{IDTipoPago: t.ID, Descripcion: t.Descripcion}
	}
	return resp, nil
}
