package service

import (
	"context"

	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/repository"
)

const (
	topProductosLimit = 5
	stockCriticoLimit = 10
)

type ReporteService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type reporteService struct {
	repo repository.ReporteRepository
}

func NewReporteService(repo repository.ReporteRepository) ReporteService {
	return &reporteService{repo: repo}
}

// Dashboard gathers the admin home widgets. The queries run sequentially;
// each one is a cheap aggregate.
func (s *reporteService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	ventas, err := s.repo.VentasDelMes(ctx)
	if err != nil {
		return nil, err
	}
	pendientes, err := s.repo.PedidosPendientes(ctx)
	if err != nil {
		return nil, err
	}
	hoy, err := s.repo.PedidosDeHoy(ctx)
	if err != nil {
		return nil, err
	}
	clientes, err := s.repo.ClientesNuevosDelMes(ctx)
	if err != nil {
		return nil, err
	}
	stockBajo, err := s.repo.ProductosStockBajo(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopProductosDelMes(ctx, topProductosLimit)
	if err != nil {
		return nil, err
	}
	criticos, err := s.repo.ProductosStockCritico(ctx, stockCriticoLimit)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		VentasMes:         ventas,
		PedidosPendientes: pendientes,
		PedidosHoy:        hoy,
		ClientesNuevos:    clientes,
		StockBajo:         stockBajo,
		TopProductos:      top,
	}
	for _, p := range criticos {
		resp.ProductosStockCritico = append(resp.ProductosStockCritico, dto.ProductoCritico{
			IDProducto:     p.ID,
			Nombre:         p.Nombre,
			Stock:          p.Stock,
			PrecioUnitario: p.PrecioUnitario,
		})
	}
	return resp, nil
}
