package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Alcm1997/Agroconecta/internal/config"
	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/model"
	"github.com/Alcm1997/Agroconecta/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ClienteService interface {
	Registrar(ctx context.Context, req dto.RegistrarClienteRequest) (*dto.ClienteResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	ObtenerPerfil(ctx context.Context, id int64) (*dto.ClienteResponse, error)
	ActualizarPerfil(ctx context.Context, id int64, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, id int64) error
	ListarAdmin(ctx context.Context) ([]dto.ClienteResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
	cfg  *config.Config
}

func NewClienteService(repo repository.ClienteRepository, cfg *config.Config) ClienteService {
	return &clienteService{repo: repo, cfg: cfg}
}

func (s *clienteService) Registrar(ctx context.Context, req dto.RegistrarClienteRequest) (*dto.ClienteResponse, error) {
	// Natural clients sign up with nombres/apellidos, Jurídica with razón social.
	if req.TipoCliente == model.TipoJuridica {
		if req.RazonSocial == nil || *req.RazonSocial == "" {
			return nil, errors.New("razón social es obligatoria para clientes jurídicos")
		}
	} else if req.Nombres == nil || *req.Nombres == "" {
		return nil, errors.New("nombres es obligatorio para clientes naturales")
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("el correo %s ya está registrado", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena), 12)
	if err != nil {
		return nil, err
	}
	cliente := &model.Cliente{
		Nombres:         req.Nombres,
		Apellidos:       req.Apellidos,
		RazonSocial:     req.RazonSocial,
		NumeroDocumento: req.NumeroDocumento,
		Email:           req.Email,
		Telefono:        req.Telefono,
		Direccion:       req.Direccion,
		IDDistrito:      req.IDDistrito,
		TipoCliente:     req.TipoCliente,
		Contrasena:      string(hash),
		Rol:             "cliente",
		Estado:          "Activo",
	}
	if err := s.repo.Crear(ctx, cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	cliente, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cliente.Contrasena), []byte(req.Contrasena)); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	token, err := s.generateToken(cliente)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		Cliente:     clienteToResponse(cliente),
	}, nil
}

func (s *clienteService) ObtenerPerfil(ctx context.Context, id int64) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClienteNoExiste
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) ActualizarPerfil(ctx context.Context, id int64, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClienteNoExiste
	}
	if req.Nombres != nil {
		cliente.Nombres = req.Nombres
	}
	if req.Apellidos != nil {
		cliente.Apellidos = req.Apellidos
	}
	if req.RazonSocial != nil {
		cliente.RazonSocial = req.RazonSocial
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Direccion != nil {
		cliente.Direccion = req.Direccion
	}
	if req.IDDistrito != nil {
		cliente.IDDistrito = req.IDDistrito
	}
	if err := s.repo.Actualizar(ctx, cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

// Desactivar soft-deletes the account. Historic pedidos and comprobantes
// keep referencing the row; it just stops answering queries and logins.
func (s *clienteService) Desactivar(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrClienteNoExiste
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *clienteService) ListarAdmin(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, len(clientes))
	for i := range clientes {
		resp[i] = clienteToResponse(&clientes[i])
	}
	return resp, nil
}

func (s *clienteService) generateToken(c *model.Cliente) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id_cliente":   c.ID,
		"email":        c.Email,
		"tipo_cliente": c.TipoCliente,
		"rol":          c.Rol,
		"exp":          now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":          now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		IDCliente:       c.ID,
		Nombre:          c.NombreCompleto(),
		NumeroDocumento: c.NumeroDocumento,
		Email:           c.Email,
		Telefono:        c.Telefono,
		Direccion:       c.Direccion,
		TipoCliente:     c.TipoCliente,
	}
}
