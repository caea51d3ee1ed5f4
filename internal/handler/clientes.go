package handler

import (
	"net/http"

	"github.com/Alcm1997/Agroconecta/internal/apierror"
	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/middleware"
	"github.com/Alcm1997/Agroconecta/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar cuenta de cliente
// @Description  Natural exige nombres; Jurídica exige razón social. El tipo decide Boleta o Factura en cada pedido.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarClienteRequest true "Datos del cliente"
// @Success      201 {object} dto.ClienteResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/clientes/registro [post]
func (h *ClientesHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} apierror.APIError
// @Router       /v1/clientes/login [post]
func (h *ClientesHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Perfil godoc
// @Summary      Ver el perfil propio
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ClienteResponse
// @Router       /v1/clientes/perfil [get]
func (h *ClientesHandler) Perfil(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ObtenerPerfil(c.Request.Context(), claims.IDCliente)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarPerfil godoc
// @Summary      Actualizar el perfil propio
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ActualizarClienteRequest true "Campos a actualizar"
// @Success      200 {object} dto.ClienteResponse
// @Router       /v1/clientes/perfil [put]
func (h *ClientesHandler) ActualizarPerfil(c *gin.Context) {
	var req dto.ActualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ActualizarPerfil(c.Request.Context(), claims.IDCliente, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DarDeBaja godoc
// @Summary      Dar de baja la cuenta propia
// @Description  Baja lógica: la cuenta pasa a Inactivo y los pedidos históricos se conservan.
// @Tags         clientes
// @Security     BearerAuth
// @Success      204
// @Router       /v1/clientes/perfil [delete]
func (h *ClientesHandler) DarDeBaja(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.Desactivar(c.Request.Context(), claims.IDCliente); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Admin panel ──────────────────────────────────────────────────────────────

// ListarAdmin godoc
// @Summary      Listar clientes activos (panel)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ClienteResponse
// @Router       /v1/admin/clientes [get]
func (h *ClientesHandler) ListarAdmin(c *gin.Context) {
	resp, err := h.svc.ListarAdmin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar clientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesactivarAdmin godoc
// @Summary      Desactivar cliente (panel)
// @Tags         admin
// @Security     BearerAuth
// @Param        id path int true "ID del cliente"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/admin/clientes/{id} [delete]
func (h *ClientesHandler) DesactivarAdmin(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
