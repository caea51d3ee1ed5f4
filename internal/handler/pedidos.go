package handler

import (
	"net/http"
	"path/filepath"

	"github.com/Alcm1997/Agroconecta/internal/apierror"
	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/middleware"
	"github.com/Alcm1997/Agroconecta/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// CrearPedido godoc
// @Summary      Crear pedido con comprobante
// @Description  Crea un pedido ACID: bloquea productos, aplica descuentos por volumen y opciones, descuenta stock y emite la Boleta o Factura con numeración correlativa e IGV 18%.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPedidoRequest true "Ítems del pedido"
// @Success      201  {object} dto.PedidoConfirmacion
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/pedidos [post]
func (h *PedidosHandler) CrearPedido(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.CrearPedido(c.Request.Context(), claims.IDCliente, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarMisPedidos godoc
// @Summary      Historial de pedidos del cliente
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.PedidoListItem
// @Router       /v1/pedidos [get]
func (h *PedidosHandler) ListarMisPedidos(c *gin.Context) {
	claims := middleware.GetClaims(c)
	items, err := h.svc.ListarPorCliente(c.Request.Context(), claims.IDCliente)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// ObtenerMiPedido godoc
// @Summary      Detalle de un pedido propio
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID del pedido"
// @Success      200 {object} dto.PedidoDetalleResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pedidos/{id} [get]
func (h *PedidosHandler) ObtenerMiPedido(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ObtenerDetalleCliente(c.Request.Context(), id, claims.IDCliente)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerMiComprobante godoc
// @Summary      Comprobante de un pedido propio
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID del pedido"
// @Success      200 {object} dto.ComprobanteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pedidos/{id}/comprobante [get]
func (h *PedidosHandler) ObtenerMiComprobante(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ObtenerComprobanteCliente(c.Request.Context(), id, claims.IDCliente)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelarMiPedido godoc
// @Summary      Cancelar un pedido propio
// @Description  Solo pedidos en estado Pendiente. Restaura el stock de todos los ítems.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID del pedido"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/pedidos/{id} [delete]
func (h *PedidosHandler) CancelarMiPedido(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.CancelarPedidoCliente(c.Request.Context(), id, claims.IDCliente); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DescargarComprobante godoc
// @Summary      Descargar el PDF de un comprobante
// @Tags         pedidos
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path int true "ID del comprobante"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/comprobantes/{id}/pdf [get]
func (h *PedidosHandler) DescargarComprobante(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	esAdmin := claims.Rol == middleware.RolAdmin

	path, err := h.svc.RutaPDFComprobante(c.Request.Context(), id, claims.IDCliente, esAdmin)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// ── Admin panel ──────────────────────────────────────────────────────────────

// ListarPedidosAdmin godoc
// @Summary      Listar pedidos (panel)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        estado       query string false "Pendiente | Entregado | Cancelado"
// @Param        fecha_inicio query string false "YYYY-MM-DD"
// @Param        fecha_fin    query string false "YYYY-MM-DD"
// @Param        page         query int    false "Página (default 1)"
// @Param        limit        query int    false "Registros por página (default 20)"
// @Success      200 {object} dto.PedidoListResponse
// @Router       /v1/admin/pedidos [get]
func (h *PedidosHandler) ListarPedidosAdmin(c *gin.Context) {
	var filter dto.PedidoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarAdmin(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPedidoAdmin godoc
// @Summary      Detalle de pedido (panel)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID del pedido"
// @Success      200 {object} dto.PedidoDetalleResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/admin/pedidos/{id} [get]
func (h *PedidosHandler) ObtenerPedidoAdmin(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerDetalleAdmin(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEstado godoc
// @Summary      Cambiar estado de un pedido (panel)
// @Description  Entregado sella fecha_entrega; Cancelado restaura stock. La transición está protegida contra dobles cancelaciones concurrentes.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                          true "ID del pedido"
// @Param        body body dto.ActualizarEstadoRequest true "Nuevo estado"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/admin/pedidos/{id}/estado [put]
func (h *PedidosHandler) ActualizarEstado(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarEstadoAdmin(c.Request.Context(), id, req.Estado); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
