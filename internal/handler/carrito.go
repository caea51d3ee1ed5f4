package handler

import (
	"net/http"

	"github.com/Alcm1997/Agroconecta/internal/apierror"
	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/middleware"
	"github.com/Alcm1997/Agroconecta/internal/service"

	"github.com/gin-gonic/gin"
)

type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

// Listar godoc
// @Summary      Ver el carrito
// @Tags         carrito
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CarritoResponse
// @Router       /v1/carrito [get]
func (h *CarritoHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Listar(c.Request.Context(), claims.IDCliente)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener el carrito"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Agregar godoc
// @Summary      Agregar ítem al carrito
// @Description  Mismo producto + mismas opciones suma cantidades; opciones distintas crean otra línea.
// @Tags         carrito
// @Accept       json
// @Security     BearerAuth
// @Param        body body dto.AgregarItemRequest true "Ítem"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/carrito [post]
func (h *CarritoHandler) Agregar(c *gin.Context) {
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Agregar(c.Request.Context(), claims.IDCliente, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ActualizarCantidad godoc
// @Summary      Cambiar cantidad de una línea
// @Description  Cantidad menor o igual a cero elimina la línea.
// @Tags         carrito
// @Accept       json
// @Security     BearerAuth
// @Param        id   path int                            true "ID de la línea"
// @Param        body body dto.ActualizarCantidadRequest true "Cantidad"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/carrito/{id} [put]
func (h *CarritoHandler) ActualizarCantidad(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarCantidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.ActualizarCantidad(c.Request.Context(), claims.IDCliente, id, req.Cantidad); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Eliminar godoc
// @Summary      Quitar una línea del carrito
// @Tags         carrito
// @Security     BearerAuth
// @Param        id path int true "ID de la línea"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/carrito/{id} [delete]
func (h *CarritoHandler) Eliminar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Eliminar(c.Request.Context(), claims.IDCliente, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Vaciar godoc
// @Summary      Vaciar el carrito
// @Tags         carrito
// @Security     BearerAuth
// @Success      204
// @Router       /v1/carrito [delete]
func (h *CarritoHandler) Vaciar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.Vaciar(c.Request.Context(), claims.IDCliente); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al vaciar el carrito"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Sincronizar godoc
// @Summary      Fusionar el carrito del navegador
// @Description  Se invoca tras el login: cada línea local se suma a la persistida cuando coinciden producto y opciones.
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SincronizarCarritoRequest true "Carrito local"
// @Success      200 {object} dto.CarritoResponse
// @Router       /v1/carrito/sincronizar [post]
func (h *CarritoHandler) Sincronizar(c *gin.Context) {
	var req dto.SincronizarCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Sincronizar(c.Request.Context(), claims.IDCliente, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
