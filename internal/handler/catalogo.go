package handler

import (
	"net/http"

	"github.com/Alcm1997/Agroconecta/internal/apierror"
	"github.com/Alcm1997/Agroconecta/internal/dto"
	"github.com/Alcm1997/Agroconecta/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// ListarCategorias godoc
// @Summary      Listar categorías
// @Tags         catalogo
// @Produce      json
// @Success      200 {array} dto.CategoriaResponse
// @Router       /v1/categorias [get]
func (h *CatalogoHandler) ListarCategorias(c *gin.Context) {
	resp, err := h.svc.ListarCategorias(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar categorías"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearCategoria godoc
// @Summary      Crear categoría (panel)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCategoriaRequest true "Categoría"
// @Success      201 {object} dto.CategoriaResponse
// @Router       /v1/admin/categorias [post]
func (h *CatalogoHandler) CrearCategoria(c *gin.Context) {
	var req dto.CrearCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCategoria(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarUnidades godoc
// @Summary      Listar unidades de medida
// @Tags         catalogo
// @Produce      json
// @Success      200 {array} dto.UnidadMedidaResponse
// @Router       /v1/unidades [get]
func (h *CatalogoHandler) ListarUnidades(c *gin.Context) {
	resp, err := h.svc.ListarUnidades(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar unidades"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearUnidad godoc
// @Summary      Crear unidad de medida (panel)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearUnidadRequest true "Unidad"
// @Success      201 {object} dto.UnidadMedidaResponse
// @Router       /v1/admin/unidades [post]
func (h *CatalogoHandler) CrearUnidad(c *gin.Context) {
	var req dto.CrearUnidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearUnidad(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarTiposPago godoc
// @Summary      Listar tipos de pago
// @Tags         catalogo
// @Produce      json
// @Success      200 {array} dto.TipoPagoResponse
// @Router       /v1/tipos-pago [get]
func (h *CatalogoHandler) ListarTiposPago(c *gin.Context) {
	resp, err := h.svc.ListarTiposPago(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar tipos de pago"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
