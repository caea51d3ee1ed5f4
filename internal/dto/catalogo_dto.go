package dto

type CrearCategoriaRequest struct {
	Descripcion string `json:"descripcion" validate:"required,min=2,max=80"`
}

type CategoriaResponse struct {
	IDCategoria int64  `json:"id_categoria"`
	Descripcion string `json:"descripcion"`
}

type CrearUnidadRequest struct {
	Descripcion string `json:"descripcion" validate:"required,min=1,max=40"`
}

type UnidadMedidaResponse struct {
	IDUnidad    int64  `json:"id_unidad"`
	Descripcion string `json:"descripcion"`
}

type TipoPagoResponse struct {
	IDTipoPago  int64  `json:"id_tipo_pago"`
	Descripcion string `json:"descripcion"`
}
