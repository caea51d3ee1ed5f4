package service

import "errors"

// Sentinel errors for the order placement taxonomy. Handlers map them to HTTP
// status codes with errors.Is; services wrap them with product/client context.
var (
	ErrPedidoSinItems        = errors.New("el pedido requiere items")
	ErrClienteNoExiste       = errors.New("cliente no existe")
	ErrProductoNoExiste      = errors.New("producto no existe")
	ErrStockInsuficiente     = errors.New("stock insuficiente")
	ErrPedidoNoEncontrado    = errors.New("pedido no encontrado")
	ErrEstadoNoPermitido     = errors.New("transición de estado no permitida")
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrPDFNoDisponible       = errors.New("el PDF del comprobante aún no está disponible")
)
