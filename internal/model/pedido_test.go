package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// The dashboard counts pedidos with `fecha_pedido = CURRENT_DATE` and the
// admin list filters with `fecha_pedido <= fecha_fin`. Both comparisons are
// only correct while the column is a DATE; against a timestamp they would
// silently exclude every order placed after midnight. Pin the column type so
// a model change cannot reintroduce that.
func TestPedidoFechaPedidoEsColumnaDate(t *testing.T) {
	f, ok := reflect.TypeOf(Pedido{}).FieldByName("FechaPedido")
	require.True(t, ok)
	require.Contains(t, f.Tag.Get("gorm"), "type:date")
}
