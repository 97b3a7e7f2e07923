package tests

import (
	"testing"

	"github.com/MateoRicci/gestion-cec-sub000/internal/carrito"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preciosDePrueba() carrito.PreciosEntrada {
	return carrito.PreciosEntrada{
		Mayor: &carrito.PrecioResuelto{
			ProductoID: uuid.New(), NombreProducto: "Entrada Mayor",
			ListaPrecioID: 1, PrecioUnitario: d("1500"),
		},
		Menor: &carrito.PrecioResuelto{
			ProductoID: uuid.New(), NombreProducto: "Entrada Menor",
			ListaPrecioID: 1, PrecioUnitario: d("800"),
		},
		NoSocio: &carrito.PrecioResuelto{
			ProductoID: uuid.New(), NombreProducto: "Entrada",
			ListaPrecioID: 3, PrecioUnitario: d("3500"),
		},
	}
}

func afiliadoConFamilia() *model.Afiliado {
	return &model.Afiliado{
		ID:        uuid.New(),
		Documento: "30111222",
		Nombre:    "Marta",
		Apellido:  "Gomez",
		Convenio:  &model.Convenio{ID: uuid.New(), Nombre: "Empleados de Comercio"},
		Familiares: []model.Familiar{
			{ID: uuid.New(), Documento: "45666777", Nombre: "Lucas", Apellido: "Gomez", Categoria: "menor"},
			{ID: uuid.New(), Documento: "28999000", Nombre: "Pedro", Apellido: "Gomez", Categoria: "mayor"},
		},
	}
}

func TestDerivarEntradasUnaLineaPorPersona(t *testing.T) {
	afiliado := afiliadoConFamilia()
	seleccion := map[string]bool{
		carrito.KeyTitular("30111222"):  true,
		carrito.KeyFamiliar("45666777"): true,
		carrito.KeyFamiliar("28999000"): true,
	}

	lineas := carrito.DerivarEntradas(afiliado, seleccion, preciosDePrueba())

	require.Len(t, lineas, 3)
	for _, l := range lineas {
		assert.Equal(t, 1, l.Cantidad)
		assert.True(t, l.EsEntradaSocio())
		assert.True(t, l.EsEntrada)
		require.NotNil(t, l.AfiliadoID)
		assert.Equal(t, afiliado.ID, *l.AfiliadoID)
	}

	// Titular: mayor price, es_titular, no familiar reference.
	assert.Equal(t, "entrada-socio-30111222", lineas[0].ID)
	assert.True(t, lineas[0].EsTitular)
	assert.Nil(t, lineas[0].FamiliarID)
	assert.True(t, lineas[0].PrecioUnitario.Equal(d("1500")))

	// Familiar menor gets the menor price and its own id.
	assert.True(t, lineas[1].PrecioUnitario.Equal(d("800")))
	require.NotNil(t, lineas[1].FamiliarID)
	assert.False(t, lineas[1].EsTitular)

	// Familiar mayor gets the mayor price.
	assert.True(t, lineas[2].PrecioUnitario.Equal(d("1500")))
}

func TestDerivarEntradasSeleccionParcial(t *testing.T) {
	afiliado := afiliadoConFamilia()
	seleccion := map[string]bool{carrito.KeyFamiliar("45666777"): true}

	lineas := carrito.DerivarEntradas(afiliado, seleccion, preciosDePrueba())

	require.Len(t, lineas, 1)
	assert.Equal(t, "entrada-socio-45666777", lineas[0].ID)
}

func TestDerivarEntradasSinAfiliado(t *testing.T) {
	lineas := carrito.DerivarEntradas(nil, map[string]bool{"titular-123": true}, preciosDePrueba())
	assert.Empty(t, lineas)
}

func TestDerivarEntradasConsumidorFinal(t *testing.T) {
	cf := &model.Afiliado{
		ID:        uuid.New(),
		Documento: "0",
		Nombre:    "Consumidor",
		Apellido:  "Final",
		Convenio:  &model.Convenio{Nombre: model.NombreConsumidorFinal},
	}
	precios := preciosDePrueba()

	lineas := carrito.DerivarEntradas(cf, map[string]bool{carrito.KeyTitular("0"): true}, precios)

	require.Len(t, lineas, 1)
	// Walk-in entries never reference an afiliado and use the general entry.
	assert.Nil(t, lineas[0].AfiliadoID)
	assert.False(t, lineas[0].EsTitular)
	assert.True(t, lineas[0].PrecioUnitario.Equal(d("3500")))
	assert.Equal(t, precios.NoSocio.ProductoID, lineas[0].ProductoID)
}

func TestDerivarEntradasPrecioFaltanteDegradaACero(t *testing.T) {
	afiliado := afiliadoConFamilia()
	precios := preciosDePrueba()
	precios.Menor = nil

	lineas := carrito.DerivarEntradas(afiliado, map[string]bool{carrito.KeyFamiliar("45666777"): true}, precios)

	require.Len(t, lineas, 1)
	assert.True(t, lineas[0].PrecioUnitario.IsZero())
	assert.Equal(t, uuid.Nil, lineas[0].ProductoID)
}

func TestFusionarLineasReemplazaDerivadasYConservaManuales(t *testing.T) {
	manual := carrito.Linea{ID: "manual-1", Nombre: "Gaseosa", Cantidad: 2, PrecioUnitario: d("500")}
	viejas := []carrito.Linea{
		{ID: "entrada-socio-30111222", Cantidad: 1, PrecioUnitario: d("1000"), EsEntrada: true},
		manual,
	}
	nuevas := []carrito.Linea{
		{ID: "entrada-socio-45666777", Cantidad: 1, PrecioUnitario: d("800"), EsEntrada: true},
	}

	resultado := carrito.FusionarLineas(viejas, nuevas)

	require.Len(t, resultado, 2)
	assert.Equal(t, "entrada-socio-45666777", resultado[0].ID)
	assert.Equal(t, "manual-1", resultado[1].ID)
}

func TestTotalSumaSubtotales(t *testing.T) {
	lineas := []carrito.Linea{
		{ID: "a", Cantidad: 2, PrecioUnitario: d("100.50")},
		{ID: "b", Cantidad: 1, PrecioUnitario: d("49")},
	}
	assert.True(t, carrito.Total(lineas).Equal(d("250")))
}

func TestConstruirDetallesMembresiaUnaFilaPorPersona(t *testing.T) {
	afiliado := afiliadoConFamilia()
	seleccion := map[string]bool{
		carrito.KeyTitular("30111222"):  true,
		carrito.KeyFamiliar("45666777"): true,
		carrito.KeyFamiliar("28999000"): true,
	}
	lineas := carrito.DerivarEntradas(afiliado, seleccion, preciosDePrueba())

	detalles := carrito.ConstruirDetalles(lineas, false)

	require.Len(t, detalles, 3)
	total := d("0")
	titulares := 0
	for _, det := range detalles {
		assert.Equal(t, 1, det.Cantidad)
		assert.True(t, det.EsEntrada)
		require.NotNil(t, det.AfiliadoID)
		total = total.Add(det.PrecioTotal)
		if det.EsTitular {
			titulares++
		}
	}
	assert.Equal(t, 1, titulares)
	assert.True(t, total.Equal(d("3800"))) // 1500 + 800 + 1500
}

func TestConstruirDetallesEntradaNoSocioExplota(t *testing.T) {
	entradaID := uuid.New()
	lineas := []carrito.Linea{{
		ID: "manual-entrada", ProductoID: entradaID, Nombre: "Entrada",
		Cantidad: 3, ListaPrecioID: 3, PrecioUnitario: d("3500"), EsEntrada: true,
	}}

	detalles := carrito.ConstruirDetalles(lineas, true)

	// One row per physical person: the attendance report counts rows.
	require.Len(t, detalles, 3)
	for _, det := range detalles {
		assert.Equal(t, 1, det.Cantidad)
		assert.True(t, det.PrecioTotal.Equal(d("3500")))
		assert.Nil(t, det.AfiliadoID)
	}
}

func TestConstruirDetallesExtrasAgregadosPorProductoYLista(t *testing.T) {
	gaseosaID := uuid.New()
	lineas := []carrito.Linea{
		{ID: "m1", ProductoID: gaseosaID, Cantidad: 2, ListaPrecioID: 1, PrecioUnitario: d("500")},
		{ID: "m2", ProductoID: gaseosaID, Cantidad: 1, ListaPrecioID: 1, PrecioUnitario: d("500")},
		{ID: "m3", ProductoID: gaseosaID, Cantidad: 1, ListaPrecioID: 3, PrecioUnitario: d("700")},
	}

	detalles := carrito.ConstruirDetalles(lineas, false)

	// Same product on two lists stays in two rows.
	require.Len(t, detalles, 2)
	assert.Equal(t, 3, detalles[0].Cantidad)
	assert.True(t, detalles[0].PrecioTotal.Equal(d("1500")))
	assert.Equal(t, 1, detalles[1].Cantidad)
	assert.True(t, detalles[1].PrecioTotal.Equal(d("700")))
}

func TestConstruirDetallesLineaDerivadaSinAfiliadoEsExtra(t *testing.T) {
	// A derived-looking line without an afiliado reference must not become a
	// membership row, even outside consumidor final.
	lineas := []carrito.Linea{{
		ID: "entrada-socio-999", ProductoID: uuid.New(),
		Cantidad: 2, PrecioUnitario: d("3500"), EsEntrada: true,
	}}

	detalles := carrito.ConstruirDetalles(lineas, false)

	require.Len(t, detalles, 2)
	for _, det := range detalles {
		assert.Nil(t, det.AfiliadoID)
		assert.False(t, det.EsTitular)
	}
}
