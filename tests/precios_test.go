package tests

import (
	"context"
	"testing"

	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListaParaConvenio(t *testing.T) {
	svc := service.NewPrecioService(newMemProductoRepo())
	empleados := service.ListaSociosEmpleados

	casos := []struct {
		nombre   string
		convenio *model.Convenio
		esperada int
	}{
		{"sin convenio es no socios", nil, service.ListaNoSocios},
		{"consumidor final es no socios", &model.Convenio{Nombre: model.NombreConsumidorFinal}, service.ListaNoSocios},
		{"convenio de empleados usa su lista", &model.Convenio{Nombre: "Empleados CEC", ListaPrecioID: &empleados}, service.ListaSociosEmpleados},
		{"convenio sin lista cae en socios", &model.Convenio{Nombre: "Convenio Viejo"}, service.ListaSocios},
		// Legacy convenios sin lista se resuelven por nombre: "empleado"
		// implica la lista Socios Empleados.
		{"convenio de empleados sin lista usa socios empleados", &model.Convenio{Nombre: "Empleados CEC"}, service.ListaSociosEmpleados},
		{"empleado en cualquier posicion del nombre", &model.Convenio{Nombre: "EMPLEADOS de Comercio"}, service.ListaSociosEmpleados},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperada, svc.ListaParaConvenio(c.convenio))
		})
	}
}

func TestPreciosEntradaResuelveLasTresEntradas(t *testing.T) {
	repo := newMemProductoRepo()
	repo.agregar("Entrada Mayor", true, map[int]decimal.Decimal{1: d("1500"), 2: d("1000")})
	repo.agregar("Entrada Menor", true, map[int]decimal.Decimal{1: d("800"), 2: d("500")})
	repo.agregar("Entrada", true, map[int]decimal.Decimal{3: d("3500")})
	svc := service.NewPrecioService(repo)

	precios := svc.PreciosEntrada(context.Background(), service.ListaSociosEmpleados)

	require.NotNil(t, precios.Mayor)
	assert.True(t, precios.Mayor.PrecioUnitario.Equal(d("1000")))
	require.NotNil(t, precios.Menor)
	assert.True(t, precios.Menor.PrecioUnitario.Equal(d("500")))
	// The walk-in entry always resolves on the No Socios list.
	require.NotNil(t, precios.NoSocio)
	assert.True(t, precios.NoSocio.PrecioUnitario.Equal(d("3500")))
	assert.Equal(t, service.ListaNoSocios, precios.NoSocio.ListaPrecioID)
}

func TestPreciosEntradaFaltanteEsNil(t *testing.T) {
	repo := newMemProductoRepo()
	repo.agregar("Entrada Mayor", true, map[int]decimal.Decimal{1: d("1500")})
	svc := service.NewPrecioService(repo)

	// Lista 2 has no price for Entrada Mayor, and the other two products do
	// not exist at all: every miss degrades to nil, never to an error.
	precios := svc.PreciosEntrada(context.Background(), service.ListaSociosEmpleados)

	assert.Nil(t, precios.Mayor)
	assert.Nil(t, precios.Menor)
	assert.Nil(t, precios.NoSocio)
}

func TestPrecioDe(t *testing.T) {
	repo := newMemProductoRepo()
	gaseosa := repo.agregar("Gaseosa", false, map[int]decimal.Decimal{1: d("500")})
	svc := service.NewPrecioService(repo)

	precio, ok := svc.PrecioDe(context.Background(), gaseosa.ID, 1)
	require.True(t, ok)
	assert.True(t, precio.Equal(d("500")))

	_, ok = svc.PrecioDe(context.Background(), gaseosa.ID, 3)
	assert.False(t, ok)

	_, ok = svc.PrecioDe(context.Background(), uuid.New(), 1)
	assert.False(t, ok)
}
