package tests

import (
	"context"
	"testing"

	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAfiliadoFixture() (service.AfiliadoService, *memAfiliadoRepo, *memCatalogoRepo) {
	afiliadoRepo := newMemAfiliadoRepo()
	catalogoRepo := newMemCatalogoRepo()
	precios := service.NewPrecioService(newMemProductoRepo())
	return service.NewAfiliadoService(afiliadoRepo, catalogoRepo, precios), afiliadoRepo, catalogoRepo
}

func TestBuscarPorDocumentoConsumidorFinal(t *testing.T) {
	svc, _, _ := newAfiliadoFixture()

	resp, err := svc.BuscarPorDocumento(context.Background(), "0")
	require.NoError(t, err)

	assert.Equal(t, dto.ConsumidorFinalID, resp.IDAfiliado)
	assert.Equal(t, model.NombreConsumidorFinal, resp.Convenio)
	assert.Equal(t, service.ListaNoSocios, resp.ListaPrecioID)
	assert.Empty(t, resp.Familiares)
	assert.False(t, resp.ComproHoy)
}

func TestBuscarPorDocumentoAfiliado(t *testing.T) {
	svc, afiliadoRepo, _ := newAfiliadoFixture()

	empleados := service.ListaSociosEmpleados
	convenio := &model.Convenio{ID: uuid.New(), Nombre: "Empleados CEC", ListaPrecioID: &empleados}
	familiar := model.Familiar{
		ID: uuid.New(), Documento: "45666777", Nombre: "Lucas", Apellido: "Gomez",
		Parentesco: "hijo", Categoria: "menor", Activo: true,
	}
	afiliado := &model.Afiliado{
		ID: uuid.New(), Documento: "30111222", Nombre: "Marta", Apellido: "Gomez",
		ConvenioID: convenio.ID, Convenio: convenio,
		Familiares: []model.Familiar{familiar}, Activo: true,
	}
	require.NoError(t, afiliadoRepo.Create(context.Background(), afiliado))
	afiliadoRepo.presentes[familiar.ID] = true

	resp, err := svc.BuscarPorDocumento(context.Background(), "30111222")
	require.NoError(t, err)

	assert.Equal(t, afiliado.ID.String(), resp.IDAfiliado)
	// An employee agreement resolves to the Socios Empleados price list.
	assert.Equal(t, service.ListaSociosEmpleados, resp.ListaPrecioID)
	assert.Equal(t, "Empleados CEC", resp.Convenio)
	assert.False(t, resp.ComproHoy)

	require.Len(t, resp.Familiares, 1)
	assert.Equal(t, "menor", resp.Familiares[0].Categoria)
	assert.True(t, resp.Familiares[0].ComproHoy)
}

func TestBuscarPorDocumentoInexistente(t *testing.T) {
	svc, _, _ := newAfiliadoFixture()

	_, err := svc.BuscarPorDocumento(context.Background(), "99999999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no encontrado")
}

func TestCrearAfiliadoDocumentoDuplicado(t *testing.T) {
	svc, afiliadoRepo, catalogoRepo := newAfiliadoFixture()

	convenio := &model.Convenio{ID: uuid.New(), Nombre: "Empleados de Comercio"}
	require.NoError(t, catalogoRepo.CreateConvenio(context.Background(), convenio))
	require.NoError(t, afiliadoRepo.Create(context.Background(), &model.Afiliado{
		ID: uuid.New(), Documento: "30111222", Nombre: "Marta", Apellido: "Gomez",
		ConvenioID: convenio.ID, Activo: true,
	}))

	_, err := svc.Crear(context.Background(), dto.CrearAfiliadoRequest{
		Documento: "30111222", Nombre: "Otra", Apellido: "Persona",
		ConvenioID: convenio.ID.String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya existe un afiliado")
}

func TestCrearAfiliadoYAgregarFamiliar(t *testing.T) {
	svc, _, catalogoRepo := newAfiliadoFixture()

	convenio := &model.Convenio{ID: uuid.New(), Nombre: "Empleados de Comercio"}
	require.NoError(t, catalogoRepo.CreateConvenio(context.Background(), convenio))

	resp, err := svc.Crear(context.Background(), dto.CrearAfiliadoRequest{
		Documento: "30111222", Nombre: "Marta", Apellido: "Gomez",
		ConvenioID: convenio.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Empleados de Comercio", resp.Convenio)

	afiliadoID := uuid.MustParse(resp.ID)
	require.NoError(t, svc.AgregarFamiliar(context.Background(), afiliadoID, dto.CrearFamiliarRequest{
		Documento: "45666777", Nombre: "Lucas", Apellido: "Gomez",
		Parentesco: "hijo", Categoria: "menor",
	}))

	lookup, err := svc.BuscarPorDocumento(context.Background(), "30111222")
	require.NoError(t, err)
	require.Len(t, lookup.Familiares, 1)

	require.NoError(t, svc.QuitarFamiliar(context.Background(), uuid.MustParse(lookup.Familiares[0].ID)))
	lookup, err = svc.BuscarPorDocumento(context.Background(), "30111222")
	require.NoError(t, err)
	assert.Empty(t, lookup.Familiares)
}
