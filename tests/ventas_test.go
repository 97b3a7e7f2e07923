package tests

import (
	"context"
	"testing"

	"github.com/MateoRicci/gestion-cec-sub000/internal/config"
	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/events"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ventaFixture struct {
	svc          service.VentaService
	caja         service.CajaService
	cajaRepo     *memCajaRepo
	ventaRepo    *memVentaRepo
	productoRepo *memProductoRepo
	catalogoRepo *memCatalogoRepo
	afiliadoRepo *memAfiliadoRepo
	bus          *events.Bus

	sesionID uuid.UUID
	pvID     uuid.UUID
	efectivo *model.MedioPago
	debito   *model.MedioPago
}

func newVentaFixture(t *testing.T) *ventaFixture {
	t.Helper()
	f := &ventaFixture{
		cajaRepo:     newMemCajaRepo(),
		ventaRepo:    newMemVentaRepo(),
		productoRepo: newMemProductoRepo(),
		catalogoRepo: newMemCatalogoRepo(),
		afiliadoRepo: newMemAfiliadoRepo(),
		bus:          events.NewBus(),
		pvID:         uuid.New(),
	}
	cfg := &config.Config{NombreClub: "CEC Test", PDFStoragePath: t.TempDir()}
	f.caja = service.NewCajaService(f.cajaRepo, f.ventaRepo, f.bus, nil, cfg)
	precios := service.NewPrecioService(f.productoRepo)
	f.svc = service.NewVentaService(
		f.ventaRepo, f.cajaRepo, f.catalogoRepo, f.productoRepo, f.afiliadoRepo,
		f.caja, precios, f.bus, nil,
	)

	f.efectivo = f.catalogoRepo.agregarMedio("Efectivo", true)
	f.debito = f.catalogoRepo.agregarMedio("Tarjeta de Debito", false)

	resp, err := f.caja.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		PuntoVentaID: f.pvID.String(),
		MontoInicial: d("10000"),
	})
	require.NoError(t, err)
	f.sesionID = uuid.MustParse(resp.ID)
	return f
}

func (f *ventaFixture) requestBase(medioPagoID uuid.UUID, items []dto.LineaVentaRequest) dto.RegistrarVentaRequest {
	return dto.RegistrarVentaRequest{
		SesionCajaID: f.sesionID.String(),
		PuntoVentaID: f.pvID.String(),
		MedioPagoID:  medioPagoID.String(),
		Items:        items,
	}
}

func TestRegistrarVentaWalkInExplotaEntradas(t *testing.T) {
	f := newVentaFixture(t)
	entrada := f.productoRepo.agregar("Entrada", true, map[int]decimal.Decimal{3: d("3500")})

	req := f.requestBase(f.efectivo.ID, []dto.LineaVentaRequest{{
		ID:         "manual-entrada",
		ProductoID: entrada.ID.String(),
		// The client lies about the price; the server must re-price.
		ListaPrecioID:  3,
		Cantidad:       3,
		PrecioUnitario: d("1"),
	}})

	resp, err := f.svc.Registrar(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(d("10500")))
	require.Len(t, resp.Detalles, 3)
	for _, det := range resp.Detalles {
		assert.Equal(t, 1, det.Cantidad)
		assert.True(t, det.PrecioUnitario.Equal(d("3500")))
		// Walk-in: no afiliado-linked rows whatsoever.
		assert.Nil(t, det.AfiliadoID)
	}
}

func TestRegistrarVentaMembresiaTresPersonas(t *testing.T) {
	f := newVentaFixture(t)
	mayor := f.productoRepo.agregar("Entrada Mayor", true, map[int]decimal.Decimal{1: d("1500")})
	menor := f.productoRepo.agregar("Entrada Menor", true, map[int]decimal.Decimal{1: d("800")})

	convenio := &model.Convenio{ID: uuid.New(), Nombre: "Empleados de Comercio"}
	require.NoError(t, f.catalogoRepo.CreateConvenio(context.Background(), convenio))
	afiliado := &model.Afiliado{
		ID: uuid.New(), Documento: "30111222", Nombre: "Marta", Apellido: "Gomez",
		ConvenioID: convenio.ID, Convenio: convenio, Activo: true,
	}
	require.NoError(t, f.afiliadoRepo.Create(context.Background(), afiliado))
	familiarID := uuid.New()
	aidStr := afiliado.ID.String()
	fidStr := familiarID.String()

	req := f.requestBase(f.efectivo.ID, []dto.LineaVentaRequest{
		{ID: "entrada-socio-30111222", ProductoID: mayor.ID.String(), ListaPrecioID: 1, Cantidad: 1, AfiliadoID: &aidStr, EsTitular: true},
		{ID: "entrada-socio-45666777", ProductoID: menor.ID.String(), ListaPrecioID: 1, Cantidad: 1, AfiliadoID: &aidStr, FamiliarID: &fidStr},
		{ID: "entrada-socio-28999000", ProductoID: mayor.ID.String(), ListaPrecioID: 1, Cantidad: 1, AfiliadoID: &aidStr},
	})
	req.AfiliadoID = &aidStr

	resp, err := f.svc.Registrar(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(d("3800")))
	require.Len(t, resp.Detalles, 3)
	titulares := 0
	for _, det := range resp.Detalles {
		assert.Equal(t, 1, det.Cantidad)
		require.NotNil(t, det.AfiliadoID)
		if det.EsTitular {
			titulares++
		}
	}
	assert.Equal(t, 1, titulares)
	require.NotNil(t, resp.Convenio)
	assert.Equal(t, "Empleados de Comercio", *resp.Convenio)

	// The stored venta captured the convenio for later reporting.
	guardada, err := f.ventaRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.NotNil(t, guardada.ConvenioID)
	assert.Equal(t, convenio.ID, *guardada.ConvenioID)
}

func TestRegistrarVentaAgregaExtrasYMovimiento(t *testing.T) {
	f := newVentaFixture(t)
	gaseosa := f.productoRepo.agregar("Gaseosa", false, map[int]decimal.Decimal{1: d("500")})

	req := f.requestBase(f.debito.ID, []dto.LineaVentaRequest{
		{ID: "m1", ProductoID: gaseosa.ID.String(), ListaPrecioID: 1, Cantidad: 2},
		{ID: "m2", ProductoID: gaseosa.ID.String(), ListaPrecioID: 1, Cantidad: 1},
	})

	resp, err := f.svc.Registrar(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	// Non-entry extras aggregate by (producto, lista).
	require.Len(t, resp.Detalles, 1)
	assert.Equal(t, 3, resp.Detalles[0].Cantidad)
	assert.True(t, resp.Total.Equal(d("1500")))

	movs, err := f.cajaRepo.ListMovimientos(context.Background(), f.sesionID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, model.MovVenta, movs[0].Tipo)
	assert.True(t, movs[0].Monto.Equal(d("1500")))
	require.NotNil(t, movs[0].ReferenciaID)
	assert.Equal(t, resp.ID, movs[0].ReferenciaID.String())
}

func TestRegistrarVentaPrecioFaltanteDegradaACero(t *testing.T) {
	f := newVentaFixture(t)
	// Product priced only on lista 1; the request asks lista 3.
	gaseosa := f.productoRepo.agregar("Gaseosa", false, map[int]decimal.Decimal{1: d("500")})

	req := f.requestBase(f.efectivo.ID, []dto.LineaVentaRequest{
		{ID: "m1", ProductoID: gaseosa.ID.String(), ListaPrecioID: 3, Cantidad: 2, PrecioUnitario: d("500")},
	})

	resp, err := f.svc.Registrar(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.True(t, resp.Total.IsZero())
}

func TestRegistrarVentaRechazaProductoInactivo(t *testing.T) {
	f := newVentaFixture(t)
	gaseosa := f.productoRepo.agregar("Gaseosa", false, map[int]decimal.Decimal{1: d("500")})
	gaseosa.Activo = false

	req := f.requestBase(f.efectivo.ID, []dto.LineaVentaRequest{
		{ID: "m1", ProductoID: gaseosa.ID.String(), ListaPrecioID: 1, Cantidad: 1},
	})

	_, err := f.svc.Registrar(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactivo")
}

func TestRegistrarVentaRequiereCajaAbierta(t *testing.T) {
	f := newVentaFixture(t)
	gaseosa := f.productoRepo.agregar("Gaseosa", false, map[int]decimal.Decimal{1: d("500")})

	req := f.requestBase(f.efectivo.ID, []dto.LineaVentaRequest{
		{ID: "m1", ProductoID: gaseosa.ID.String(), ListaPrecioID: 1, Cantidad: 1},
	})
	req.SesionCajaID = uuid.New().String()

	_, err := f.svc.Registrar(context.Background(), uuid.New(), req)
	require.Error(t, err)
}

func TestCancelarVentaCreaAnulacion(t *testing.T) {
	f := newVentaFixture(t)
	entrada := f.productoRepo.agregar("Entrada", true, map[int]decimal.Decimal{3: d("3500")})

	resp, err := f.svc.Registrar(context.Background(), uuid.New(), f.requestBase(f.efectivo.ID, []dto.LineaVentaRequest{
		{ID: "m1", ProductoID: entrada.ID.String(), ListaPrecioID: 3, Cantidad: 1},
	}))
	require.NoError(t, err)
	ventaID := uuid.MustParse(resp.ID)

	require.NoError(t, f.svc.Cancelar(context.Background(), ventaID, "cobro duplicado"))

	venta, err := f.ventaRepo.FindByID(context.Background(), ventaID)
	require.NoError(t, err)
	assert.Equal(t, model.VentaCancelada, venta.Estado)
	require.NotNil(t, venta.MotivoCancelacion)
	assert.Equal(t, "cobro duplicado", *venta.MotivoCancelacion)

	movs, err := f.cajaRepo.ListMovimientos(context.Background(), f.sesionID)
	require.NoError(t, err)
	require.Len(t, movs, 2) // venta + anulacion
	assert.Equal(t, model.MovAnulacion, movs[1].Tipo)
	assert.True(t, movs[1].Monto.Equal(d("3500")))

	// Second cancel must fail: the ledger would double the anulacion.
	err = f.svc.Cancelar(context.Background(), ventaID, "de nuevo")
	require.Error(t, err)
}

func TestVentaCanceladaQuedaFueraDelCierre(t *testing.T) {
	f := newVentaFixture(t)
	entrada := f.productoRepo.agregar("Entrada", true, map[int]decimal.Decimal{3: d("3500")})

	buena, err := f.svc.Registrar(context.Background(), uuid.New(), f.requestBase(f.efectivo.ID, []dto.LineaVentaRequest{
		{ID: "m1", ProductoID: entrada.ID.String(), ListaPrecioID: 3, Cantidad: 1},
	}))
	require.NoError(t, err)

	cancelable, err := f.svc.Registrar(context.Background(), uuid.New(), f.requestBase(f.efectivo.ID, []dto.LineaVentaRequest{
		{ID: "m1", ProductoID: entrada.ID.String(), ListaPrecioID: 3, Cantidad: 2},
	}))
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancelar(context.Background(), uuid.MustParse(cancelable.ID), "error de carga"))

	cierre, err := f.caja.Cerrar(context.Background(), f.sesionID, dto.CerrarCajaRequest{})
	require.NoError(t, err)

	assert.True(t, cierre.VentasEfectivo.Equal(buena.Total))
	assert.True(t, cierre.VentasEfectivoCanceladas.Equal(d("7000")))
	// 10000 inicial + 3500 en efectivo; the voided 7000 never lands.
	assert.True(t, cierre.SaldoEfectivo.Equal(d("13500")))
}

func TestListarPorSesion(t *testing.T) {
	f := newVentaFixture(t)
	gaseosa := f.productoRepo.agregar("Gaseosa", false, map[int]decimal.Decimal{1: d("500")})

	for i := 0; i < 2; i++ {
		_, err := f.svc.Registrar(context.Background(), uuid.New(), f.requestBase(f.efectivo.ID, []dto.LineaVentaRequest{
			{ID: "m1", ProductoID: gaseosa.ID.String(), ListaPrecioID: 1, Cantidad: 1},
		}))
		require.NoError(t, err)
	}

	lista, err := f.svc.ListarPorSesion(context.Background(), f.sesionID)
	require.NoError(t, err)
	assert.Equal(t, 2, lista.Total)
	require.Len(t, lista.Data, 2)
}
