package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/TheGeorge88/app-celulares/internal/apierror"
	"github.com/TheGeorge88/app-celulares/internal/config"
	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ordenFixture struct {
	svc       OrdenService
	ordenes   *stubOrdenRepo
	clientes  *stubClienteRepo
	equipos   *stubEquipoRepo
	tecnicos  *stubTecnicoRepo
	cache     *stubCache
	clienteID uuid.UUID
	equipoID  uuid.UUID
	tecnicoID uuid.UUID
}

func newOrdenFixture(t *testing.T) *ordenFixture {
	t.Helper()

	ordenes := newStubOrdenRepo()
	clientes := newStubClienteRepo()
	equipos := newStubEquipoRepo()
	tecnicos := newStubTecnicoRepo()
	cache := newStubCache()

	cliente := &model.Cliente{ID: uuid.New(), TipoDocumento: "DNI", NumeroDocumento: "30123456", RazonSocial: "Laura Giménez"}
	require.NoError(t, clientes.Create(context.Background(), cliente))

	equipo := &model.Equipo{ID: uuid.New(), ClienteID: cliente.ID, Marca: "Samsung", Modelo: "Galaxy S21"}
	require.NoError(t, equipos.Create(context.Background(), equipo))

	tecnico := &model.Tecnico{ID: uuid.New(), Nombre: "Marcos", Apellido: "Ruiz", Activo: true}
	require.NoError(t, tecnicos.Create(context.Background(), tecnico))

	cfg := &config.Config{CodigoPrefijo: "REP"}
	svc := NewOrdenService(ordenes, clientes, equipos, tecnicos, nil, cache, cfg)

	return &ordenFixture{
		svc:       svc,
		ordenes:   ordenes,
		clientes:  clientes,
		equipos:   equipos,
		tecnicos:  tecnicos,
		cache:     cache,
		clienteID: cliente.ID,
		equipoID:  equipo.ID,
		tecnicoID: tecnico.ID,
	}
}

func (f *ordenFixture) crearOrden(t *testing.T) *model.OrdenReparacion {
	t.Helper()
	resp, err := f.svc.Crear(context.Background(), dto.CrearOrdenRequest{
		ClienteID:         f.clienteID.String(),
		EquipoID:          f.equipoID.String(),
		ProblemaReportado: "Pantalla rota, no enciende",
	})
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	orden, err := f.ordenes.FindByID(context.Background(), id)
	require.NoError(t, err)
	return orden
}

func TestCrearOrden(t *testing.T) {
	f := newOrdenFixture(t)

	resp, err := f.svc.Crear(context.Background(), dto.CrearOrdenRequest{
		ClienteID:         f.clienteID.String(),
		EquipoID:          f.equipoID.String(),
		ProblemaReportado: "No carga la batería",
	})
	require.NoError(t, err)

	assert.Equal(t, "RECIBIDO", resp.Estado)
	assert.Regexp(t, regexp.MustCompile(`^REP-\d{8}-[A-HJ-NP-Z2-9]{6}$`), resp.CodigoSeguimiento)
	assert.Equal(t, f.clienteID.String(), resp.ClienteID)
	assert.Nil(t, resp.TecnicoID)
}

func TestCrearOrden_CostoEstimadoNegativo(t *testing.T) {
	f := newOrdenFixture(t)

	costo := decimal.NewFromInt(-500)
	_, err := f.svc.Crear(context.Background(), dto.CrearOrdenRequest{
		ClienteID:         f.clienteID.String(),
		EquipoID:          f.equipoID.String(),
		ProblemaReportado: "No enciende tras caída",
		CostoEstimado:     &costo,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestCrearOrden_ClienteInexistente(t *testing.T) {
	f := newOrdenFixture(t)

	_, err := f.svc.Crear(context.Background(), dto.CrearOrdenRequest{
		ClienteID:         uuid.NewString(),
		EquipoID:          f.equipoID.String(),
		ProblemaReportado: "No enciende",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestCrearOrden_EquipoDeOtroCliente(t *testing.T) {
	f := newOrdenFixture(t)

	otro := &model.Cliente{ID: uuid.New(), TipoDocumento: "DNI", NumeroDocumento: "28999888", RazonSocial: "Pedro Sosa"}
	require.NoError(t, f.clientes.Create(context.Background(), otro))

	_, err := f.svc.Crear(context.Background(), dto.CrearOrdenRequest{
		ClienteID:         otro.ID.String(),
		EquipoID:          f.equipoID.String(),
		ProblemaReportado: "Micrófono sin audio",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestCrearOrden_CodigosUnicos(t *testing.T) {
	f := newOrdenFixture(t)

	vistos := map[string]bool{}
	for i := 0; i < 20; i++ {
		resp, err := f.svc.Crear(context.Background(), dto.CrearOrdenRequest{
			ClienteID:         f.clienteID.String(),
			EquipoID:          f.equipoID.String(),
			ProblemaReportado: "Pantalla con líneas verticales",
		})
		require.NoError(t, err)
		assert.False(t, vistos[resp.CodigoSeguimiento], "código repetido: %s", resp.CodigoSeguimiento)
		vistos[resp.CodigoSeguimiento] = true
	}
}

func TestRegistrarDiagnostico(t *testing.T) {
	f := newOrdenFixture(t)
	orden := f.crearOrden(t)

	resp, err := f.svc.RegistrarDiagnostico(context.Background(), orden.ID, dto.RegistrarDiagnosticoRequest{
		Diagnostico:   "Módulo de pantalla dañado, requiere reemplazo",
		CostoEstimado: decimal.NewFromInt(45000),
	})
	require.NoError(t, err)

	assert.Equal(t, "PENDIENTE_AUTORIZACION", resp.Estado)
	require.NotNil(t, resp.Diagnostico)
	assert.Equal(t, "Módulo de pantalla dañado, requiere reemplazo", *resp.Diagnostico)
	require.NotNil(t, resp.CostoEstimado)
	assert.True(t, resp.CostoEstimado.Equal(decimal.NewFromInt(45000)))
	assert.Contains(t, f.cache.invalidations, orden.CodigoSeguimiento)
}

func TestRegistrarDiagnostico_CostoNegativo(t *testing.T) {
	f := newOrdenFixture(t)
	orden := f.crearOrden(t)

	_, err := f.svc.RegistrarDiagnostico(context.Background(), orden.ID, dto.RegistrarDiagnosticoRequest{
		Diagnostico:   "Placa con sulfato",
		CostoEstimado: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestAsignarTecnico(t *testing.T) {
	f := newOrdenFixture(t)
	orden := f.crearOrden(t)

	resp, err := f.svc.AsignarTecnico(context.Background(), orden.ID, f.tecnicoID)
	require.NoError(t, err)
	require.NotNil(t, resp.TecnicoID)
	assert.Equal(t, f.tecnicoID.String(), *resp.TecnicoID)
}

func TestAsignarTecnico_Inexistente(t *testing.T) {
	f := newOrdenFixture(t)
	orden := f.crearOrden(t)

	_, err := f.svc.AsignarTecnico(context.Background(), orden.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestCambiarEstado_EntregadoEstampaFecha(t *testing.T) {
	f := newOrdenFixture(t)
	orden := f.crearOrden(t)

	resp, err := f.svc.CambiarEstado(context.Background(), orden.ID, model.EstadoEntregado)
	require.NoError(t, err)
	assert.Equal(t, "ENTREGADO", resp.Estado)
	require.NotNil(t, resp.FechaEntrega)

	guardada, err := f.ordenes.FindByID(context.Background(), orden.ID)
	require.NoError(t, err)
	assert.NotNil(t, guardada.FechaEntrega)
}

func TestCambiarEstado_Invalido(t *testing.T) {
	f := newOrdenFixture(t)
	orden := f.crearOrden(t)

	_, err := f.svc.CambiarEstado(context.Background(), orden.ID, model.Estado("PERDIDO"))
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestCambiarEstado_InvalidaCache(t *testing.T) {
	f := newOrdenFixture(t)
	orden := f.crearOrden(t)

	_, err := f.svc.CambiarEstado(context.Background(), orden.ID, model.EstadoEnDiagnostico)
	require.NoError(t, err)
	assert.Contains(t, f.cache.invalidations, orden.CodigoSeguimiento)
}

func TestEliminarOrden_SoloCanceladas(t *testing.T) {
	f := newOrdenFixture(t)
	orden := f.crearOrden(t)

	err := f.svc.Eliminar(context.Background(), orden.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalidState, apierror.KindOf(err))
}

func TestEliminarOrden_ConDetallesBloqueada(t *testing.T) {
	f := newOrdenFixture(t)
	orden := f.crearOrden(t)

	orden.Estado = model.EstadoCancelado
	require.NoError(t, f.ordenes.Update(context.Background(), orden))
	f.ordenes.detalles[orden.ID] = 2

	err := f.svc.Eliminar(context.Background(), orden.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestEliminarOrden(t *testing.T) {
	f := newOrdenFixture(t)
	orden := f.crearOrden(t)

	orden.Estado = model.EstadoCancelado
	require.NoError(t, f.ordenes.Update(context.Background(), orden))

	require.NoError(t, f.svc.Eliminar(context.Background(), orden.ID))
	_, err := f.ordenes.FindByID(context.Background(), orden.ID)
	assert.Error(t, err)
}

func TestListarOrdenes_FiltroPorEstado(t *testing.T) {
	f := newOrdenFixture(t)
	a := f.crearOrden(t)
	f.crearOrden(t)

	a.Estado = model.EstadoEnReparacion
	require.NoError(t, f.ordenes.Update(context.Background(), a))

	resp, err := f.svc.Listar(context.Background(), dto.OrdenFilter{Estado: "EN_REPARACION", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, a.CodigoSeguimiento, resp.Data[0].CodigoSeguimiento)
}
