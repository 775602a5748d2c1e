package service

import (
	"context"
	"testing"

	"github.com/TheGeorge88/app-celulares/internal/apierror"
	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"
	"github.com/TheGeorge88/app-celulares/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventarioFixture struct {
	svc         InventarioService
	ordenes     *stubOrdenRepo
	repuestos   *stubRepuestoRepo
	detalles    *stubDetalleRepo
	movimientos *stubMovimientoRepo
	orden       *model.OrdenReparacion
	repuesto    *model.Repuesto
}

func newInventarioFixture(t *testing.T) *inventarioFixture {
	t.Helper()

	ordenes := newStubOrdenRepo()
	repuestos := newStubRepuestoRepo()
	detalles := newStubDetalleRepo()
	movimientos := newStubMovimientoRepo()

	orden := &model.OrdenReparacion{
		ID:                uuid.New(),
		CodigoSeguimiento: "REP-20260315-QWE789",
		Estado:            model.EstadoEnReparacion,
	}
	require.NoError(t, ordenes.Create(context.Background(), orden))

	repuesto := &model.Repuesto{
		ID:          uuid.New(),
		Codigo:      "PANT-S21",
		Nombre:      "Pantalla Galaxy S21",
		Stock:       10,
		StockMinimo: 3,
		PrecioVenta: decimal.NewFromInt(32000),
		Activo:      true,
	}
	require.NoError(t, repuestos.Create(context.Background(), repuesto))

	return &inventarioFixture{
		svc:         NewInventarioService(ordenes, repuestos, detalles, movimientos),
		ordenes:     ordenes,
		repuestos:   repuestos,
		detalles:    detalles,
		movimientos: movimientos,
		orden:       orden,
		repuesto:    repuesto,
	}
}

func TestAgregarDetalle_ReservaStock(t *testing.T) {
	f := newInventarioFixture(t)

	resp, err := f.svc.AgregarDetalle(context.Background(), dto.AgregarDetalleRequest{
		OrdenReparacionID: f.orden.ID.String(),
		RepuestoID:        f.repuesto.ID.String(),
		Cantidad:          3,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Cantidad)
	assert.True(t, resp.PrecioUnitario.Equal(decimal.NewFromInt(32000)))
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(96000)))

	actualizado, err := f.repuestos.FindByID(context.Background(), f.repuesto.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, actualizado.Stock)

	require.Len(t, f.movimientos.movimientos, 1)
	mov := f.movimientos.movimientos[0]
	assert.Equal(t, "reserva_orden", mov.Tipo)
	assert.Equal(t, -3, mov.Cantidad)
	assert.Equal(t, 10, mov.StockAnterior)
	assert.Equal(t, 7, mov.StockNuevo)
	require.NotNil(t, mov.ReferenciaID)
	assert.Equal(t, f.orden.ID, *mov.ReferenciaID)
}

// staleReadRepuestoRepo simulates a concurrent mutation landing between the
// service's pre-read and the transaction: FindByID reports an outdated stock
// while the map holds the real value.
type staleReadRepuestoRepo struct {
	*stubRepuestoRepo
	staleStock int
}

func (r *staleReadRepuestoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Repuesto, error) {
	p, err := r.stubRepuestoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Stock = r.staleStock
	return p, nil
}

func TestAgregarDetalle_AuditoriaIgnoraLecturaDesactualizada(t *testing.T) {
	f := newInventarioFixture(t)

	// Real stock is 7; the pre-read sees a stale 10.
	f.repuesto.Stock = 7
	stale := &staleReadRepuestoRepo{stubRepuestoRepo: f.repuestos, staleStock: 10}
	svc := NewInventarioService(f.ordenes, stale, f.detalles, f.movimientos)

	_, err := svc.AgregarDetalle(context.Background(), dto.AgregarDetalleRequest{
		OrdenReparacionID: f.orden.ID.String(),
		RepuestoID:        f.repuesto.ID.String(),
		Cantidad:          3,
	})
	require.NoError(t, err)

	require.Len(t, f.movimientos.movimientos, 1)
	mov := f.movimientos.movimientos[0]
	assert.Equal(t, 7, mov.StockAnterior)
	assert.Equal(t, 4, mov.StockNuevo)
}

func TestAgregarDetalle_StockInsuficiente(t *testing.T) {
	f := newInventarioFixture(t)

	_, err := f.svc.AgregarDetalle(context.Background(), dto.AgregarDetalleRequest{
		OrdenReparacionID: f.orden.ID.String(),
		RepuestoID:        f.repuesto.ID.String(),
		Cantidad:          11,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInsufficientStock, apierror.KindOf(err))

	// Stock intact, no audit row, no orphan detalle.
	actual, err := f.repuestos.FindByID(context.Background(), f.repuesto.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, actual.Stock)
	assert.Empty(t, f.movimientos.movimientos)
	assert.Empty(t, f.detalles.detalles)
}

func TestAgregarDetalle_OrdenCerrada(t *testing.T) {
	f := newInventarioFixture(t)

	for _, estado := range []model.Estado{model.EstadoEntregado, model.EstadoCancelado} {
		f.orden.Estado = estado
		require.NoError(t, f.ordenes.Update(context.Background(), f.orden))

		_, err := f.svc.AgregarDetalle(context.Background(), dto.AgregarDetalleRequest{
			OrdenReparacionID: f.orden.ID.String(),
			RepuestoID:        f.repuesto.ID.String(),
			Cantidad:          1,
		})
		require.Error(t, err)
		assert.Equal(t, apierror.KindInvalidState, apierror.KindOf(err))
	}
}

func TestAgregarDetalle_RepuestoInactivo(t *testing.T) {
	f := newInventarioFixture(t)
	require.NoError(t, f.repuestos.SoftDelete(context.Background(), f.repuesto.ID))

	_, err := f.svc.AgregarDetalle(context.Background(), dto.AgregarDetalleRequest{
		OrdenReparacionID: f.orden.ID.String(),
		RepuestoID:        f.repuesto.ID.String(),
		Cantidad:          1,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestQuitarDetalle_DevuelveStock(t *testing.T) {
	f := newInventarioFixture(t)

	resp, err := f.svc.AgregarDetalle(context.Background(), dto.AgregarDetalleRequest{
		OrdenReparacionID: f.orden.ID.String(),
		RepuestoID:        f.repuesto.ID.String(),
		Cantidad:          4,
	})
	require.NoError(t, err)
	detalleID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.QuitarDetalle(context.Background(), detalleID))

	actualizado, err := f.repuestos.FindByID(context.Background(), f.repuesto.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, actualizado.Stock)

	require.Len(t, f.movimientos.movimientos, 2)
	devolucion := f.movimientos.movimientos[1]
	assert.Equal(t, "devolucion_orden", devolucion.Tipo)
	assert.Equal(t, 4, devolucion.Cantidad)

	assert.Empty(t, f.detalles.detalles)
}

func TestQuitarDetalle_Inexistente(t *testing.T) {
	f := newInventarioFixture(t)

	err := f.svc.QuitarDetalle(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestAjustarStock_Entrada(t *testing.T) {
	f := newInventarioFixture(t)

	resp, err := f.svc.AjustarStock(context.Background(), f.repuesto.ID, dto.AjustarStockRequest{
		Cantidad: 5,
		Tipo:     "entrada",
		Motivo:   "Compra a proveedor",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Stock)

	require.Len(t, f.movimientos.movimientos, 1)
	mov := f.movimientos.movimientos[0]
	assert.Equal(t, "ajuste_entrada", mov.Tipo)
	assert.Equal(t, 5, mov.Cantidad)
	assert.Equal(t, "Compra a proveedor", mov.Motivo)
	assert.Nil(t, mov.ReferenciaID)
}

func TestAjustarStock_Salida(t *testing.T) {
	f := newInventarioFixture(t)

	resp, err := f.svc.AjustarStock(context.Background(), f.repuesto.ID, dto.AjustarStockRequest{
		Cantidad: 2,
		Tipo:     "salida",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.Stock)

	require.Len(t, f.movimientos.movimientos, 1)
	mov := f.movimientos.movimientos[0]
	assert.Equal(t, "ajuste_salida", mov.Tipo)
	assert.Equal(t, -2, mov.Cantidad)
	assert.Equal(t, "Ajuste manual", mov.Motivo)
}

func TestAjustarStock_SalidaMayorAlStock(t *testing.T) {
	f := newInventarioFixture(t)

	_, err := f.svc.AjustarStock(context.Background(), f.repuesto.ID, dto.AjustarStockRequest{
		Cantidad: 50,
		Tipo:     "salida",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInsufficientStock, apierror.KindOf(err))
	assert.Empty(t, f.movimientos.movimientos)
}

func TestListarMovimientos_FiltroPorTipo(t *testing.T) {
	f := newInventarioFixture(t)

	_, err := f.svc.AjustarStock(context.Background(), f.repuesto.ID, dto.AjustarStockRequest{Cantidad: 5, Tipo: "entrada"})
	require.NoError(t, err)
	_, err = f.svc.AjustarStock(context.Background(), f.repuesto.ID, dto.AjustarStockRequest{Cantidad: 1, Tipo: "salida"})
	require.NoError(t, err)

	resp, err := f.svc.ListarMovimientos(context.Background(), repository.MovimientoStockFilter{Tipo: "ajuste_entrada"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "ajuste_entrada", resp.Data[0].Tipo)
}
