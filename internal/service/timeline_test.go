package service

import (
	"testing"
	"time"

	"github.com/TheGeorge88/app-celulares/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordenEnEstado(estado model.Estado) *model.OrdenReparacion {
	created := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	return &model.OrdenReparacion{
		CodigoSeguimiento: "REP-20260310-ABC234",
		Estado:            estado,
		CreatedAt:         created,
		UpdatedAt:         created,
	}
}

func TestGenerarTimeline_Recibido(t *testing.T) {
	orden := ordenEnEstado(model.EstadoRecibido)
	timeline := GenerarTimeline(orden)

	require.Len(t, timeline, 7)

	assert.Equal(t, "RECIBIDO", timeline[0].Estado)
	assert.True(t, timeline[0].Completado)
	assert.True(t, timeline[0].Actual)
	require.NotNil(t, timeline[0].Fecha)
	assert.Equal(t, "2026-03-10 09:30", *timeline[0].Fecha)

	for _, entry := range timeline[1:] {
		assert.False(t, entry.Completado, "estado %s no debería estar completado", entry.Estado)
		assert.False(t, entry.Actual)
		assert.Nil(t, entry.Fecha)
	}
}

func TestGenerarTimeline_EnReparacion(t *testing.T) {
	orden := ordenEnEstado(model.EstadoEnReparacion)
	timeline := GenerarTimeline(orden)

	require.Len(t, timeline, 7)

	// RECIBIDO plus the first four happy-path states are completed.
	completados := map[string]bool{}
	for _, entry := range timeline {
		completados[entry.Estado] = entry.Completado
		if entry.Estado == "EN_REPARACION" {
			assert.True(t, entry.Actual)
		} else {
			assert.False(t, entry.Actual, "solo EN_REPARACION debe ser actual, no %s", entry.Estado)
		}
	}
	assert.True(t, completados["RECIBIDO"])
	assert.True(t, completados["EN_DIAGNOSTICO"])
	assert.True(t, completados["PENDIENTE_AUTORIZACION"])
	assert.True(t, completados["AUTORIZADO"])
	assert.True(t, completados["EN_REPARACION"])
	assert.False(t, completados["REPARADO"])
	assert.False(t, completados["ENTREGADO"])
}

func TestGenerarTimeline_FechasSoloRegistradas(t *testing.T) {
	orden := ordenEnEstado(model.EstadoEntregado)
	auth := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)
	entrega := time.Date(2026, 3, 12, 17, 45, 0, 0, time.UTC)
	orden.FechaAutorizacion = &auth
	orden.FechaEntrega = &entrega

	timeline := GenerarTimeline(orden)
	require.Len(t, timeline, 7)

	for _, entry := range timeline {
		assert.True(t, entry.Completado)
		switch entry.Estado {
		case "RECIBIDO":
			require.NotNil(t, entry.Fecha)
		case "AUTORIZADO":
			require.NotNil(t, entry.Fecha)
			assert.Equal(t, "2026-03-11 14:00", *entry.Fecha)
		case "ENTREGADO":
			require.NotNil(t, entry.Fecha)
			assert.Equal(t, "2026-03-12 17:45", *entry.Fecha)
			assert.True(t, entry.Actual)
		default:
			// Intermediate states carry no recorded timestamp.
			assert.Nil(t, entry.Fecha, "estado %s no debería tener fecha", entry.Estado)
		}
	}
}

func TestGenerarTimeline_CanceladoCortaEnDosEntradas(t *testing.T) {
	orden := ordenEnEstado(model.EstadoCancelado)
	orden.UpdatedAt = time.Date(2026, 3, 11, 10, 15, 0, 0, time.UTC)

	timeline := GenerarTimeline(orden)
	require.Len(t, timeline, 2)

	assert.Equal(t, "RECIBIDO", timeline[0].Estado)
	assert.True(t, timeline[0].Completado)
	assert.False(t, timeline[0].Actual)

	assert.Equal(t, "CANCELADO", timeline[1].Estado)
	assert.True(t, timeline[1].Completado)
	assert.True(t, timeline[1].Actual)
	require.NotNil(t, timeline[1].Fecha)
	assert.Equal(t, "2026-03-11 10:15", *timeline[1].Fecha)
}

func TestGenerarTimeline_EsIdempotente(t *testing.T) {
	orden := ordenEnEstado(model.EstadoReparado)
	primera := GenerarTimeline(orden)
	segunda := GenerarTimeline(orden)
	assert.Equal(t, primera, segunda)
}
