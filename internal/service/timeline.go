package service

import (
	"time"

	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"
)

const fechaTimeline = "2006-01-02 15:04"

// GenerarTimeline builds the public timeline for an order.
//
// RECIBIDO is always the first entry, always completed, stamped with the
// reception time. A cancelled order short-circuits to exactly two entries:
// reception plus the cancellation. Otherwise the six happy-path states follow
// in fixed order; entries at or before the order's current position are
// completed, the rest pending. Orders in RECIBIDO (position -1) show every
// happy-path entry as pending. Dates are only attached where the system
// actually recorded one.
func GenerarTimeline(orden *model.OrdenReparacion) []dto.TimelineEntry {
	recepcion := orden.CreatedAt.Format(fechaTimeline)
	entries := []dto.TimelineEntry{{
		Estado:      string(model.EstadoRecibido),
		Descripcion: model.EstadoRecibido.Descripcion(),
		Fecha:       &recepcion,
		Completado:  true,
		Actual:      orden.Estado == model.EstadoRecibido,
	}}

	if orden.Estado == model.EstadoCancelado {
		cancelacion := orden.UpdatedAt.Format(fechaTimeline)
		entries = append(entries, dto.TimelineEntry{
			Estado:      string(model.EstadoCancelado),
			Descripcion: model.EstadoCancelado.Descripcion(),
			Fecha:       &cancelacion,
			Completado:  true,
			Actual:      true,
		})
		return entries
	}

	posActual := orden.Estado.PosicionHappyPath()
	for i, estado := range model.EstadosHappyPath {
		entry := dto.TimelineEntry{
			Estado:      string(estado),
			Descripcion: estado.Descripcion(),
			Completado:  posActual >= i,
			Actual:      posActual == i,
		}
		if entry.Completado {
			entry.Fecha = fechaParaEstado(orden, estado)
		}
		entries = append(entries, entry)
	}
	return entries
}

// fechaParaEstado returns the recorded timestamp for states the system tracks
// explicitly. Intermediate states have no per-state timestamp.
func fechaParaEstado(orden *model.OrdenReparacion, estado model.Estado) *string {
	var t *time.Time
	switch estado {
	case model.EstadoAutorizado:
		t = orden.FechaAutorizacion
	case model.EstadoEntregado:
		t = orden.FechaEntrega
	}
	if t == nil {
		return nil
	}
	s := t.Format(fechaTimeline)
	return &s
}
