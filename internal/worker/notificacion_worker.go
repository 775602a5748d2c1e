package worker

// notificacion_worker.go
// Processes order notification jobs from QueueNotificacion.
// Two notification types exist today:
//   - autorizacion_solicitada: the diagnosis is ready and the client must
//     approve the estimated cost before work starts
//   - entregado: the device was handed back; a delivery receipt PDF is
//     generated and mailed as attachment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/TheGeorge88/app-celulares/internal/infra"
	"github.com/TheGeorge88/app-celulares/internal/model"
	"github.com/TheGeorge88/app-celulares/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	NotificacionAutorizacionSolicitada = "autorizacion_solicitada"
	NotificacionEntregado              = "entregado"
)

const maxNotificacionAttempts = 3

// NotificacionJobPayload is the job envelope sent to QueueNotificacion.
type NotificacionJobPayload struct {
	OrdenID string `json:"orden_id"`
	Tipo    string `json:"tipo"`
}

type NotificacionWorker struct {
	ordenRepo      repository.OrdenRepository
	dispatcher     *Dispatcher
	rdb            *redis.Client
	pdfStoragePath string
	domain         string
}

func NewNotificacionWorker(
	ordenRepo repository.OrdenRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	pdfStoragePath string,
	domain string,
) *NotificacionWorker {
	return &NotificacionWorker{
		ordenRepo:      ordenRepo,
		dispatcher:     dispatcher,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
		domain:         domain,
	}
}

func (w *NotificacionWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotificacionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notificacion_worker: invalid payload")
		return
	}

	ordenID, err := uuid.Parse(payload.OrdenID)
	if err != nil {
		log.Error().Str("orden_id", payload.OrdenID).Msg("notificacion_worker: invalid orden_id")
		return
	}

	var orden *model.OrdenReparacion
	fetchErr := withRetry(ctx, maxNotificacionAttempts, func(attempt int) error {
		o, err := w.ordenRepo.FindByIDFull(ctx, ordenID)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).
				Str("orden_id", payload.OrdenID).
				Msg("notificacion_worker: fetch failed, retrying")
			return err
		}
		orden = o
		return nil
	})
	if fetchErr != nil {
		SendToDLQ(ctx, w.rdb, QueueNotificacion, "notificacion", raw,
			fmt.Sprintf("orden fetch failed after %d attempts: %v", maxNotificacionAttempts, fetchErr),
			maxNotificacionAttempts)
		return
	}

	if orden.Cliente == nil || orden.Cliente.Email == nil || *orden.Cliente.Email == "" {
		log.Info().Str("orden_id", payload.OrdenID).Msg("notificacion_worker: cliente sin email, se omite")
		return
	}

	switch payload.Tipo {
	case NotificacionAutorizacionSolicitada:
		w.notificarAutorizacion(ctx, orden)
	case NotificacionEntregado:
		w.notificarEntrega(ctx, orden)
	default:
		log.Warn().Str("tipo", payload.Tipo).Msg("notificacion_worker: tipo desconocido")
	}
}

func (w *NotificacionWorker) notificarAutorizacion(ctx context.Context, orden *model.OrdenReparacion) {
	costo := "a confirmar"
	if orden.CostoEstimado != nil {
		costo = "$" + orden.CostoEstimado.StringFixed(2)
	}
	diagnostico := ""
	if orden.Diagnostico != nil {
		diagnostico = *orden.Diagnostico
	}

	body := fmt.Sprintf(
		"Hola %s,\n\n"+
			"El diagnóstico de su equipo %s %s está listo:\n\n%s\n\n"+
			"Costo estimado de la reparación: %s\n\n"+
			"Para autorizar o rechazar la reparación ingrese su código de seguimiento %s en %s.\n\n"+
			"Gracias por confiar en nosotros.",
		orden.Cliente.RazonSocial,
		marcaEquipo(orden), modeloEquipo(orden),
		diagnostico, costo,
		orden.CodigoSeguimiento, w.domain,
	)

	job := EmailJobPayload{
		ToEmail: *orden.Cliente.Email,
		Subject: fmt.Sprintf("Diagnóstico listo — Orden %s", orden.CodigoSeguimiento),
		Body:    body,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, job); err != nil {
		log.Warn().Err(err).Str("orden_id", orden.ID.String()).Msg("notificacion_worker: failed to enqueue email")
	}
}

func (w *NotificacionWorker) notificarEntrega(ctx context.Context, orden *model.OrdenReparacion) {
	pdfPath, pdfErr := infra.GenerateComprobanteEntregaPDF(orden, w.pdfStoragePath)
	if pdfErr != nil {
		// Email still goes out, just without the receipt
		log.Warn().Err(pdfErr).Str("orden_id", orden.ID.String()).Msg("notificacion_worker: PDF generation failed")
		pdfPath = ""
	}

	total := ""
	if orden.CostoFinal != nil {
		total = fmt.Sprintf("\nTotal de la reparación: $%s", orden.CostoFinal.StringFixed(2))
	}
	body := fmt.Sprintf(
		"Hola %s,\n\n"+
			"Su equipo %s %s ha sido entregado. Adjuntamos el comprobante de entrega.%s\n\n"+
			"Gracias por confiar en nosotros.",
		orden.Cliente.RazonSocial,
		marcaEquipo(orden), modeloEquipo(orden),
		total,
	)

	job := EmailJobPayload{
		ToEmail: *orden.Cliente.Email,
		Subject: fmt.Sprintf("Equipo entregado — Orden %s", orden.CodigoSeguimiento),
		Body:    body,
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, job); err != nil {
		log.Warn().Err(err).Str("orden_id", orden.ID.String()).Msg("notificacion_worker: failed to enqueue email")
	}
}

func marcaEquipo(orden *model.OrdenReparacion) string {
	if orden.Equipo != nil {
		return orden.Equipo.Marca
	}
	return ""
}

func modeloEquipo(orden *model.OrdenReparacion) string {
	if orden.Equipo != nil {
		return orden.Equipo.Modelo
	}
	return ""
}
