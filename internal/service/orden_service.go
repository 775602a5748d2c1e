package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/TheGeorge88/app-celulares/internal/apierror"
	"github.com/TheGeorge88/app-celulares/internal/config"
	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"
	"github.com/TheGeorge88/app-celulares/internal/repository"
	"github.com/TheGeorge88/app-celulares/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxCodigoAttempts bounds the collision-check loop for tracking codes.
// The DB unique index remains the final backstop.
const maxCodigoAttempts = 5

// OrdenService owns the repair-order lifecycle: creation, diagnosis,
// technician assignment, state transitions, and deletion.
type OrdenService interface {
	Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error)
	Listar(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error)
	ListarPorTecnico(ctx context.Context, tecnicoID uuid.UUID) ([]dto.OrdenResponse, error)
	ListarPendientes(ctx context.Context) ([]dto.OrdenResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error)
	RegistrarDiagnostico(ctx context.Context, id uuid.UUID, req dto.RegistrarDiagnosticoRequest) (*dto.OrdenResponse, error)
	AsignarTecnico(ctx context.Context, id uuid.UUID, tecnicoID uuid.UUID) (*dto.OrdenResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado model.Estado) (*dto.OrdenResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type ordenService struct {
	repo        repository.OrdenRepository
	clienteRepo repository.ClienteRepository
	equipoRepo  repository.EquipoRepository
	tecnicoRepo repository.TecnicoRepository
	dispatcher  *worker.Dispatcher
	cache       ConsultaCache
	cfg         *config.Config
}

func NewOrdenService(
	repo repository.OrdenRepository,
	clienteRepo repository.ClienteRepository,
	equipoRepo repository.EquipoRepository,
	tecnicoRepo repository.TecnicoRepository,
	dispatcher *worker.Dispatcher,
	cache ConsultaCache,
	cfg *config.Config,
) OrdenService {
	return &ordenService{
		repo:        repo,
		clienteRepo: clienteRepo,
		equipoRepo:  equipoRepo,
		tecnicoRepo: tecnicoRepo,
		dispatcher:  dispatcher,
		cache:       cache,
		cfg:         cfg,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *ordenService) Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.Validation("cliente_id inválido")
	}
	if req.CostoEstimado != nil && req.CostoEstimado.IsNegative() {
		return nil, apierror.Validation("el costo estimado no puede ser negativo")
	}
	equipoID, err := uuid.Parse(req.EquipoID)
	if err != nil {
		return nil, apierror.Validation("equipo_id inválido")
	}

	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.Validation("el cliente referenciado no existe")
	}
	equipo, err := s.equipoRepo.FindByID(ctx, equipoID)
	if err != nil {
		return nil, apierror.Validation("el equipo referenciado no existe")
	}
	if equipo.ClienteID != clienteID {
		return nil, apierror.Validation("el equipo no pertenece al cliente indicado")
	}

	var tecnicoID *uuid.UUID
	if req.TecnicoID != nil {
		tid, err := uuid.Parse(*req.TecnicoID)
		if err != nil {
			return nil, apierror.Validation("tecnico_id inválido")
		}
		if _, err := s.tecnicoRepo.FindByID(ctx, tid); err != nil {
			return nil, apierror.Validation("el técnico referenciado no existe")
		}
		tecnicoID = &tid
	}

	codigo, err := s.nuevoCodigoSeguimiento(ctx)
	if err != nil {
		return nil, err
	}

	orden := &model.OrdenReparacion{
		CodigoSeguimiento: codigo,
		ClienteID:         clienteID,
		EquipoID:          equipoID,
		TecnicoID:         tecnicoID,
		ProblemaReportado: req.ProblemaReportado,
		CostoEstimado:     req.CostoEstimado,
		Estado:            model.EstadoRecibido,
	}
	if err := s.repo.Create(ctx, orden); err != nil {
		return nil, err
	}

	full, err := s.repo.FindByIDFull(ctx, orden.ID)
	if err != nil {
		return ordenToResponse(orden), nil
	}
	return ordenToResponse(full), nil
}

// nuevoCodigoSeguimiento generates a REP-YYYYMMDD-XXXXXX code, retrying on
// collision. The unique index on codigo_seguimiento catches the race where two
// requests draw the same code between check and insert.
func (s *ordenService) nuevoCodigoSeguimiento(ctx context.Context) (string, error) {
	for i := 0; i < maxCodigoAttempts; i++ {
		codigo := generarCodigoSeguimiento(s.cfg.CodigoPrefijo)
		existe, err := s.repo.ExisteCodigoSeguimiento(ctx, codigo)
		if err != nil {
			return "", err
		}
		if !existe {
			return codigo, nil
		}
	}
	return "", apierror.Conflict("no se pudo generar un código de seguimiento único")
}

const codigoCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generarCodigoSeguimiento(prefijo string) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failure is unrecoverable in practice; fall back to a
		// timestamp suffix so creation still proceeds.
		return fmt.Sprintf("%s-%s-%06d", prefijo, time.Now().Format("20060102"), time.Now().UnixNano()%1000000)
	}
	out := make([]byte, 6)
	for i := range b {
		out[i] = codigoCharset[int(b[i])%len(codigoCharset)]
	}
	return fmt.Sprintf("%s-%s-%s", prefijo, time.Now().Format("20060102"), string(out))
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *ordenService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByIDFull(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("orden de reparación", id.String())
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) Listar(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	ordenes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrdenResponse, 0, len(ordenes))
	for i := range ordenes {
		items = append(items, *ordenToResponse(&ordenes[i]))
	}
	return &dto.OrdenListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *ordenService) ListarPorTecnico(ctx context.Context, tecnicoID uuid.UUID) ([]dto.OrdenResponse, error) {
	ordenes, err := s.repo.ListByTecnico(ctx, tecnicoID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrdenResponse, 0, len(ordenes))
	for i := range ordenes {
		items = append(items, *ordenToResponse(&ordenes[i]))
	}
	return items, nil
}

func (s *ordenService) ListarPendientes(ctx context.Context) ([]dto.OrdenResponse, error) {
	ordenes, err := s.repo.ListPendientes(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrdenResponse, 0, len(ordenes))
	for i := range ordenes {
		items = append(items, *ordenToResponse(&ordenes[i]))
	}
	return items, nil
}

// ── Actualizar ────────────────────────────────────────────────────────────────

func (s *ordenService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("orden de reparación", id.String())
	}

	if req.ProblemaReportado != nil {
		orden.ProblemaReportado = *req.ProblemaReportado
	}
	if req.Diagnostico != nil {
		orden.Diagnostico = req.Diagnostico
	}
	if req.SolucionAplicada != nil {
		orden.SolucionAplicada = req.SolucionAplicada
	}
	if req.CostoEstimado != nil {
		if req.CostoEstimado.IsNegative() {
			return nil, apierror.Validation("el costo estimado no puede ser negativo")
		}
		orden.CostoEstimado = req.CostoEstimado
	}
	if req.CostoFinal != nil {
		if req.CostoFinal.IsNegative() {
			return nil, apierror.Validation("el costo final no puede ser negativo")
		}
		orden.CostoFinal = req.CostoFinal
	}
	if req.Observaciones != nil {
		orden.Observaciones = req.Observaciones
	}

	if err := s.repo.Update(ctx, orden); err != nil {
		return nil, err
	}
	s.invalidarConsulta(ctx, orden.CodigoSeguimiento)
	return s.ObtenerPorID(ctx, id)
}

// ── RegistrarDiagnostico ──────────────────────────────────────────────────────
// Records the technician's diagnosis plus estimated cost and moves the order to
// PENDIENTE_AUTORIZACION. Re-diagnosis from any state is allowed deliberately:
// a supervisor can send an order back for a second evaluation.

func (s *ordenService) RegistrarDiagnostico(ctx context.Context, id uuid.UUID, req dto.RegistrarDiagnosticoRequest) (*dto.OrdenResponse, error) {
	if req.CostoEstimado.IsNegative() {
		return nil, apierror.Validation("el costo estimado no puede ser negativo")
	}

	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("orden de reparación", id.String())
	}

	diagnostico := req.Diagnostico
	costo := req.CostoEstimado
	orden.Diagnostico = &diagnostico
	orden.CostoEstimado = &costo
	orden.Estado = model.EstadoPendienteAutorizacion

	if err := s.repo.Update(ctx, orden); err != nil {
		return nil, err
	}
	s.invalidarConsulta(ctx, orden.CodigoSeguimiento)

	// Best-effort: notify the client that the repair awaits authorization.
	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueNotificacion(ctx, worker.NotificacionJobPayload{
			OrdenID: orden.ID.String(),
			Tipo:    worker.NotificacionAutorizacionSolicitada,
		}); err != nil {
			log.Warn().Err(err).Str("orden_id", orden.ID.String()).Msg("no se pudo encolar la notificación de autorización")
		}
	}

	return s.ObtenerPorID(ctx, id)
}

// ── AsignarTecnico ────────────────────────────────────────────────────────────

func (s *ordenService) AsignarTecnico(ctx context.Context, id uuid.UUID, tecnicoID uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("orden de reparación", id.String())
	}
	if _, err := s.tecnicoRepo.FindByID(ctx, tecnicoID); err != nil {
		return nil, apierror.NotFound("técnico", tecnicoID.String())
	}

	orden.TecnicoID = &tecnicoID
	if err := s.repo.Update(ctx, orden); err != nil {
		return nil, err
	}
	s.invalidarConsulta(ctx, orden.CodigoSeguimiento)
	return s.ObtenerPorID(ctx, id)
}

// ── CambiarEstado ─────────────────────────────────────────────────────────────
// Transitions are deliberately permissive: any of the eight states can be set
// from any other, matching how the shop actually operates (orders get reopened,
// cancelled late, or corrected). The happy-path ordering only governs the
// public timeline display. ENTREGADO additionally stamps the delivery time.

func (s *ordenService) CambiarEstado(ctx context.Context, id uuid.UUID, estado model.Estado) (*dto.OrdenResponse, error) {
	if !estado.EsValido() {
		return nil, apierror.Validation(fmt.Sprintf("estado %q no es válido", estado))
	}

	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("orden de reparación", id.String())
	}

	orden.Estado = estado
	if estado == model.EstadoEntregado {
		now := time.Now()
		orden.FechaEntrega = &now
	}

	if err := s.repo.Update(ctx, orden); err != nil {
		return nil, err
	}
	s.invalidarConsulta(ctx, orden.CodigoSeguimiento)

	if estado == model.EstadoEntregado && s.dispatcher != nil {
		if err := s.dispatcher.EnqueueNotificacion(ctx, worker.NotificacionJobPayload{
			OrdenID: orden.ID.String(),
			Tipo:    worker.NotificacionEntregado,
		}); err != nil {
			log.Warn().Err(err).Str("orden_id", orden.ID.String()).Msg("no se pudo encolar la notificación de entrega")
		}
	}

	return s.ObtenerPorID(ctx, id)
}

// ── Eliminar ──────────────────────────────────────────────────────────────────
// Only cancelled orders can be deleted, and only after their line items were
// removed (each removal returns stock through the ledger). No silent cascade.

func (s *ordenService) Eliminar(ctx context.Context, id uuid.UUID) error {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("orden de reparación", id.String())
	}
	if orden.Estado != model.EstadoCancelado {
		return apierror.InvalidState("solo se pueden eliminar órdenes canceladas")
	}
	count, err := s.repo.CountDetalles(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apierror.Conflict("la orden tiene repuestos asociados; quítelos antes de eliminarla")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarConsulta(ctx, orden.CodigoSeguimiento)
	return nil
}

func (s *ordenService) invalidarConsulta(ctx context.Context, codigo string) {
	if s.cache != nil {
		s.cache.Invalidar(ctx, codigo)
	}
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func ordenToResponse(o *model.OrdenReparacion) *dto.OrdenResponse {
	resp := &dto.OrdenResponse{
		ID:                o.ID.String(),
		CodigoSeguimiento: o.CodigoSeguimiento,
		ClienteID:         o.ClienteID.String(),
		EquipoID:          o.EquipoID.String(),
		ProblemaReportado: o.ProblemaReportado,
		Diagnostico:       o.Diagnostico,
		SolucionAplicada:  o.SolucionAplicada,
		Estado:            string(o.Estado),
		EstadoDescripcion: o.Estado.Descripcion(),
		EstadoColor:       o.Estado.Color(),
		CostoEstimado:     o.CostoEstimado,
		CostoFinal:        o.CostoFinal,
		Autorizado:        o.Autorizado,
		FechaAutorizacion: fmtTimePtr(o.FechaAutorizacion),
		FechaEntrega:      fmtTimePtr(o.FechaEntrega),
		Observaciones:     o.Observaciones,
		CreatedAt:         fmtTime(o.CreatedAt),
	}
	if o.TecnicoID != nil {
		tid := o.TecnicoID.String()
		resp.TecnicoID = &tid
	}
	if o.Cliente != nil {
		resp.Cliente = clienteToResponse(o.Cliente)
	}
	if o.Equipo != nil {
		resp.Equipo = equipoToResponse(o.Equipo)
	}
	if o.Tecnico != nil {
		resp.Tecnico = tecnicoToResponse(o.Tecnico)
	}
	for i := range o.Detalles {
		resp.Detalles = append(resp.Detalles, *detalleToResponse(&o.Detalles[i]))
	}
	return resp
}

func fmtTime(t time.Time) string { return t.Format("2006-01-02T15:04:05Z") }

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtTime(*t)
	return &s
}
