package service

import (
	"context"
	"strings"
	"time"

	"github.com/TheGeorge88/app-celulares/internal/apierror"
	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"
	"github.com/TheGeorge88/app-celulares/internal/repository"
)

// ConsultaService is the public (unauthenticated) surface: status lookup by
// tracking code, client authorization of a diagnosed repair, and order history
// by document number. Everything it returns is a public-safe projection.
type ConsultaService interface {
	Consultar(ctx context.Context, codigoSeguimiento string) (*dto.ConsultaEstadoResponse, error)
	Autorizar(ctx context.Context, req dto.AutorizarRequest) (*dto.AutorizarResponse, error)
	HistorialCliente(ctx context.Context, numeroDocumento string) (*dto.HistorialClienteResponse, error)
}

type consultaService struct {
	ordenRepo repository.OrdenRepository
	cache     ConsultaCache
}

func NewConsultaService(ordenRepo repository.OrdenRepository, cache ConsultaCache) ConsultaService {
	return &consultaService{ordenRepo: ordenRepo, cache: cache}
}

func (s *consultaService) Consultar(ctx context.Context, codigoSeguimiento string) (*dto.ConsultaEstadoResponse, error) {
	codigo := strings.ToUpper(strings.TrimSpace(codigoSeguimiento))
	if codigo == "" {
		return nil, apierror.Validation("el código de seguimiento es requerido")
	}

	if s.cache != nil {
		if cached, ok := s.cache.Obtener(ctx, codigo); ok {
			return cached, nil
		}
	}

	orden, err := s.ordenRepo.FindByCodigoSeguimiento(ctx, codigo)
	if err != nil {
		return nil, apierror.NotFound("orden de reparación", codigo)
	}

	resp := &dto.ConsultaEstadoResponse{
		Encontrado: true,
		Orden:      buildConsultaView(orden),
		Timeline:   GenerarTimeline(orden),
	}

	if s.cache != nil {
		s.cache.Guardar(ctx, codigo, resp)
	}
	return resp, nil
}

// Autorizar records the client's decision on a diagnosed repair. The document
// number acts as the credential: a mismatch is Forbidden, never a hint about
// which part was wrong. Approval moves the order to AUTORIZADO; rejection
// cancels it. Either way the client's note is appended to observaciones.
func (s *consultaService) Autorizar(ctx context.Context, req dto.AutorizarRequest) (*dto.AutorizarResponse, error) {
	codigo := strings.ToUpper(strings.TrimSpace(req.CodigoSeguimiento))

	orden, err := s.ordenRepo.FindByCodigoSeguimiento(ctx, codigo)
	if err != nil {
		return nil, apierror.NotFound("orden de reparación", codigo)
	}
	if orden.Cliente == nil || orden.Cliente.NumeroDocumento != strings.TrimSpace(req.NumeroDocumento) {
		return nil, apierror.Forbidden("el documento no coincide con el titular de la orden")
	}
	if orden.Estado != model.EstadoPendienteAutorizacion {
		return nil, apierror.InvalidState("la orden no está pendiente de autorización")
	}

	now := time.Now()
	var message string
	if *req.Autorizar {
		orden.Autorizado = true
		orden.FechaAutorizacion = &now
		orden.Estado = model.EstadoAutorizado
		message = "Reparación autorizada. Comenzaremos a trabajar en su equipo."
	} else {
		orden.Autorizado = false
		orden.Estado = model.EstadoCancelado
		message = "La orden ha sido cancelada. Puede retirar su equipo en el taller."
	}

	if req.ObservacionesCliente != nil && strings.TrimSpace(*req.ObservacionesCliente) != "" {
		nota := "[CLIENTE]: " + strings.TrimSpace(*req.ObservacionesCliente)
		if orden.Observaciones != nil && *orden.Observaciones != "" {
			nota = *orden.Observaciones + "\n" + nota
		}
		orden.Observaciones = &nota
	}

	if err := s.ordenRepo.Update(ctx, orden); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidar(ctx, codigo)
	}

	return &dto.AutorizarResponse{
		Success: true,
		Message: message,
		Orden: dto.AutorizacionOrdenView{
			CodigoSeguimiento: orden.CodigoSeguimiento,
			Estado:            string(orden.Estado),
			Autorizado:        orden.Autorizado,
			FechaAutorizacion: fmtTimePtr(orden.FechaAutorizacion),
		},
	}, nil
}

func (s *consultaService) HistorialCliente(ctx context.Context, numeroDocumento string) (*dto.HistorialClienteResponse, error) {
	numero := strings.TrimSpace(numeroDocumento)
	if numero == "" {
		return nil, apierror.Validation("el número de documento es requerido")
	}

	ordenes, err := s.ordenRepo.ListByNumeroDocumento(ctx, numero)
	if err != nil {
		return nil, err
	}

	items := make([]dto.HistorialOrdenItem, 0, len(ordenes))
	for i := range ordenes {
		o := &ordenes[i]
		equipo := ""
		if o.Equipo != nil {
			equipo = o.Equipo.Marca + " " + o.Equipo.Modelo
		}
		items = append(items, dto.HistorialOrdenItem{
			CodigoSeguimiento: o.CodigoSeguimiento,
			Equipo:            equipo,
			Estado:            string(o.Estado),
			EstadoDescripcion: o.Estado.Descripcion(),
			EstadoColor:       o.Estado.Color(),
			FechaRecepcion:    o.CreatedAt.Format(fechaTimeline),
			FechaEntrega:      fechaTimelinePtr(o.FechaEntrega),
			CostoFinal:        o.CostoFinal,
		})
	}
	return &dto.HistorialClienteResponse{Ordenes: items}, nil
}

func buildConsultaView(orden *model.OrdenReparacion) *dto.ConsultaOrdenView {
	view := &dto.ConsultaOrdenView{
		CodigoSeguimiento:    orden.CodigoSeguimiento,
		Estado:               string(orden.Estado),
		EstadoDescripcion:    orden.Estado.Descripcion(),
		EstadoColor:          orden.Estado.Color(),
		ProblemaReportado:    orden.ProblemaReportado,
		Diagnostico:          orden.Diagnostico,
		CostoEstimado:        orden.CostoEstimado,
		CostoFinal:           orden.CostoFinal,
		Autorizado:           orden.Autorizado,
		FechaAutorizacion:    fechaTimelinePtr(orden.FechaAutorizacion),
		FechaRecepcion:       orden.CreatedAt.Format(fechaTimeline),
		FechaEntrega:         fechaTimelinePtr(orden.FechaEntrega),
		RequiereAutorizacion: orden.Estado == model.EstadoPendienteAutorizacion && !orden.Autorizado,
		Observaciones:        orden.Observaciones,
	}
	if orden.Equipo != nil {
		view.Equipo = dto.EquipoResumen{
			Marca:  orden.Equipo.Marca,
			Modelo: orden.Equipo.Modelo,
			Color:  orden.Equipo.Color,
		}
	}
	if orden.Tecnico != nil {
		nombre := orden.Tecnico.NombreCompleto()
		view.TecnicoAsignado = &nombre
	}
	for i := range orden.Detalles {
		d := &orden.Detalles[i]
		nombre := ""
		if d.Repuesto != nil {
			nombre = d.Repuesto.Nombre
		}
		view.RepuestosUtilizados = append(view.RepuestosUtilizados, dto.RepuestoUtilizado{
			Nombre:         nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return view
}

func fechaTimelinePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(fechaTimeline)
	return &s
}
