package service

import (
	"context"
	"errors"

	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"
	"github.com/TheGeorge88/app-celulares/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

// ── In-memory OrdenRepository stub ───────────────────────────────────────────

type stubOrdenRepo struct {
	ordenes  map[uuid.UUID]*model.OrdenReparacion
	detalles map[uuid.UUID]int64 // ordenID → line item count
}

func newStubOrdenRepo() *stubOrdenRepo {
	return &stubOrdenRepo{
		ordenes:  make(map[uuid.UUID]*model.OrdenReparacion),
		detalles: make(map[uuid.UUID]int64),
	}
}

func (r *stubOrdenRepo) Create(_ context.Context, o *model.OrdenReparacion) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.OrdenReparacion, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, errNotFound
	}
	return o, nil
}

func (r *stubOrdenRepo) FindByIDFull(ctx context.Context, id uuid.UUID) (*model.OrdenReparacion, error) {
	return r.FindByID(ctx, id)
}

func (r *stubOrdenRepo) FindByCodigoSeguimiento(_ context.Context, codigo string) (*model.OrdenReparacion, error) {
	for _, o := range r.ordenes {
		if o.CodigoSeguimiento == codigo {
			return o, nil
		}
	}
	return nil, errNotFound
}

func (r *stubOrdenRepo) ExisteCodigoSeguimiento(_ context.Context, codigo string) (bool, error) {
	for _, o := range r.ordenes {
		if o.CodigoSeguimiento == codigo {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubOrdenRepo) List(_ context.Context, filter dto.OrdenFilter) ([]model.OrdenReparacion, int64, error) {
	var result []model.OrdenReparacion
	for _, o := range r.ordenes {
		if filter.Estado != "" && string(o.Estado) != filter.Estado {
			continue
		}
		if filter.ClienteID != "" && o.ClienteID.String() != filter.ClienteID {
			continue
		}
		if filter.TecnicoID != "" && (o.TecnicoID == nil || o.TecnicoID.String() != filter.TecnicoID) {
			continue
		}
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (r *stubOrdenRepo) ListByNumeroDocumento(_ context.Context, numero string) ([]model.OrdenReparacion, error) {
	var result []model.OrdenReparacion
	for _, o := range r.ordenes {
		if o.Cliente != nil && o.Cliente.NumeroDocumento == numero {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (r *stubOrdenRepo) ListByTecnico(_ context.Context, tecnicoID uuid.UUID) ([]model.OrdenReparacion, error) {
	var result []model.OrdenReparacion
	for _, o := range r.ordenes {
		if o.TecnicoID != nil && *o.TecnicoID == tecnicoID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (r *stubOrdenRepo) ListPendientes(_ context.Context) ([]model.OrdenReparacion, error) {
	var result []model.OrdenReparacion
	for _, o := range r.ordenes {
		if o.Estado != model.EstadoEntregado && o.Estado != model.EstadoCancelado {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (r *stubOrdenRepo) Update(_ context.Context, o *model.OrdenReparacion) error {
	if _, ok := r.ordenes[o.ID]; !ok {
		return errNotFound
	}
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.ordenes, id)
	return nil
}

func (r *stubOrdenRepo) CountDetalles(_ context.Context, ordenID uuid.UUID) (int64, error) {
	return r.detalles[ordenID], nil
}

func (r *stubOrdenRepo) DB() *gorm.DB { return nil }

// ── In-memory RepuestoRepository stub ────────────────────────────────────────

type stubRepuestoRepo struct {
	repuestos map[uuid.UUID]*model.Repuesto
	detalles  map[uuid.UUID]int64
}

func newStubRepuestoRepo() *stubRepuestoRepo {
	return &stubRepuestoRepo{
		repuestos: make(map[uuid.UUID]*model.Repuesto),
		detalles:  make(map[uuid.UUID]int64),
	}
}

func (r *stubRepuestoRepo) Create(_ context.Context, p *model.Repuesto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.repuestos[p.ID] = p
	return nil
}

func (r *stubRepuestoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Repuesto, error) {
	p, ok := r.repuestos[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubRepuestoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Repuesto, error) {
	for _, p := range r.repuestos {
		if p.Codigo == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *stubRepuestoRepo) List(_ context.Context) ([]model.Repuesto, error) {
	result := make([]model.Repuesto, 0, len(r.repuestos))
	for _, p := range r.repuestos {
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubRepuestoRepo) ListActivos(_ context.Context) ([]model.Repuesto, error) {
	var result []model.Repuesto
	for _, p := range r.repuestos {
		if p.Activo && p.Stock > 0 {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubRepuestoRepo) ListStockBajo(_ context.Context) ([]model.Repuesto, error) {
	var result []model.Repuesto
	for _, p := range r.repuestos {
		if p.Stock <= p.StockMinimo {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubRepuestoRepo) Buscar(_ context.Context, filter dto.RepuestoBusquedaFilter) ([]model.Repuesto, error) {
	var result []model.Repuesto
	for _, p := range r.repuestos {
		if !p.Activo {
			continue
		}
		if filter.Marca != "" && p.Marca != filter.Marca {
			continue
		}
		if filter.Modelo != "" && p.Modelo != filter.Modelo {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubRepuestoRepo) Update(_ context.Context, p *model.Repuesto) error {
	if _, ok := r.repuestos[p.ID]; !ok {
		return errNotFound
	}
	r.repuestos[p.ID] = p
	return nil
}

func (r *stubRepuestoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.repuestos[id]
	if !ok {
		return errNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubRepuestoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.repuestos, id)
	return nil
}

func (r *stubRepuestoRepo) CountDetalles(_ context.Context, repuestoID uuid.UUID) (int64, error) {
	return r.detalles[repuestoID], nil
}

func (r *stubRepuestoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int, bool, error) {
	p, ok := r.repuestos[id]
	if !ok {
		return 0, false, errNotFound
	}
	if p.Stock < cantidad {
		return 0, false, nil
	}
	p.Stock -= cantidad
	return p.Stock, true, nil
}

func (r *stubRepuestoRepo) AgregarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int, error) {
	p, ok := r.repuestos[id]
	if !ok {
		return 0, errNotFound
	}
	p.Stock += cantidad
	return p.Stock, nil
}

func (r *stubRepuestoRepo) DB() *gorm.DB { return nil }

// ── In-memory DetalleRepository stub ─────────────────────────────────────────

type stubDetalleRepo struct {
	detalles map[uuid.UUID]*model.DetalleOrdenRepuesto
}

func newStubDetalleRepo() *stubDetalleRepo {
	return &stubDetalleRepo{detalles: make(map[uuid.UUID]*model.DetalleOrdenRepuesto)}
}

func (r *stubDetalleRepo) CreateTx(_ *gorm.DB, d *model.DetalleOrdenRepuesto) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.detalles[d.ID] = d
	return nil
}

func (r *stubDetalleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DetalleOrdenRepuesto, error) {
	d, ok := r.detalles[id]
	if !ok {
		return nil, errNotFound
	}
	return d, nil
}

func (r *stubDetalleRepo) ListByOrden(_ context.Context, ordenID uuid.UUID) ([]model.DetalleOrdenRepuesto, error) {
	var result []model.DetalleOrdenRepuesto
	for _, d := range r.detalles {
		if d.OrdenReparacionID == ordenID {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (r *stubDetalleRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.detalles, id)
	return nil
}

// ── In-memory MovimientoStockRepository stub ─────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []*model.MovimientoStock
}

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	return r.Create(context.Background(), m)
}

func (r *stubMovimientoRepo) List(_ context.Context, filter repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	var result []model.MovimientoStock
	for _, m := range r.movimientos {
		if filter.RepuestoID != nil && m.RepuestoID != *filter.RepuestoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		result = append(result, *m)
	}
	return result, int64(len(result)), nil
}

// ── In-memory ClienteRepository stub ─────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
	ordenes  map[uuid.UUID]int64
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{
		clientes: make(map[uuid.UUID]*model.Cliente),
		ordenes:  make(map[uuid.UUID]int64),
	}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByNumeroDocumento(_ context.Context, numero string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.NumeroDocumento == numero {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	result := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		result = append(result, *c)
	}
	return result, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) CountOrdenes(_ context.Context, clienteID uuid.UUID) (int64, error) {
	return r.ordenes[clienteID], nil
}

// ── In-memory EquipoRepository stub ──────────────────────────────────────────

type stubEquipoRepo struct {
	equipos map[uuid.UUID]*model.Equipo
	ordenes map[uuid.UUID]int64
}

func newStubEquipoRepo() *stubEquipoRepo {
	return &stubEquipoRepo{
		equipos: make(map[uuid.UUID]*model.Equipo),
		ordenes: make(map[uuid.UUID]int64),
	}
}

func (r *stubEquipoRepo) Create(_ context.Context, e *model.Equipo) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.equipos[e.ID] = e
	return nil
}

func (r *stubEquipoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Equipo, error) {
	e, ok := r.equipos[id]
	if !ok {
		return nil, errNotFound
	}
	return e, nil
}

func (r *stubEquipoRepo) List(_ context.Context, clienteID *uuid.UUID) ([]model.Equipo, error) {
	var result []model.Equipo
	for _, e := range r.equipos {
		if clienteID != nil && e.ClienteID != *clienteID {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (r *stubEquipoRepo) Update(_ context.Context, e *model.Equipo) error {
	r.equipos[e.ID] = e
	return nil
}

func (r *stubEquipoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.equipos, id)
	return nil
}

func (r *stubEquipoRepo) CountOrdenes(_ context.Context, equipoID uuid.UUID) (int64, error) {
	return r.ordenes[equipoID], nil
}

// ── In-memory TecnicoRepository stub ─────────────────────────────────────────

type stubTecnicoRepo struct {
	tecnicos map[uuid.UUID]*model.Tecnico
}

func newStubTecnicoRepo() *stubTecnicoRepo {
	return &stubTecnicoRepo{tecnicos: make(map[uuid.UUID]*model.Tecnico)}
}

func (r *stubTecnicoRepo) Create(_ context.Context, t *model.Tecnico) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tecnicos[t.ID] = t
	return nil
}

func (r *stubTecnicoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Tecnico, error) {
	t, ok := r.tecnicos[id]
	if !ok {
		return nil, errNotFound
	}
	return t, nil
}

func (r *stubTecnicoRepo) List(_ context.Context, soloActivos bool) ([]model.Tecnico, error) {
	var result []model.Tecnico
	for _, t := range r.tecnicos {
		if soloActivos && !t.Activo {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (r *stubTecnicoRepo) Update(_ context.Context, t *model.Tecnico) error {
	r.tecnicos[t.ID] = t
	return nil
}

func (r *stubTecnicoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	t, ok := r.tecnicos[id]
	if !ok {
		return errNotFound
	}
	t.Activo = false
	return nil
}

func (r *stubTecnicoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	t, ok := r.tecnicos[id]
	if !ok {
		return errNotFound
	}
	t.Activo = true
	return nil
}

// ── Recording ConsultaCache stub ─────────────────────────────────────────────

type stubCache struct {
	entries       map[string]*dto.ConsultaEstadoResponse
	invalidations []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*dto.ConsultaEstadoResponse)}
}

func (c *stubCache) Obtener(_ context.Context, codigo string) (*dto.ConsultaEstadoResponse, bool) {
	resp, ok := c.entries[codigo]
	return resp, ok
}

func (c *stubCache) Guardar(_ context.Context, codigo string, resp *dto.ConsultaEstadoResponse) {
	c.entries[codigo] = resp
}

func (c *stubCache) Invalidar(_ context.Context, codigo string) {
	delete(c.entries, codigo)
	c.invalidations = append(c.invalidations, codigo)
}
