package model

// Estado is the workflow state of an orden de reparación.
// The six states between RECIBIDO and ENTREGADO form the "happy path" whose
// ordering drives the public timeline; CANCELADO is terminal and reachable
// from any pre-delivery state.
type Estado string

const (
	EstadoRecibido              Estado = "RECIBIDO"
	EstadoEnDiagnostico         Estado = "EN_DIAGNOSTICO"
	EstadoPendienteAutorizacion Estado = "PENDIENTE_AUTORIZACION"
	EstadoAutorizado            Estado = "AUTORIZADO"
	EstadoEnReparacion          Estado = "EN_REPARACION"
	EstadoReparado              Estado = "REPARADO"
	EstadoEntregado             Estado = "ENTREGADO"
	EstadoCancelado             Estado = "CANCELADO"
)

// EstadosHappyPath lists the post-reception states in display order.
// RECIBIDO is implicit (always first and always completed in the timeline).
var EstadosHappyPath = []Estado{
	EstadoEnDiagnostico,
	EstadoPendienteAutorizacion,
	EstadoAutorizado,
	EstadoEnReparacion,
	EstadoReparado,
	EstadoEntregado,
}

// EsValido reports whether s is one of the eight known states.
func (s Estado) EsValido() bool {
	switch s {
	case EstadoRecibido, EstadoEnDiagnostico, EstadoPendienteAutorizacion,
		EstadoAutorizado, EstadoEnReparacion, EstadoReparado,
		EstadoEntregado, EstadoCancelado:
		return true
	}
	return false
}

// PosicionHappyPath returns the index of s within EstadosHappyPath,
// or -1 when s is RECIBIDO or CANCELADO.
func (s Estado) PosicionHappyPath() int {
	for i, e := range EstadosHappyPath {
		if e == s {
			return i
		}
	}
	return -1
}

// Descripcion is the client-facing label shown in the public status view.
func (s Estado) Descripcion() string {
	switch s {
	case EstadoRecibido:
		return "Recibido - Su equipo ha sido recibido en nuestro taller"
	case EstadoEnDiagnostico:
		return "En diagnóstico - Nuestro técnico está evaluando su equipo"
	case EstadoPendienteAutorizacion:
		return "Pendiente de autorización - Se requiere su aprobación para continuar"
	case EstadoAutorizado:
		return "Autorizado - La reparación ha sido aprobada"
	case EstadoEnReparacion:
		return "En reparación - Su equipo está siendo reparado"
	case EstadoReparado:
		return "Reparado - Su equipo está listo para ser recogido"
	case EstadoEntregado:
		return "Entregado - Su equipo ha sido entregado"
	case EstadoCancelado:
		return "Cancelado - La orden ha sido cancelada"
	}
	return string(s)
}

// Color is the fixed badge color used by the public status view.
func (s Estado) Color() string {
	switch s {
	case EstadoRecibido:
		return "blue"
	case EstadoEnDiagnostico:
		return "purple"
	case EstadoPendienteAutorizacion:
		return "orange"
	case EstadoAutorizado:
		return "teal"
	case EstadoEnReparacion:
		return "yellow"
	case EstadoReparado:
		return "green"
	case EstadoEntregado:
		return "gray"
	case EstadoCancelado:
		return "red"
	}
	return "gray"
}
