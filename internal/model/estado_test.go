package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstadoEsValido(t *testing.T) {
	for _, e := range []Estado{
		EstadoRecibido, EstadoEnDiagnostico, EstadoPendienteAutorizacion,
		EstadoAutorizado, EstadoEnReparacion, EstadoReparado,
		EstadoEntregado, EstadoCancelado,
	} {
		assert.True(t, e.EsValido(), "estado %s", e)
	}
	assert.False(t, Estado("PERDIDO").EsValido())
	assert.False(t, Estado("").EsValido())
	assert.False(t, Estado("recibido").EsValido(), "los estados son case-sensitive")
}

func TestPosicionHappyPath(t *testing.T) {
	assert.Equal(t, -1, EstadoRecibido.PosicionHappyPath())
	assert.Equal(t, -1, EstadoCancelado.PosicionHappyPath())
	assert.Equal(t, 0, EstadoEnDiagnostico.PosicionHappyPath())
	assert.Equal(t, 5, EstadoEntregado.PosicionHappyPath())
}

func TestDescripcionYColorCubrenTodosLosEstados(t *testing.T) {
	todos := append([]Estado{EstadoRecibido, EstadoCancelado}, EstadosHappyPath...)
	for _, e := range todos {
		assert.NotEqual(t, string(e), e.Descripcion(), "estado %s sin descripción", e)
		assert.NotEmpty(t, e.Color())
	}
}
