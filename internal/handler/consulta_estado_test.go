package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TheGeorge88/app-celulares/internal/apierror"
	"github.com/TheGeorge88/app-celulares/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConsultaService lets handler tests script the service responses.
type fakeConsultaService struct {
	consultar func(codigo string) (*dto.ConsultaEstadoResponse, error)
	autorizar func(req dto.AutorizarRequest) (*dto.AutorizarResponse, error)
}

func (f *fakeConsultaService) Consultar(_ context.Context, codigo string) (*dto.ConsultaEstadoResponse, error) {
	return f.consultar(codigo)
}

func (f *fakeConsultaService) Autorizar(_ context.Context, req dto.AutorizarRequest) (*dto.AutorizarResponse, error) {
	return f.autorizar(req)
}

func (f *fakeConsultaService) HistorialCliente(_ context.Context, _ string) (*dto.HistorialClienteResponse, error) {
	return &dto.HistorialClienteResponse{}, nil
}

func consultaRouter(svc *fakeConsultaService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewConsultaHandler(svc)
	r := gin.New()
	r.GET("/v1/consulta/:codigo", h.ConsultarEstado)
	r.POST("/v1/consulta/autorizar", h.Autorizar)
	return r
}

func TestConsultarEstado(t *testing.T) {
	svc := &fakeConsultaService{
		consultar: func(codigo string) (*dto.ConsultaEstadoResponse, error) {
			assert.Equal(t, "REP-20260315-QWE789", codigo)
			return &dto.ConsultaEstadoResponse{
				Encontrado: true,
				Orden:      &dto.ConsultaOrdenView{CodigoSeguimiento: codigo, Estado: "EN_REPARACION"},
			}, nil
		},
	}
	r := consultaRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/consulta/REP-20260315-QWE789", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ConsultaEstadoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Encontrado)
	require.NotNil(t, resp.Orden)
	assert.Equal(t, "EN_REPARACION", resp.Orden.Estado)
}

func TestConsultarEstado_NoEncontradoDevuelve404ConCuerpo(t *testing.T) {
	svc := &fakeConsultaService{
		consultar: func(codigo string) (*dto.ConsultaEstadoResponse, error) {
			return nil, apierror.NotFound("orden de reparación", codigo)
		},
	}
	r := consultaRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/consulta/REP-20260101-XXXXXX", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp dto.ConsultaEstadoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Encontrado)
	assert.Nil(t, resp.Orden)
}

func TestAutorizar(t *testing.T) {
	svc := &fakeConsultaService{
		autorizar: func(req dto.AutorizarRequest) (*dto.AutorizarResponse, error) {
			require.NotNil(t, req.Autorizar)
			assert.True(t, *req.Autorizar)
			return &dto.AutorizarResponse{Success: true, Message: "ok"}, nil
		},
	}
	r := consultaRouter(svc)

	body := `{"codigo_seguimiento":"REP-20260315-QWE789","numero_documento":"30123456","autorizar":true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/consulta/autorizar", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestAutorizar_SinDecisionEs422(t *testing.T) {
	svc := &fakeConsultaService{
		autorizar: func(req dto.AutorizarRequest) (*dto.AutorizarResponse, error) {
			t.Fatal("el servicio no debería ser invocado")
			return nil, nil
		},
	}
	r := consultaRouter(svc)

	body := `{"codigo_seguimiento":"REP-20260315-QWE789","numero_documento":"30123456"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/consulta/autorizar", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAutorizar_DocumentoIncorrectoEs403(t *testing.T) {
	svc := &fakeConsultaService{
		autorizar: func(req dto.AutorizarRequest) (*dto.AutorizarResponse, error) {
			return nil, apierror.Forbidden("el documento no coincide con el titular de la orden")
		},
	}
	r := consultaRouter(svc)

	body := `{"codigo_seguimiento":"REP-20260315-QWE789","numero_documento":"99999999","autorizar":true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/consulta/autorizar", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}
