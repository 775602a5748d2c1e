package handler

import (
	"net/http"

	"github.com/TheGeorge88/app-celulares/internal/apierror"
	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/service"

	"github.com/gin-gonic/gin"
)

// ConsultaHandler is the public (unauthenticated) surface. Every route behind
// it is rate-limited in the router; lookups never distinguish "wrong code"
// from "wrong document" beyond what the service already reveals.
type ConsultaHandler struct{ svc service.ConsultaService }

func NewConsultaHandler(svc service.ConsultaService) *ConsultaHandler {
	return &ConsultaHandler{svc: svc}
}

// ConsultarEstado godoc
// @Summary Consulta pública del estado de una orden
// @Tags consulta
// @Produce json
// @Param codigo path string true "Código de seguimiento"
// @Success 200 {object} dto.ConsultaEstadoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/consulta/{codigo} [get]
func (h *ConsultaHandler) ConsultarEstado(c *gin.Context) {
	codigo := c.Param("codigo")
	resp, err := h.svc.Consultar(c.Request.Context(), codigo)
	if err != nil {
		if apierror.KindOf(err) == apierror.KindNotFound {
			// Public surface: a miss is a valid response, not an error leak
			c.JSON(http.StatusNotFound, dto.ConsultaEstadoResponse{Encontrado: false})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Autorizar godoc
// @Summary Autorizar o rechazar una reparación diagnosticada
// @Tags consulta
// @Accept json
// @Produce json
// @Param body body dto.AutorizarRequest true "Decisión del cliente"
// @Success 200 {object} dto.AutorizarResponse
// @Failure 403 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/consulta/autorizar [post]
func (h *ConsultaHandler) Autorizar(c *gin.Context) {
	var req dto.AutorizarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Autorizar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial lists a client's orders by document number.
func (h *ConsultaHandler) Historial(c *gin.Context) {
	numero := c.Query("numero_documento")
	resp, err := h.svc.HistorialCliente(c.Request.Context(), numero)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
