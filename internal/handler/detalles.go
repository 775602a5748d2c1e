package handler

import (
	"net/http"

	"github.com/TheGeorge88/app-celulares/internal/apierror"
	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DetallesHandler manages the spare parts attached to a repair order.
type DetallesHandler struct{ svc service.InventarioService }

func NewDetallesHandler(svc service.InventarioService) *DetallesHandler {
	return &DetallesHandler{svc: svc}
}

// Agregar godoc
// @Summary Agregar repuesto a una orden (reserva stock)
// @Tags detalles
// @Accept json
// @Produce json
// @Param body body dto.AgregarDetalleRequest true "Detalle"
// @Success 201 {object} dto.DetalleOrdenResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/detalles [post]
func (h *DetallesHandler) Agregar(c *gin.Context) {
	var req dto.AgregarDetalleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarDetalle(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DetallesHandler) ListarPorOrden(c *gin.Context) {
	ordenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarDetalles(c.Request.Context(), ordenID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Quitar removes a line item and returns its stock.
func (h *DetallesHandler) Quitar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.QuitarDetalle(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
