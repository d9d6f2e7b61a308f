package handler

import (
	"net/http"

	"seratauto/internal/apierror"
	"seratauto/internal/dto"
	"seratauto/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PrestationsHandler struct{ svc service.PrestationService }

func NewPrestationsHandler(svc service.PrestationService) *PrestationsHandler {
	return &PrestationsHandler{svc: svc}
}

// Create godoc
// @Summary Enregistrer une prestation
// @Tags prestations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreatePrestationRequest true "Données de la prestation"
// @Success 201 {object} dto.PrestationResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/prestations [post]
func (h *PrestationsHandler) Create(c *gin.Context) {
	var req dto.CreatePrestationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PrestationsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Prestation introuvable"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PrestationsHandler) List(c *gin.Context) {
	var filter dto.PrestationFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du chargement des prestations"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByCustomer returns the service history of one customer.
func (h *PrestationsHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du chargement des prestations"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PrestationsHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdatePrestationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PrestationsHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PrestationsHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Restore(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
