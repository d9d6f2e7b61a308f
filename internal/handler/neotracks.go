package handler

import (
	"errors"
	"net/http"

	"seratauto/internal/apierror"
	"seratauto/internal/dto"
	"seratauto/internal/service"

	"github.com/gin-gonic/gin"
)

type NeotracksHandler struct{ svc service.NeotrackService }

func NewNeotracksHandler(svc service.NeotrackService) *NeotracksHandler {
	return &NeotracksHandler{svc: svc}
}

// Create godoc
// @Summary Enregistrer un traceur GPS
// @Tags neotracks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateNeotrackRequest true "Données du traceur"
// @Success 201 {object} dto.NeotrackResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/neotracks [post]
func (h *NeotracksHandler) Create(c *gin.Context) {
	var req dto.CreateNeotrackRequest
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

func (h *NeotracksHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Traceur introuvable"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NeotracksHandler) List(c *gin.Context) {
	var filter dto.NeotrackFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du chargement des traceurs"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NeotracksHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateNeotrackRequest
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

// Activate godoc
// @Summary      Activer un traceur sur la plateforme Neotrack
// @Description  Appelle la plateforme Neotrack derrière un circuit breaker; en cas d'échec le traceur passe en statut "erreur".
// @Tags         neotracks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID du traceur"
// @Success      200 {object} dto.NeotrackResponse
// @Failure      400 {object} apierror.APIError
// @Failure      503 {object} apierror.APIError
// @Router       /v1/neotracks/{id}/activate [post]
func (h *NeotracksHandler) Activate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Activate(c.Request.Context(), id)
	if err != nil {
		c.JSON(platformErrorStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NeotracksHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Deactivate(c.Request.Context(), id)
	if err != nil {
		c.JSON(platformErrorStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Position relays the live position from the tracking platform.
func (h *NeotracksHandler) Position(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Position(c.Request.Context(), id)
	if err != nil {
		c.JSON(platformErrorStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NeotracksHandler) Delete(c *gin.Context) {
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

func (h *NeotracksHandler) Restore(c *gin.Context) {
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

// platformErrorStatus maps circuit-open failures to 503 so the dashboard can
// distinguish "platform down" from a bad request.
func platformErrorStatus(err error) int {
	if errors.Is(err, service.ErrPlatformUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}
