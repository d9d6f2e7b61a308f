package handler

import (
	"net/http"

	"seratauto/internal/apierror"
	"seratauto/internal/dto"
	"seratauto/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CarsHandler struct{ svc service.CarService }

func NewCarsHandler(svc service.CarService) *CarsHandler { return &CarsHandler{svc: svc} }

// Create godoc
// @Summary Enregistrer un véhicule
// @Tags vehicules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateCarRequest true "Données du véhicule"
// @Success 201 {object} dto.CarResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cars [post]
func (h *CarsHandler) Create(c *gin.Context) {
	var req dto.CreateCarRequest
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

func (h *CarsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Véhicule introuvable"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarsHandler) List(c *gin.Context) {
	var filter dto.CarFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du chargement des véhicules"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByCustomer returns the vehicles registered to one customer.
func (h *CarsHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du chargement des véhicules"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarsHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateCarRequest
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

// Associate godoc
// @Summary Associer un véhicule à un client
// @Tags vehicules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID du véhicule"
// @Param body body dto.AssociateCarRequest true "Client cible"
// @Success 200 {object} dto.CarResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cars/{id}/associate [patch]
func (h *CarsHandler) Associate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.AssociateCarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID client invalide"))
		return
	}
	resp, err := h.svc.Associate(c.Request.Context(), id, customerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarsHandler) Disassociate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Disassociate(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarsHandler) Delete(c *gin.Context) {
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

func (h *CarsHandler) Restore(c *gin.Context) {
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
