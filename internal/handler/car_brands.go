package handler

import (
	"net/http"

	"seratauto/internal/apierror"
	"seratauto/internal/dto"
	"seratauto/internal/service"

	"github.com/gin-gonic/gin"
)

type CarBrandsHandler struct{ svc service.CarBrandService }

func NewCarBrandsHandler(svc service.CarBrandService) *CarBrandsHandler {
	return &CarBrandsHandler{svc: svc}
}

func (h *CarBrandsHandler) Create(c *gin.Context) {
	var req dto.CreateCarBrandRequest
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

func (h *CarBrandsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Marque introuvable"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarBrandsHandler) List(c *gin.Context) {
	var filter dto.CarBrandFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du chargement des marques"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarBrandsHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateCarBrandRequest
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

func (h *CarBrandsHandler) Delete(c *gin.Context) {
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

func (h *CarBrandsHandler) Restore(c *gin.Context) {
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
