package handler

import (
	"net/http"

	"seratauto/internal/apierror"
	"seratauto/internal/dto"
	"seratauto/internal/service"

	"github.com/gin-gonic/gin"
)

type ComptabiliteHandler struct{ svc service.ComptabiliteService }

func NewComptabiliteHandler(svc service.ComptabiliteService) *ComptabiliteHandler {
	return &ComptabiliteHandler{svc: svc}
}

// Summary godoc
// @Summary      Synthèse comptable
// @Description  Agrège le chiffre d'affaires sur une période: total, répartition comptant/facilité, nombre de transactions par statut et montant restant dû.
// @Tags         comptabilite
// @Produce      json
// @Security     BearerAuth
// @Param        from     query string false "Date début YYYY-MM-DD (défaut: début du mois)"
// @Param        to       query string false "Date fin YYYY-MM-DD (défaut: aujourd'hui)"
// @Param        customer query string false "UUID du client"
// @Success      200  {object} dto.ComptabiliteSummaryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/comptabilite/summary [get]
func (h *ComptabiliteHandler) Summary(c *gin.Context) {
	var filter dto.ComptabiliteFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
