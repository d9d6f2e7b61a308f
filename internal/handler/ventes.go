package handler

import (
	"errors"
	"net/http"

	"seratauto/internal/apierror"
	"seratauto/internal/dto"
	"seratauto/internal/service"

	"github.com/gin-gonic/gin"
)

type VentesHandler struct{ svc service.VenteService }

func NewVentesHandler(svc service.VenteService) *VentesHandler {
	return &VentesHandler{svc: svc}
}

// venteErrorStatus distinguishes business-rule rejections (422) from
// malformed references (400).
func venteErrorStatus(err error) int {
	var re *service.RuleError
	if errors.As(err, &re) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// Create godoc
// @Summary      Enregistrer une vente
// @Description  Crée une vente ACID: recalcule les totaux côté serveur, décrémente le stock, valide l'échéancier pour les paiements par facilité et déclenche la facturation PDF asynchrone.
// @Tags         ventes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateVenteRequest true "Détail de la vente"
// @Success      201  {object} dto.VenteResponse
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ventes [post]
func (h *VentesHandler) Create(c *gin.Context) {
	var req dto.CreateVenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(venteErrorStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VentesHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Vente introuvable"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      Lister les ventes
// @Tags         ventes
// @Produce      json
// @Security     BearerAuth
// @Param        customer    query string false "UUID du client"
// @Param        paymentType query string false "comptant | facilite"
// @Param        from        query string false "Date début YYYY-MM-DD"
// @Param        to          query string false "Date fin YYYY-MM-DD"
// @Param        page        query int    false "Page (défaut 1)"
// @Param        limit       query int    false "Résultats par page (défaut 10)"
// @Success      200 {object} dto.VenteListResponse
// @Router       /v1/ventes [get]
func (h *VentesHandler) List(c *gin.Context) {
	var filter dto.VenteFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du chargement des ventes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Modifier une vente
// @Description  Remplace les lignes de la vente et recalcule totaux, stock et échéancier. Refusé si la vente par facilité est entièrement payée.
// @Tags         ventes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la vente"
// @Param        body body dto.UpdateVenteRequest true "Champs à modifier"
// @Success      200  {object} dto.VenteResponse
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ventes/{id} [put]
func (h *VentesHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateVenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(venteErrorStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Annuler une vente
// @Description  Annule une vente: restaure le stock avec des mouvements de type "annulation" et conserve la vente en suppression douce.
// @Tags         ventes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la vente"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/ventes/{id} [delete]
func (h *VentesHandler) Delete(c *gin.Context) {
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

func (h *VentesHandler) Restore(c *gin.Context) {
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
