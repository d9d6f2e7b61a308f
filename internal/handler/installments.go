package handler

import (
	"net/http"
	"time"

	"seratauto/internal/apierror"
	"seratauto/internal/dto"
	"seratauto/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InstallmentsHandler struct{ svc service.InstallmentService }

func NewInstallmentsHandler(svc service.InstallmentService) *InstallmentsHandler {
	return &InstallmentsHandler{svc: svc}
}

func (h *InstallmentsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Échéance introuvable"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListUpcoming godoc
// @Summary      Échéances à venir
// @Description  Retourne les échéances impayées arrivant à terme dans la fenêtre demandée (dashboard).
// @Tags         echeances
// @Produce      json
// @Security     BearerAuth
// @Param        daysAhead query int false "Fenêtre en jours (défaut 30)"
// @Param        page      query int false "Page (défaut 1)"
// @Param        limit     query int false "Résultats par page (défaut 10)"
// @Success      200 {object} dto.InstallmentListResponse
// @Router       /v1/installments/upcoming [get]
func (h *InstallmentsHandler) ListUpcoming(c *gin.Context) {
	var filter dto.UpcomingInstallmentsFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListUpcoming(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du chargement des échéances"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InstallmentsHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du chargement des échéances"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetStatus godoc
// @Summary      Changer le statut d'une échéance
// @Description  Bascule une échéance entre "pending" et "paid" et resynchronise le statut de paiement de la vente.
// @Tags         echeances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de l'échéance"
// @Param        body body dto.UpdateInstallmentStatusRequest true "Nouveau statut"
// @Success      200  {object} dto.InstallmentResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/installments/{id}/status [patch]
func (h *InstallmentsHandler) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateInstallmentStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkPaid records a payment on an installment. Idempotent.
func (h *InstallmentsHandler) MarkPaid(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.MarkInstallmentPaidRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var paidAt *time.Time
	if req.PaidAt != nil {
		t, err := time.Parse("2006-01-02", *req.PaidAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Date de paiement invalide"))
			return
		}
		paidAt = &t
	}
	resp, err := h.svc.MarkPaid(c.Request.Context(), id, paidAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
