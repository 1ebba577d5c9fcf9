package ledger

import (
	"net/http"

	"kinetica/internal/api"
	"kinetica/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List payments
// @Description  Member packages, newest first. Trainers see their members' only.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  ledger.MemberPackageWithDetails
// @Failure      401 {object} api.ErrorResponse
// @Router       /payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	id, _ := auth.GetIdentity(c)

	payments, err := h.service.List(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// @Summary      Sell a package to a member
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ledger.PurchaseRequest true "Purchase"
// @Success      201 {object} ledger.MemberPackageWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /payments [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	var req PurchaseRequest
	if !api.BindJSON(c, &req) {
		return
	}

	id, _ := auth.GetIdentity(c)
	mp, err := h.service.Purchase(c.Request.Context(), id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, mp)
}

// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member package ID"
// @Success      200 {object} ledger.MemberPackageWithDetails
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /payments/{id} [get]
func (h *Handler) GetPayment(c *gin.Context) {
	mpID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	id, _ := auth.GetIdentity(c)
	mp, err := h.service.Get(c.Request.Context(), id, mpID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, mp)
}

// @Summary      Update a payment
// @Description  Edits payment method, status and notes. sessions_remaining is a manual counter override bounded by sessions_total.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                         true "Member package ID"
// @Param        request body ledger.UpdatePaymentRequest true "Fields"
// @Success      200 {object} ledger.MemberPackageWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /payments/{id} [put]
func (h *Handler) UpdatePayment(c *gin.Context) {
	mpID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if !api.BindJSON(c, &req) {
		return
	}

	id, _ := auth.GetIdentity(c)
	mp, err := h.service.UpdatePayment(c.Request.Context(), id, mpID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, mp)
}

// @Summary      Override sessions remaining
// @Description  Trainers may only correct packages of their assigned members. The value must lie between 0 and sessions_total.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                    true "Member package ID"
// @Param        request body ledger.OverrideRequest true "Counter"
// @Success      200 {object} ledger.MemberPackageWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /payments/{id}/sessions-remaining [put]
func (h *Handler) OverrideSessionsRemaining(c *gin.Context) {
	mpID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	var req OverrideRequest
	if !api.BindJSON(c, &req) {
		return
	}

	id, _ := auth.GetIdentity(c)
	mp, err := h.service.OverrideRemaining(c.Request.Context(), id, mpID, *req.SessionsRemaining)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, mp)
}

// @Summary      List a member's packages
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Success      200 {array}  ledger.MemberPackageWithDetails
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id}/packages [get]
func (h *Handler) ListMemberPackages(c *gin.Context) {
	memberID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	id, _ := auth.GetIdentity(c)
	packages, err := h.service.ListByMember(c.Request.Context(), id, memberID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, packages)
}
