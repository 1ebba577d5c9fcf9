package member

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

// @Summary      List members
// @Description  Active members of the gym; trainers see only their own.
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  member.MemberResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	id, _ := auth.GetIdentity(c)

	members, err := h.service.List(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// @Summary      Create a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.CreateMemberRequest true "Member"
// @Success      201 {object} member.MemberResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /members [post]
func (h *Handler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if !api.BindJSON(c, &req) {
		return
	}

	id, _ := auth.GetIdentity(c)
	m, err := h.service.Create(c.Request.Context(), id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// @Summary      Get a member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Success      200 {object} member.MemberResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id} [get]
func (h *Handler) GetMember(c *gin.Context) {
	memberID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	id, _ := auth.GetIdentity(c)
	m, err := h.service.Get(c.Request.Context(), id, memberID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Update a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                        true "Member ID"
// @Param        request body member.UpdateMemberRequest true "Fields"
// @Success      200 {object} member.MemberResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id} [put]
func (h *Handler) UpdateMember(c *gin.Context) {
	memberID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if !api.BindJSON(c, &req) {
		return
	}

	id, _ := auth.GetIdentity(c)
	m, err := h.service.Update(c.Request.Context(), id, memberID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Deactivate a member
// @Tags         members
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Success      204
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id} [delete]
func (h *Handler) DeleteMember(c *gin.Context) {
	memberID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	id, _ := auth.GetIdentity(c)
	if err := h.service.Deactivate(c.Request.Context(), id, memberID); err != nil {
		api.Fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
