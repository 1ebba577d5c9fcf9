package session

import (
	"net/http"

	"kinetica/internal/api"
	"kinetica/internal/auth"
	"kinetica/internal/datetime"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List sessions
// @Description  Sessions ordered by scheduled_at. Trainers see their own only.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Calendar day (YYYY-MM-DD)"
// @Success      200 {array}  session.SessionWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /sessions [get]
func (h *Handler) ListSessions(c *gin.Context) {
	var day *datetime.Date
	if raw := c.Query("date"); raw != "" {
		d, err := datetime.ParseDate(raw)
		if err != nil {
			api.BadRequest(c, err.Error())
			return
		}
		day = &d
	}

	id, _ := auth.GetIdentity(c)
	sessions, err := h.service.List(c.Request.Context(), id, day)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// @Summary      Schedule a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body session.CreateSessionRequest true "Session"
// @Success      201 {object} session.SessionWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if !api.BindJSON(c, &req) {
		return
	}

	id, _ := auth.GetIdentity(c)
	sess, err := h.service.Create(c.Request.Context(), id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, sess)
}

// @Summary      Get a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} session.SessionWithDetails
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /sessions/{id} [get]
func (h *Handler) GetSession(c *gin.Context) {
	sessionID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	id, _ := auth.GetIdentity(c)
	sess, err := h.service.Get(c.Request.Context(), id, sessionID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sess)
}

// @Summary      Update a session
// @Description  Moving into completed debits the linked package; moving out of completed credits it back.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                          true "Session ID"
// @Param        request body session.UpdateSessionRequest true "Fields"
// @Success      200 {object} session.SessionWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /sessions/{id} [put]
func (h *Handler) UpdateSession(c *gin.Context) {
	sessionID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateSessionRequest
	if !api.BindJSON(c, &req) {
		return
	}

	id, _ := auth.GetIdentity(c)
	sess, err := h.service.Update(c.Request.Context(), id, sessionID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sess)
}

// @Summary      Delete a session
// @Tags         sessions
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      204
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /sessions/{id} [delete]
func (h *Handler) DeleteSession(c *gin.Context) {
	sessionID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	id, _ := auth.GetIdentity(c)
	if err := h.service.Delete(c.Request.Context(), id, sessionID); err != nil {
		api.Fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary      List a member's sessions
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Success      200 {array}  session.SessionWithDetails
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id}/sessions [get]
func (h *Handler) ListMemberSessions(c *gin.Context) {
	memberID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	id, _ := auth.GetIdentity(c)
	sessions, err := h.service.ListByMember(c.Request.Context(), id, memberID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}
