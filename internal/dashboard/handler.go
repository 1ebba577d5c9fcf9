package dashboard

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

// @Summary      Dashboard counters
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dashboard.Stats
// @Failure      401 {object} api.ErrorResponse
// @Router       /dashboard [get]
func (h *Handler) GetStats(c *gin.Context) {
	id, _ := auth.GetIdentity(c)

	stats, err := h.service.Stats(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary      Today's sessions
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  dashboard.TodaySession
// @Router       /dashboard/today [get]
func (h *Handler) GetToday(c *gin.Context) {
	id, _ := auth.GetIdentity(c)

	sessions, err := h.service.TodaySessions(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// @Summary      Packages expiring this week
// @Description  Packages with sessions left that expire within 7 days, soonest first.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  dashboard.ExpiringPackage
// @Router       /dashboard/expiring [get]
func (h *Handler) GetExpiring(c *gin.Context) {
	id, _ := auth.GetIdentity(c)

	packages, err := h.service.ExpiringPackages(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, packages)
}
