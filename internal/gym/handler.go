package gym

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
	return &Handler{
		service: service,
	}
}

// @Summary      Get the caller's gym
// @Tags         gym
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} gym.Gym
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /gym [get]
func (h *Handler) GetGym(c *gin.Context) {
	id, _ := auth.GetIdentity(c)

	gym, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gym)
}

// @Summary      Update the caller's gym
// @Description  Owner-only partial update
// @Tags         gym
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body gym.UpdateGymRequest true "Gym fields"
// @Success      200 {object} gym.Gym
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /gym [put]
func (h *Handler) UpdateGym(c *gin.Context) {
	var req UpdateGymRequest
	if !api.BindJSON(c, &req) {
		return
	}

	id, _ := auth.GetIdentity(c)
	gym, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gym)
}
