package catalog

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

// @Summary      List packages
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  catalog.Package
// @Failure      401 {object} api.ErrorResponse
// @Router       /packages [get]
func (h *Handler) ListPackages(c *gin.Context) {
	id, _ := auth.GetIdentity(c)

	packages, err := h.service.List(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, packages)
}

// @Summary      Get a package
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Package ID"
// @Success      200 {object} catalog.Package
// @Failure      404 {object} api.ErrorResponse
// @Router       /packages/{id} [get]
func (h *Handler) GetPackage(c *gin.Context) {
	packageID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	id, _ := auth.GetIdentity(c)
	p, err := h.service.Get(c.Request.Context(), id, packageID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// @Summary      Create a package
// @Description  Owner only. validity_days defaults to 90.
// @Tags         packages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalog.CreatePackageRequest true "Package"
// @Success      201 {object} catalog.Package
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /packages [post]
func (h *Handler) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if !api.BindJSON(c, &req) {
		return
	}

	id, _ := auth.GetIdentity(c)
	p, err := h.service.Create(c.Request.Context(), id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// @Summary      Update a package
// @Description  Owner only. Existing member packages keep their snapshot.
// @Tags         packages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                          true "Package ID"
// @Param        request body catalog.UpdatePackageRequest true "Fields"
// @Success      200 {object} catalog.Package
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /packages/{id} [put]
func (h *Handler) UpdatePackage(c *gin.Context) {
	packageID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdatePackageRequest
	if !api.BindJSON(c, &req) {
		return
	}

	id, _ := auth.GetIdentity(c)
	p, err := h.service.Update(c.Request.Context(), id, packageID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// @Summary      Deactivate a package
// @Tags         packages
// @Security     BearerAuth
// @Param        id path int true "Package ID"
// @Success      204
// @Failure      404 {object} api.ErrorResponse
// @Router       /packages/{id} [delete]
func (h *Handler) DeletePackage(c *gin.Context) {
	packageID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	id, _ := auth.GetIdentity(c)
	if err := h.service.Deactivate(c.Request.Context(), id, packageID); err != nil {
		api.Fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
