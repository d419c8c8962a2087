package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/repository"
)

// PackageHandler reads the service package catalog.  The catalog routes
// sit behind the response cache; packages change rarely and are read on
// every booking and invoice form load.
type PackageHandler struct {
	Packages *repository.PackageRepo
}

func NewPackageHandler(p *repository.PackageRepo) *PackageHandler {
	return &PackageHandler{Packages: p}
}

// List returns the full catalog ordered by name.
func (h *PackageHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	packages, err := h.Packages.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list packages failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"packages": packages})
}

// Get returns one package.
func (h *PackageHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pkg, err := h.Packages.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pkg)
}
