package nutrition

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/blendwell/blendwell/internal/platform/apperr"
	"github.com/blendwell/blendwell/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api, rd *echo.Group) {
	api.GET("/nutrient-targets", h.GetOwn)
	rd.GET("/patients/:id/targets", h.GetForPatient)
	rd.PUT("/patients/:id/targets", h.SetTargets)
}

func (h *Handler) GetOwn(c echo.Context) error {
	id, err := auth.PrincipalFromContext(c.Request().Context()).UUID()
	if err != nil {
		return apperr.ToHTTP(err)
	}
	nt, err := h.svc.CurrentForOwner(c.Request().Context(), id)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, nt)
}

func (h *Handler) GetForPatient(c echo.Context) error {
	rdID, err := auth.PrincipalFromContext(c.Request().Context()).UUID()
	if err != nil {
		return apperr.ToHTTP(err)
	}
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	nt, err := h.svc.CurrentForPatient(c.Request().Context(), rdID, patientID)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, nt)
}

func (h *Handler) SetTargets(c echo.Context) error {
	rdID, err := auth.PrincipalFromContext(c.Request().Context()).UUID()
	if err != nil {
		return apperr.ToHTTP(err)
	}
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var nt NutrientTargets
	if err := c.Bind(&nt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	nt.PatientID = patientID
	saved, err := h.svc.SetTargets(c.Request().Context(), rdID, &nt)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, saved)
}
