package tracking

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
	api.POST("/symptom-logs", h.Log)
	api.GET("/symptom-logs", h.ListOwn)
	rd.GET("/patients/:id/logs", h.ListForPatient)
}

func (h *Handler) Log(c echo.Context) error {
	id, err := auth.PrincipalFromContext(c.Request().Context()).UUID()
	if err != nil {
		return apperr.ToHTTP(err)
	}
	var l SymptomLog
	if err := c.Bind(&l); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Log(c.Request().Context(), id, &l); err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *Handler) ListOwn(c echo.Context) error {
	id, err := auth.PrincipalFromContext(c.Request().Context()).UUID()
	if err != nil {
		return apperr.ToHTTP(err)
	}
	logs, err := h.svc.ListOwn(c.Request().Context(), id)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *Handler) ListForPatient(c echo.Context) error {
	rdID, err := auth.PrincipalFromContext(c.Request().Context()).UUID()
	if err != nil {
		return apperr.ToHTTP(err)
	}
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	logs, err := h.svc.ListForPatient(c.Request().Context(), rdID, patientID)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, logs)
}
