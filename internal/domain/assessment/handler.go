package assessment

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/blendwell/blendwell/internal/platform/apperr"
	"github.com/blendwell/blendwell/internal/platform/auth"
	"github.com/blendwell/blendwell/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts patient intake endpoints on the API group and review
// endpoints on the RD group.
func (h *Handler) RegisterRoutes(api, rd *echo.Group) {
	api.POST("/assessment", h.Submit)
	api.GET("/assessment", h.GetOwn)
	rd.GET("/assessments", h.ListPending)
	rd.GET("/patients/:id/assessment", h.GetForPatient)
	rd.POST("/patients/:id/assessment/review", h.Review)
}

func callerID(c echo.Context) (uuid.UUID, error) {
	return auth.PrincipalFromContext(c.Request().Context()).UUID()
}

func patientParam(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

func (h *Handler) Submit(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	var a Assessment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Submit(c.Request().Context(), id, &a); err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetOwn(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	a, err := h.svc.GetOwn(c.Request().Context(), id)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) GetForPatient(c echo.Context) error {
	rdID, err := callerID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	patientID, err := patientParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetForPatient(c.Request().Context(), rdID, patientID)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

type reviewRequest struct {
	Status string `json:"status"`
}

func (h *Handler) Review(c echo.Context) error {
	rdID, err := callerID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	patientID, err := patientParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Review(c.Request().Context(), rdID, patientID, req.Status)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListPending(c echo.Context) error {
	rdID, err := callerID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPendingForRD(c.Request().Context(), rdID, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
