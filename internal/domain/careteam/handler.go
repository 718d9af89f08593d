package careteam

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

// RegisterRoutes mounts the care-team endpoints on the RD API group.
func (h *Handler) RegisterRoutes(rd *echo.Group) {
	rd.POST("/lookup-patient", h.LookupPatient)
	rd.POST("/assign-patient", h.AssignPatient)
	rd.PUT("/assignments/:id/status", h.UpdateAssignmentStatus)
	rd.GET("/patients", h.ListPatients)
	rd.GET("/dashboard", h.Dashboard)
}

func rdID(c echo.Context) (uuid.UUID, error) {
	p := auth.PrincipalFromContext(c.Request().Context())
	return p.UUID()
}

type lookupPatientRequest struct {
	Email string `json:"email"`
}

func (h *Handler) LookupPatient(c echo.Context) error {
	var req lookupPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.LookupPatient(c.Request().Context(), req.Email)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":        p.ID,
		"email":     p.Email,
		"full_name": p.FullName,
	})
}

type assignPatientRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
}

func (h *Handler) AssignPatient(c echo.Context) error {
	id, err := rdID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	var req assignPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.Assign(c.Request().Context(), id, req.PatientID)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"reactivated": result.Reactivated,
		"assignment":  result.Assignment,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateAssignmentStatus(c echo.Context) error {
	id, err := rdID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.UpdateStatus(c.Request().Context(), id, assignmentID, req.Status)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListPatients(c echo.Context) error {
	id, err := rdID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListForRD(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Dashboard(c echo.Context) error {
	id, err := rdID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	stats, err := h.svc.DashboardStats(c.Request().Context(), id)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, stats)
}
