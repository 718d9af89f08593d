package identity

import (
	"errors"
	"net/http"

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

// RegisterRoutes mounts profile endpoints on the authenticated API group and
// the dietitian profile endpoints on the RD group.
func (h *Handler) RegisterRoutes(api, rd *echo.Group) {
	api.GET("/profile", h.GetProfile)
	api.PUT("/profile", h.UpdateProfile)
	rd.GET("/profile", h.GetRDProfile)
	rd.PUT("/profile", h.UpdateRDProfile)
}

func (h *Handler) GetProfile(c echo.Context) error {
	p := auth.PrincipalFromContext(c.Request().Context())
	id, err := p.UUID()
	if err != nil {
		return apperr.ToHTTP(err)
	}
	ctx := c.Request().Context()
	profile, err := h.svc.GetProfile(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		// First contact: provision the account from the token claims.
		if err := h.svc.EnsureProfile(ctx, id, p.Email, p.FullName, p.Role); err != nil {
			return apperr.ToHTTP(err)
		}
		profile, err = h.svc.GetProfile(ctx, id)
	}
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	p := auth.PrincipalFromContext(c.Request().Context())
	id, err := p.UUID()
	if err != nil {
		return apperr.ToHTTP(err)
	}
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateFullName(c.Request().Context(), id, req.FullName); err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) GetRDProfile(c echo.Context) error {
	p := auth.PrincipalFromContext(c.Request().Context())
	id, err := p.UUID()
	if err != nil {
		return apperr.ToHTTP(err)
	}
	rp, err := h.svc.GetRDProfile(c.Request().Context(), id)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, rp)
}

type updateRDProfileRequest struct {
	LicenseNumber     string   `json:"license_number"`
	LicenseState      string   `json:"license_state"`
	Specializations   []string `json:"specializations"`
	Bio               *string  `json:"bio"`
	AcceptingPatients bool     `json:"accepting_patients"`
}

func (h *Handler) UpdateRDProfile(c echo.Context) error {
	p := auth.PrincipalFromContext(c.Request().Context())
	id, err := p.UUID()
	if err != nil {
		return apperr.ToHTTP(err)
	}
	var req updateRDProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rp := &RDProfile{
		ID:                id,
		LicenseNumber:     req.LicenseNumber,
		LicenseState:      req.LicenseState,
		Specializations:   req.Specializations,
		Bio:               req.Bio,
		AcceptingPatients: req.AcceptingPatients,
	}
	if err := h.svc.UpsertRDProfile(c.Request().Context(), rp); err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, rp)
}
