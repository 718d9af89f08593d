package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Page areas and well-known paths used by the navigation guard.
const (
	PatientArea  = "/dashboard"
	RDArea       = "/rd"
	LoginPath    = "/login"
	RDSignupPath = "/rd/signup"
)

// Action is the outcome of classifying a page navigation request.
type Action int

const (
	// Allow lets the request through unmodified.
	Allow Action = iota
	// RedirectLogin sends the caller to the login page.
	RedirectLogin
	// RedirectPatientHome sends the caller to the patient dashboard.
	RedirectPatientHome
	// RedirectRDHome sends the caller to the RD workspace.
	RedirectRDHome
)

// ClassifyArea decides what happens to a page navigation request given the
// caller's authentication state, role, and target path. The RD signup page is
// public: it is exempt from both the authentication requirement and the RD
// role requirement so prospective dietitians can register.
//
// Role mismatches redirect rather than error so the other area's existence is
// never confirmed to the wrong audience.
func ClassifyArea(authenticated bool, role, path string) Action {
	inPatientArea := strings.HasPrefix(path, PatientArea)
	inRDArea := strings.HasPrefix(path, RDArea)

	if !authenticated {
		if (inPatientArea || inRDArea) && path != RDSignupPath {
			return RedirectLogin
		}
		return Allow
	}

	if role == "" {
		role = RolePatient
	}

	// Patients (or anything that is not rd/admin) have no standing in the RD
	// area beyond the public signup page.
	if role != RoleRD && role != RoleAdmin && inRDArea && path != RDSignupPath {
		return RedirectPatientHome
	}

	// Dietitians have no standing in the patient dashboard.
	if (role == RoleRD || role == RoleAdmin) && inPatientArea {
		return RedirectRDHome
	}

	return Allow
}

// AreaGuard enforces ClassifyArea on page routes. It only ever redirects; it
// never mutates persisted state.
func AreaGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFromContext(c.Request().Context())
			role := ""
			if p != nil {
				role = p.Role
			}
			switch ClassifyArea(p != nil, role, c.Request().URL.Path) {
			case RedirectLogin:
				return c.Redirect(http.StatusFound, LoginPath)
			case RedirectPatientHome:
				return c.Redirect(http.StatusFound, PatientArea)
			case RedirectRDHome:
				return c.Redirect(http.StatusFound, RDArea)
			default:
				return next(c)
			}
		}
	}
}
