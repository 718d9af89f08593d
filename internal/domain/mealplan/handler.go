package mealplan

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

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/generate-grocery-list", h.GenerateGroceryList)
	api.POST("/generate-recipes", h.GenerateRecipes)
	api.GET("/grocery-list", h.GetWeekList)
	api.PUT("/grocery-list", h.PutWeekList)
	api.GET("/recipes/saved", h.ListSavedRecipes)
	api.POST("/recipes/saved", h.SaveRecipe)
	api.DELETE("/recipes/saved/:id", h.DeleteSavedRecipe)
}

func patientID(c echo.Context) (uuid.UUID, error) {
	return auth.PrincipalFromContext(c.Request().Context()).UUID()
}

func (h *Handler) GenerateGroceryList(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	var p Profile
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	items, err := h.svc.GenerateGroceryList(c.Request().Context(), id, &p)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

type generateRecipesRequest struct {
	Profile
	Count int `json:"count"`
}

func (h *Handler) GenerateRecipes(c echo.Context) error {
	if _, err := patientID(c); err != nil {
		return apperr.ToHTTP(err)
	}
	var req generateRecipesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	recipes, err := h.svc.GenerateRecipes(c.Request().Context(), &req.Profile, req.Count)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"recipes": recipes})
}

func (h *Handler) GetWeekList(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	gl, err := h.svc.GetWeekList(c.Request().Context(), id)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, gl)
}

type putWeekListRequest struct {
	Items []GroceryItem `json:"items"`
}

func (h *Handler) PutWeekList(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	var req putWeekListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	gl, err := h.svc.PutWeekList(c.Request().Context(), id, req.Items)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, gl)
}

func (h *Handler) SaveRecipe(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	var r Recipe
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sr, err := h.svc.SaveRecipe(c.Request().Context(), id, r)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, sr)
}

func (h *Handler) ListSavedRecipes(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	items, err := h.svc.ListSavedRecipes(c.Request().Context(), id)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteSavedRecipe(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteSavedRecipe(c.Request().Context(), id, recipeID); err != nil {
		return apperr.ToHTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
