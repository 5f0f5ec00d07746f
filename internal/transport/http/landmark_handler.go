package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/oguzk/landmark-tracker/internal/domain"
	"github.com/oguzk/landmark-tracker/internal/service"
	"github.com/oguzk/landmark-tracker/internal/util"
)

type LandmarkHandler struct {
	landmarks *service.LandmarkService
}

func RegisterLandmarks(e *echo.Echo, landmarkService *service.LandmarkService) {
	handler := &LandmarkHandler{landmarks: landmarkService}

	group := e.Group("/api/v1/landmarks")
	group.POST("", handler.create)
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.PUT("/:id", handler.update)
	group.DELETE("/:id", handler.remove)
}

func (h *LandmarkHandler) create(c echo.Context) error {
	var req struct {
		Name        string   `json:"name"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	landmark, err := h.landmarks.Create(c.Request().Context(), service.LandmarkCreateInput{
		Name:        req.Name,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, util.Envelope{"landmark": landmark})
}

func (h *LandmarkHandler) list(c echo.Context) error {
	filter, err := parseLandmarkListFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	landmarks, err := h.landmarks.List(c.Request().Context(), filter)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"landmarks": landmarks,
		"meta":      util.Envelope{"count": len(landmarks)},
	})
}

func (h *LandmarkHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid landmark id"))
	}

	landmark, err := h.landmarks.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"landmark": landmark})
}

func (h *LandmarkHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid landmark id"))
	}

	var req struct {
		Name        *string  `json:"name"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	landmark, err := h.landmarks.Update(c.Request().Context(), id, service.LandmarkUpdateInput{
		Name:        req.Name,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"landmark": landmark})
}

func (h *LandmarkHandler) remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid landmark id"))
	}

	result, err := h.landmarks.Delete(c.Request().Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"message":              "landmark deleted",
		"visits_deleted":       result.VisitsDeleted,
		"plan_entries_removed": result.EntriesRemoved,
	})
}

func (h *LandmarkHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrLandmarkValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrLandmarkNotFound):
		return c.JSON(http.StatusNotFound, util.Error("landmark not found"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}

func parseLandmarkListFilter(c echo.Context) (domain.LandmarkListFilter, error) {
	filter := domain.LandmarkListFilter{
		Name: strings.TrimSpace(c.QueryParam("name")),
	}
	if raw := strings.TrimSpace(c.QueryParam("category")); raw != "" && !strings.EqualFold(raw, "all") {
		category := domain.LandmarkCategory(strings.ToLower(raw))
		if !domain.ValidLandmarkCategory(category) {
			return domain.LandmarkListFilter{}, errors.New("unknown category filter")
		}
		filter.Category = &category
	}
	return filter, nil
}
