package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/oguzk/landmark-tracker/internal/service"
	"github.com/oguzk/landmark-tracker/internal/util"
)

type PlanHandler struct {
	plans *service.PlanService
}

func RegisterPlans(e *echo.Echo, planService *service.PlanService) {
	handler := &PlanHandler{plans: planService}

	group := e.Group("/api/v1/plans")
	group.POST("", handler.create)
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.DELETE("/:id", handler.remove)
}

type planEntryRequest struct {
	LandmarkID string `json:"landmark_id"`
	Notes      string `json:"notes"`
	Order      *int   `json:"order"`
}

func (h *PlanHandler) create(c echo.Context) error {
	var req struct {
		Name        string             `json:"name"`
		Creator     string             `json:"creator"`
		Landmarks   []planEntryRequest `json:"landmarks"`
		Description string             `json:"description"`
		IsPublic    *bool              `json:"is_public"`
		PlannedDate *time.Time         `json:"planned_date"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	entries, err := parsePlanEntries(req.Landmarks)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	plan, err := h.plans.Create(c.Request().Context(), service.PlanCreateInput{
		Name:        req.Name,
		Creator:     req.Creator,
		Entries:     entries,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		PlannedDate: req.PlannedDate,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{"plan": plan})
}

func (h *PlanHandler) list(c echo.Context) error {
	plans, err := h.plans.List(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"plans": plans,
		"meta":  util.Envelope{"count": len(plans)},
	})
}

func (h *PlanHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid plan id"))
	}

	plan, err := h.plans.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"plan": plan})
}

func (h *PlanHandler) remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid plan id"))
	}

	if err := h.plans.Delete(c.Request().Context(), id); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"message": "visiting plan deleted"})
}

func (h *PlanHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrPlanValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrPlanNotFound):
		return c.JSON(http.StatusNotFound, util.Error("visiting plan not found"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}

func parsePlanEntries(raw []planEntryRequest) ([]service.PlanEntryInput, error) {
	entries := make([]service.PlanEntryInput, 0, len(raw))
	for _, item := range raw {
		trimmed := strings.TrimSpace(item.LandmarkID)
		if trimmed == "" {
			return nil, errors.New("landmark_id is required on every entry")
		}
		id, err := uuid.Parse(trimmed)
		if err != nil {
			return nil, errors.New("landmark_id must be a valid UUID")
		}
		entries = append(entries, service.PlanEntryInput{
			LandmarkID: id,
			Notes:      item.Notes,
			Order:      item.Order,
		})
	}
	return entries, nil
}
