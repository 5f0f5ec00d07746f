package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/oguzk/landmark-tracker/internal/service"
	"github.com/oguzk/landmark-tracker/internal/util"
)

type VisitHandler struct {
	visits *service.VisitService
}

func RegisterVisits(e *echo.Echo, visitService *service.VisitService) {
	handler := &VisitHandler{visits: visitService}

	group := e.Group("/api/v1/visits")
	group.POST("", handler.create)
	group.GET("", handler.list)
	group.GET("/landmark/:id", handler.historyForLandmark)
	group.PUT("/:id", handler.update)
	group.DELETE("/:id", handler.remove)
}

func (h *VisitHandler) create(c echo.Context) error {
	var req struct {
		LandmarkID  string     `json:"landmark_id"`
		VisitorName string     `json:"visitor_name"`
		VisitedDate *time.Time `json:"visited_date"`
		Notes       string     `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.LandmarkID == "" {
		return c.JSON(http.StatusBadRequest, util.Error("landmark_id is required"))
	}
	landmarkID, err := uuid.Parse(req.LandmarkID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("landmark_id must be a valid UUID"))
	}

	visit, err := h.visits.Create(c.Request().Context(), service.VisitCreateInput{
		LandmarkID:  landmarkID,
		VisitorName: req.VisitorName,
		VisitedDate: req.VisitedDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{"visit": visit})
}

func (h *VisitHandler) list(c echo.Context) error {
	visits, err := h.visits.ListEnriched(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"visits": visits,
		"meta":   util.Envelope{"count": len(visits)},
	})
}

func (h *VisitHandler) historyForLandmark(c echo.Context) error {
	landmarkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid landmark id"))
	}

	visits, err := h.visits.HistoryForLandmark(c.Request().Context(), landmarkID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"visits": visits,
		"meta":   util.Envelope{"count": len(visits)},
	})
}

func (h *VisitHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid visit id"))
	}

	var req struct {
		VisitorName *string    `json:"visitor_name"`
		VisitedDate *time.Time `json:"visited_date"`
		Notes       *string    `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	visit, err := h.visits.Update(c.Request().Context(), id, service.VisitUpdateInput{
		VisitorName: req.VisitorName,
		VisitedDate: req.VisitedDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"visit": visit})
}

func (h *VisitHandler) remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid visit id"))
	}

	if err := h.visits.Delete(c.Request().Context(), id); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"message": "visit record deleted"})
}

func (h *VisitHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrLandmarkNotFound):
		return c.JSON(http.StatusNotFound, util.Error("landmark not found"))
	case errors.Is(err, service.ErrVisitNotFound):
		return c.JSON(http.StatusNotFound, util.Error("visit record not found"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}
