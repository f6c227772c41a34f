package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tobenna/room-booking/internal/model"
	"github.com/tobenna/room-booking/internal/repository"
)

// ReviewHandler serves review creation and listing. Reviews are passthrough
// documents keyed by room id.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
}

func NewReviewHandler(reviews *repository.ReviewRepo) *ReviewHandler {
	if reviews == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: reviews}
}

type createReviewReq struct {
	RoomID    uint64 `json:"room_id"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// Create handles POST /review.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	rev := &model.Review{
		RoomID:    req.RoomID,
		UserEmail: strings.TrimSpace(req.UserEmail),
		UserName:  strings.TrimSpace(req.UserName),
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.Reviews.Insert(c.Request().Context(), rev); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"review": rev})
}

// Latest handles GET /latestReview and returns the six newest reviews.
func (h *ReviewHandler) Latest(c echo.Context) error {
	reviews, err := h.Reviews.Latest(c.Request().Context(), latestLimit)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// ListByRoom handles GET /all-reviews?id=R.
func (h *ReviewHandler) ListByRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.QueryParam("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	reviews, err := h.Reviews.ListByRoom(c.Request().Context(), id)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}
