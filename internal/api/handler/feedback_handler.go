package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

// FeedbackHandler serves the customer-feedback surface. Submitting is open
// to anyone; the listing is a staff view guarded at the router.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit handles POST /feedbacks.
//
// @Summary      Submit customer feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      submitFeedbackRequest  true  "Feedback"
// @Success      201   {object}  submitFeedbackResponse
// @Failure      400   {object}  errorResponse
// @Router       /feedbacks [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	stored, err := h.service.Submit(c.Request().Context(), ports.SubmitFeedbackInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, submitFeedbackResponse{Success: true, Data: *stored})
}

// List handles GET /feedbacks.
//
// @Summary      List all feedback, newest first
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Feedback
// @Router       /feedbacks [get]
func (h *FeedbackHandler) List(c echo.Context) error {
	feedbacks, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feedbacks)
}
