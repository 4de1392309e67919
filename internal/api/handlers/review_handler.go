package handlers

import (
	"errors"
	"strconv"

	"nalastable/domain"
	"nalastable/internal/api/presenters"
	"nalastable/pkg/review"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReviewHandler interface {
		SubmitReview(c *fiber.Ctx) error
	}

	reviewHandler struct {
		reviewService review.ReviewService
		validator     *validator.Validate
	}
)

func NewReviewHandler(reviewService review.ReviewService, validator *validator.Validate) ReviewHandler {
	return &reviewHandler{
		reviewService: reviewService,
		validator:     validator,
	}
}

// callerID returns the signed-in user's id, or 0 for anonymous callers.
func callerID(c *fiber.Ctx) uint {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func (h *reviewHandler) SubmitReview(c *fiber.Ctx) error {
	recipeID, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitReview, err)
	}

	req := new(domain.SubmitReviewRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitReview, err)
	}

	res, err := h.reviewService.SubmitReview(c.Context(), recipeID, *req, callerID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecipeNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSubmitReview, err)
		case errors.Is(err, domain.ErrDuplicateReview):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedSubmitReview, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitReview, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubmitReview)
}
