package handlers

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/ssoogun/outlier.property/app/dto"
	"github.com/ssoogun/outlier.property/app/middleware"
	businessflow "github.com/ssoogun/outlier.property/business_flow"
	"github.com/ssoogun/outlier.property/utils"
)

type FavouritesHandlerInterface interface {
	ToggleFavourite(c fiber.Ctx) error
	ListFavourites(c fiber.Ctx) error
}

type FavouritesHandler struct {
	flow      businessflow.FavouritesFlow
	validator *validator.Validate
}

func NewFavouritesHandler(flow businessflow.FavouritesFlow) *FavouritesHandler {
	return &FavouritesHandler{flow: flow, validator: validator.New()}
}

func (h *FavouritesHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   dto.ErrorDetail{Code: errorCode, Details: details},
	})
}

func (h *FavouritesHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{Success: true, Message: message, Data: data})
}

// ToggleFavourite flips the favourite state of a street row for the caller's session
// @Summary Toggle Favourite
// @Description Mark or unmark a street as a favourite. Only rows rendered in the main view can be toggled.
// @Tags Favourites
// @Accept json
// @Produce json
// @Param request body dto.ToggleFavouriteRequest true "Row identity to toggle"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleFavouriteResponse}
// @Failure 400 {object} dto.APIResponse "Validation error or read-only view"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/streets/favourites/toggle [post]
func (h *FavouritesHandler) ToggleFavourite(c fiber.Ctx) error {
	var req dto.ToggleFavouriteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST_BODY", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	store, ok := c.Locals(middleware.FavouritesStoreLocal).(*businessflow.FavouritesStore)
	if !ok || store == nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Session store not found in context", "MISSING_SESSION_STORE", nil)
	}

	metadata := h.clientMetadata(c)
	res, err := h.flow.ToggleFavourite(h.createRequestContext(c, "/api/v1/streets/favourites/toggle"), &req, store, metadata)
	if err != nil {
		if businessflow.IsFavouriteViewReadOnly(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Favourites cannot be toggled from the favourites view", "FAVOURITES_VIEW_READ_ONLY", nil)
		}
		log.Println("Toggle favourite failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to toggle favourite", "TOGGLE_FAVOURITE_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Favourite updated", res)
}

// ListFavourites returns the favourites view, resolved against the full dataset
// @Summary List Favourites
// @Description Resolve the session's favourited streets against the unfiltered dataset
// @Tags Favourites
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListStreetsResponse}
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/streets/favourites [get]
func (h *FavouritesHandler) ListFavourites(c fiber.Ctx) error {
	store, ok := c.Locals(middleware.FavouritesStoreLocal).(*businessflow.FavouritesStore)
	if !ok || store == nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Session store not found in context", "MISSING_SESSION_STORE", nil)
	}

	metadata := h.clientMetadata(c)
	res, err := h.flow.ListFavourites(h.createRequestContext(c, "/api/v1/streets/favourites"), store, metadata)
	if err != nil {
		log.Println("List favourites failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list favourites", "LIST_FAVOURITES_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Favourites retrieved", res)
}

func (h *FavouritesHandler) clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if id, ok := c.Locals(middleware.SessionIDLocal).(string); ok {
		metadata.SetSessionID(id)
	}
	metadata.SetRequestID(c.Get("X-Request-ID"))
	return metadata
}

func (h *FavouritesHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *FavouritesHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelKey, cancel)
	return ctx
}
