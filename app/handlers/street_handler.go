package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/ssoogun/outlier.property/app/dto"
	"github.com/ssoogun/outlier.property/app/middleware"
	businessflow "github.com/ssoogun/outlier.property/business_flow"
	"github.com/ssoogun/outlier.property/utils"
)

type StreetHandlerInterface interface {
	ListStreets(c fiber.Ctx) error
	ListDistricts(c fiber.Ctx) error
}

type StreetHandler struct {
	flow      businessflow.StreetFlow
	validator *validator.Validate
}

func NewStreetHandler(flow businessflow.StreetFlow) *StreetHandler {
	return &StreetHandler{flow: flow, validator: validator.New()}
}

func (h *StreetHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   dto.ErrorDetail{Code: errorCode, Details: details},
	})
}

func (h *StreetHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{Success: true, Message: message, Data: data})
}

// ListStreets returns the all-results view filtered by the query criteria
// @Summary List Streets
// @Description Apply district, transaction, price and percent-difference criteria to the street dataset
// @Tags Streets
// @Produce json
// @Param district query string false "Single district, or 'All' for no restriction"
// @Param districts query string false "Comma-separated district set (empty = no restriction)"
// @Param min_transactions query int false "Minimum transaction count (default 1)"
// @Param min_price query number false "Inclusive price floor (default 0)"
// @Param max_price query number false "Inclusive price ceiling (0 = open)"
// @Param min_percent_diff query number false "Inclusive percent-difference floor"
// @Param max_percent_diff query number false "Inclusive percent-difference ceiling"
// @Success 200 {object} dto.APIResponse{data=dto.ListStreetsResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/streets [get]
func (h *StreetHandler) ListStreets(c fiber.Ctx) error {
	req, err := h.parseCriteria(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "VALIDATION_ERROR", nil)
	}

	if err := h.validator.Struct(req); err != nil {
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
	res, err := h.flow.ListStreets(h.createRequestContext(c, "/api/v1/streets"), req, store, metadata)
	if err != nil {
		log.Println("List streets failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list streets", "LIST_STREETS_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Streets retrieved", res)
}

// ListDistricts returns the distinct districts for the filter selector
// @Summary List Districts
// @Tags Streets
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListDistrictsResponse}
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/districts [get]
func (h *StreetHandler) ListDistricts(c fiber.Ctx) error {
	metadata := h.clientMetadata(c)
	res, err := h.flow.ListDistricts(h.createRequestContext(c, "/api/v1/districts"), metadata)
	if err != nil {
		log.Println("List districts failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list districts", "LIST_DISTRICTS_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Districts retrieved", res)
}

// parseCriteria rebuilds the filter criteria from the query string. Both
// district conventions are accepted: a single `district` value with the
// "All" sentinel, and a comma-separated `districts` set where an empty set
// means no restriction.
func (h *StreetHandler) parseCriteria(c fiber.Ctx) (*dto.ListStreetsRequest, error) {
	req := &dto.ListStreetsRequest{MinTransactions: 1}

	if v := c.Query("district"); v != "" && v != "All" {
		req.Districts = append(req.Districts, v)
	}
	if v := c.Query("districts"); v != "" {
		for _, d := range strings.Split(v, ",") {
			if d = strings.TrimSpace(d); d != "" {
				req.Districts = append(req.Districts, d)
			}
		}
	}

	if v := c.Query("min_transactions"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("min_transactions must be an integer")
		}
		req.MinTransactions = n
	}

	var parseErr error
	parseFloat := func(name string) *float64 {
		v := c.Query(name)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			if parseErr == nil {
				parseErr = errors.New(name + " must be a number")
			}
			return nil
		}
		return &f
	}

	if f := parseFloat("min_price"); f != nil {
		req.MinPrice = *f
	}
	if f := parseFloat("max_price"); f != nil {
		req.MaxPrice = *f
	}
	req.MinPercentDiff = parseFloat("min_percent_diff")
	req.MaxPercentDiff = parseFloat("max_percent_diff")
	if parseErr != nil {
		return nil, parseErr
	}

	return req, nil
}

func (h *StreetHandler) clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if id, ok := c.Locals(middleware.SessionIDLocal).(string); ok {
		metadata.SetSessionID(id)
	}
	metadata.SetRequestID(c.Get("X-Request-ID"))
	return metadata
}

func (h *StreetHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *StreetHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelKey, cancel)
	return ctx
}
