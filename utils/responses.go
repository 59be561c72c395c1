package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/komunitas-muda/backoffice/models"
)

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// SendSuccess sends a successful envelope with data
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendJSON(c, http.StatusOK, models.NewSuccessResponse(message, data))
}

// SendCreated sends a created-resource envelope
func SendCreated(c *fiber.Ctx, message string, data interface{}) error {
	return SendJSON(c, http.StatusCreated, models.NewSuccessResponse(message, data))
}

// SendAffectedRows sends a bulk-mutation envelope
func SendAffectedRows(c *fiber.Ctx, message string, affected int64) error {
	return SendJSON(c, http.StatusOK, models.NewAffectedRowsResponse(message, affected))
}

// SendError sends an error envelope
func SendError(c *fiber.Ctx, statusCode int, message, detail string) error {
	return SendJSON(c, statusCode, models.NewErrorResponse(message, detail))
}

// SendBadRequest sends a bad request error response
func SendBadRequest(c *fiber.Ctx, message, detail string) error {
	return SendError(c, http.StatusBadRequest, message, detail)
}

// SendUnauthorized sends an unauthorized error response
func SendUnauthorized(c *fiber.Ctx, detail string) error {
	return SendError(c, http.StatusUnauthorized, models.MsgUnauthorized, detail)
}

// SendNotFound sends a not found error response
func SendNotFound(c *fiber.Ctx, message, detail string) error {
	return SendError(c, http.StatusNotFound, message, detail)
}

// SendConflict sends a conflict error response
func SendConflict(c *fiber.Ctx, message, detail string) error {
	return SendError(c, http.StatusConflict, message, detail)
}

// SendInternalServerError sends an internal server error response
func SendInternalServerError(c *fiber.Ctx, detail string) error {
	return SendError(c, http.StatusInternalServerError, models.MsgGeneralError, detail)
}

// SendValidationErrors sends a validation error envelope with per-field
// details
func SendValidationErrors(c *fiber.Ctx, details map[string]string) error {
	response := models.NewErrorResponse(models.MsgValidationError, "request validation failed")
	response.Details = details
	return SendJSON(c, http.StatusUnprocessableEntity, response)
}
