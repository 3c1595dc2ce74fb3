package models

import "github.com/gofiber/fiber/v2"

// ApiResponse is the envelope returned for every successful request.
type ApiResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// Respond writes the standardized success envelope with the given status.
func Respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(ApiResponse{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}
