package utils

import (
	"math"
	"time"

	"github.com/gin-gonic/gin"
)

// Pagination holds pagination metadata for list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ListMetadata is attached to list responses.
type ListMetadata struct {
	ResponseTimeTaken float64 `json:"response_time_taken"`
}

// DetailMetadata is attached to single-product responses.
type DetailMetadata struct {
	CreditsSpent      int     `json:"credits_spent"`
	ResponseTimeTaken float64 `json:"response_time_taken"`
}

// ListResponse is the envelope for paginated list endpoints.
type ListResponse struct {
	Success    bool         `json:"success"`
	Data       interface{}  `json:"data"`
	Pagination Pagination   `json:"pagination"`
	Metadata   ListMetadata `json:"metadata"`
}

// DetailResponse is the envelope for point lookups.
type DetailResponse struct {
	Success  bool           `json:"success"`
	Data     interface{}    `json:"data"`
	Metadata DetailMetadata `json:"metadata"`
}

// MessageResponse is the envelope for mutations and the health endpoint.
type MessageResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error writes an error response. An empty message is omitted from the body.
func Error(c *gin.Context, status int, errMsg, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   errMsg,
		Message: message,
	})
}

// ResponseSeconds converts an elapsed duration to seconds rounded to two
// decimals, the unit used by response_time_taken.
func ResponseSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
