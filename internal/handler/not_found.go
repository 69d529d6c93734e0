package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/partnerlab/partner_api/internal/utils"
)

// NotFound is the catch-all handler for unmatched routes.
func NotFound(c *gin.Context) {
	utils.Error(c, 404, "Endpoint not found",
		fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path))
}
