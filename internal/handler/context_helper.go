package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
	"github.com/campus-events-hub/portal-api/pkg/response"
)

// pathID parses a numeric path parameter, writing a validation error on
// failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name))
		return 0, false
	}
	return id, true
}
