package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// queryBool reads a boolean query flag. Missing or unparsable values are false.
func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && v
}
