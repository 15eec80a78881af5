package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/NabsK/hr-admin-system/internal/apperror"
)

func statusForCode(code apperror.Code) int {
	switch code {
	case apperror.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperror.CodeForbidden:
		return http.StatusForbidden
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeValidation:
		return http.StatusBadRequest
	case apperror.CodeConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	code := apperror.GetCode(err)
	message := err.Error()
	if code == apperror.CodeInternal {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		message = "internal error"
	}
	c.JSON(statusForCode(code), gin.H{"error": message})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// statusFlag absorbs the status representations the front end has sent over
// time: true/false, "true"/"false", "0"/"1" and 0/1. Past the handler layer
// status is always a plain bool.
type statusFlag bool

func (f *statusFlag) UnmarshalJSON(data []byte) error {
	switch strings.TrimSpace(string(data)) {
	case "true", "1":
		*f = true
		return nil
	case "false", "0":
		*f = false
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.TrimSpace(s) {
	case "true", "1":
		*f = true
	case "false", "0":
		*f = false
	default:
		return errors.New("invalid status value " + strconv.Quote(s))
	}
	return nil
}
