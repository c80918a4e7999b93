package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/schema"
	"tourdesk/pkg/utils"
)

// respondInvalid answers 400 listing every failing field when err carries
// field errors.
func respondInvalid(c *gin.Context, err error) {
	if fe, ok := schema.AsFieldErrors(err); ok {
		utils.RespondErrorWithData(c, http.StatusBadRequest, "Validation failed", fe)
		return
	}
	utils.RespondError(c, http.StatusBadRequest, err.Error())
}

func prefixed(prefix string, err error) error {
	fe, ok := schema.AsFieldErrors(err)
	if !ok {
		return err
	}
	out := make(schema.FieldErrors, 0, len(fe))
	for _, e := range fe {
		if e.Path == "" {
			e.Path = prefix
		} else {
			e.Path = prefix + "." + e.Path
		}
		out = append(out, e)
	}
	return out
}
