package v1

import (
	"errors"
	"io"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/validation"
)

var registerOnce sync.Once

// registerValidators hooks the custom tags into gin's validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validation.RegisterValidators(v)
		}
	})
}

// bindJSON decodes and validates the body, recording a 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(bindError(err))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be omitted.
func bindOptionalJSON(c *gin.Context, req interface{}) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	if fields, ok := validation.FieldErrors(err); ok {
		return apperror.Validation("Validation failed", fields)
	}
	return apperror.BadRequest("Malformed JSON body")
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		_ = c.Error(apperror.BadRequest("Invalid ID format"))
		return 0, false
	}
	return id, true
}
