package httperr

import (
	"log/slog"
	"net/http"

	"experience-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Message: msg, Detail: detail}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithUseCaseError maps a use-case error onto its HTTP status by failure class.
func AbortWithUseCaseError(c *gin.Context, err error) {
	status, msg := Classify(err)
	if status >= http.StatusInternalServerError {
		slog.Error("use case failed",
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Any("stack", errs.ExtractStackLines(err, 12)),
		)
	}
	AbortWithError(c, status, err, msg, nil)
}

func Classify(err error) (int, string) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict, err.Error()
	case errs.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
