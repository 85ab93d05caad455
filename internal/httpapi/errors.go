package httpapi

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/contract"
	"github.com/alexanderramin/gradplan/internal/logging"
	"github.com/alexanderramin/gradplan/internal/repository"
	"github.com/gin-gonic/gin"
)

const codeInternal = "INTERNAL_ERROR"

// statusFor maps use-case errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	var planErr *app.PlanError
	if errors.As(err, &planErr) {
		switch planErr.Code {
		case app.PlanErrInvalidProfile, app.PlanErrInvalidProgram:
			return http.StatusUnprocessableEntity, string(planErr.Code)
		case app.PlanErrNotFound:
			return http.StatusNotFound, string(planErr.Code)
		case app.PlanErrCanceled:
			return http.StatusRequestTimeout, string(planErr.Code)
		default:
			return http.StatusInternalServerError, string(planErr.Code)
		}
	}
	switch {
	case errors.Is(err, contract.ErrMissingProgram):
		return http.StatusUnprocessableEntity, string(app.PlanErrInvalidProgram)
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, string(app.PlanErrNotFound)
	}
	return http.StatusInternalServerError, codeInternal
}

// fail writes err as an ErrorResponse. Server-side failures are logged and
// their message masked.
func (h *handler) fail(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", logging.String("path", c.Request.URL.Path), logging.Err(err))
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, contract.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, contract.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
}
