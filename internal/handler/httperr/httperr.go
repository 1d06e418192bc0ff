package httperr

import (
	"net/http"

	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Reason  string `json:"reason,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	abort(c, err, resp)
}

// Abort classifies err by its taxonomy marker and writes the matching status.
// Anything unclassified becomes a generic 500.
func Abort(c *gin.Context, err error) {
	if err == nil {
		panic("Abort: err cannot be nil")
	}

	status := StatusOf(err)
	resp := Response{Status: status}
	switch {
	case status == http.StatusUnprocessableEntity:
		resp.Error.Message = "Coupon rejected"
		resp.Error.Reason = errs.Cause(err).Error()
	case status >= http.StatusInternalServerError:
		resp.Error.Message = http.StatusText(status)
	default:
		resp.Error.Message = errs.Cause(err).Error()
	}

	abort(c, err, resp)
}

func StatusOf(err error) int {
	switch {
	case coupon.IsRejection(err):
		return http.StatusUnprocessableEntity
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errs.IsUnauthorized(err):
		return http.StatusUnauthorized
	case errs.IsForbidden(err):
		return http.StatusForbidden
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.IsConflict(err):
		return http.StatusConflict
	case errs.IsTransient(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
