package api

import (
	"net/http"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/handler/httperr"
	"food-delivery-api/internal/handler/middleware"
	"food-delivery-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var errNoIdentity = errs.Unauthorized("authentication required")

// bindJSON writes the 400 itself; callers just return on false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", fieldErrors(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", fieldErrors(err))
		return false
	}
	return true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, errNoIdentity)
	}
	return id, ok
}

func currentActor(c *gin.Context) (order.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Abort(c, errNoIdentity)
	}
	return actor, ok
}

func currentAdmin(c *gin.Context) (user.Admin, bool) {
	actor, ok := currentActor(c)
	return user.Admin{ID: actor.UserID, Role: actor.Role}, ok
}

// fieldErrors maps each failing field to the rule it broke.
func fieldErrors(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errs.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
