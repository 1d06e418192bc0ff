//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/handler/dto/request"
	"food-delivery-api/internal/pkg/cookie"
	"food-delivery-api/tests/common/dbtest"
	"food-delivery-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// LoginUser logs in and returns the token from the role's cookie slot.
func LoginUser(t *testing.T, router *gin.Engine, email, password string, role user.Role) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	tokenCookie := httptest.ExtractCookie(w, cookie.TokenSlot(role))
	require.NotNil(t, tokenCookie, "token cookie not found for role %s", role)
	require.NotEmpty(t, tokenCookie.Value, "token cookie is empty")

	return tokenCookie.Value
}

// CreateAndLogin seeds a user with dbtest.DefaultPassword and logs them in.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email string, role user.Role) (uuid.UUID, string) {
	t.Helper()
	id := dbtest.CreateTestUser(t, db, email, role)
	return id, LoginUser(t, router, email, dbtest.DefaultPassword, role)
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/auth/logout", nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
