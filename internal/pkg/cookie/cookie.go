package cookie

import (
	"net/http"
	"strings"
	"time"

	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// TokenSlot names the cookie that carries the access token for a role.
// Each role has its own slot so a browser can hold a customer and a staff
// session side by side.
func TokenSlot(role user.Role) string {
	return strings.ToLower(string(role)) + "_token"
}

func SetTokenCookie(c *gin.Context, cfg config.CookieConfig, role user.Role, token string, expiry time.Duration) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(
		TokenSlot(role),
		token,
		int(expiry.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func ClearTokenCookie(c *gin.Context, cfg config.CookieConfig, role user.Role) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(TokenSlot(role), "", -1, "/", cfg.Domain, cfg.Secure, true)
}

// GetToken returns the token stored in the slot for role, or "".
func GetToken(c *gin.Context, role user.Role) string {
	token, _ := c.Cookie(TokenSlot(role))
	return token
}

// FirstToken scans the slots in user.AllRoles order and returns the first
// non-empty token.
func FirstToken(c *gin.Context) (string, user.Role) {
	for _, r := range user.AllRoles() {
		if token := GetToken(c, r); token != "" {
			return token, r
		}
	}
	return "", ""
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
