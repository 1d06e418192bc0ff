package api

import (
	"net/http"
	"time"

	reqdto "food-delivery-api/internal/handler/dto/request"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/handler/httperr"
	"food-delivery-api/internal/handler/middleware"
	"food-delivery-api/internal/pkg/config"
	"food-delivery-api/internal/pkg/cookie"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds commands.AuthCommands
	q    queries.UserQueries
	cfg  config.Config
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{cmds: cmds, q: q, cfg: cfg}
}

// @Summary Register
// @Description Create a customer account and sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 {object} resdto.AuthResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.cmds.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.setCookie(c, res)
	c.JSON(http.StatusCreated, resdto.FromAuthResult(res))
}

// @Summary User login
// @Description Login with email and password. The token is also set in the cookie slot of the user's role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.AuthResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.cmds.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.setCookie(c, res)
	c.JSON(http.StatusOK, resdto.FromAuthResult(res))
}

// @Summary User logout
// @Description Clear the cookie slot of the current role
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless; only the cookie is cleared.
	if role, ok := middleware.GetUserRole(c); ok {
		cookie.ClearTokenCookie(c, h.cfg.Cookie, role)
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	view, err := h.q.Me(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserView(view))
}

func (h *AuthHandler) setCookie(c *gin.Context, res *commands.AuthResult) {
	cookie.SetTokenCookie(c, h.cfg.Cookie, res.User.Role(), res.Token, time.Until(res.ExpiresAt))
}
