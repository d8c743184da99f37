// FILE: internal/controller/oauth_controller.go
package controller

import (
	"net/url"
	"strings"
	"time"

	"learnloop-be/internal/pkg/apperror"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const oauthStateCookie = "oauth_state"

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	authService service.IAuthService
	frontendURL string
	secure      bool
	logger      logger.ILogger
}

func NewOAuthController(authService service.IAuthService, frontendURL string, secure bool, log logger.ILogger) IOAuthController {
	return &oauthController{
		authService: authService,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		secure:      secure,
		logger:      log,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/google")
	h.Get("/login", c.Login)
	h.Get("/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	state := uuid.NewString()
	ctx.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   c.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return ctx.Redirect(c.authService.GoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing code")
	}

	state := ctx.Query("state")
	if state == "" || state != ctx.Cookies(oauthStateCookie) {
		c.logger.Warn("OAUTH", "State mismatch on callback", map[string]interface{}{
			"ip": ctx.IP(),
		})
		return fiber.NewError(fiber.StatusBadRequest, "Invalid OAuth state")
	}
	ctx.ClearCookie(oauthStateCookie)

	res, err := c.authService.GoogleCallback(ctx.UserContext(), code)
	if err != nil {
		if appErr, ok := apperror.As(err); ok && appErr.Kind == apperror.KindUnauthorized {
			return ctx.Redirect(c.frontendURL+"/?error="+url.QueryEscape(appErr.Message), fiber.StatusTemporaryRedirect)
		}
		return err
	}

	c.logger.Info("OAUTH", "User authenticated", map[string]interface{}{
		"user_id": res.User.Id,
	})
	return ctx.Redirect(c.frontendURL+"/dashboard?token="+url.QueryEscape(res.Token), fiber.StatusTemporaryRedirect)
}
