package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/torneohub/torneo-api/internal/api/handler/v1/request"
	"github.com/torneohub/torneo-api/internal/api/handler/v1/response"
	"github.com/torneohub/torneo-api/internal/config"
	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/identity"
	"github.com/torneohub/torneo-api/internal/pkg/jwthelper"
	"github.com/torneohub/torneo-api/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, email, username, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
}

type OAuthService interface {
	AuthCodeURL(state string) string
	CompleteLogin(ctx context.Context, code string) (domain.User, error)
}

type AuthHandler struct {
	conf     *config.APIConfig
	svc      AuthService
	oauthSvc OAuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, oauthSvc OAuthService) *AuthHandler {
	return &AuthHandler{
		conf:     conf,
		svc:      svc,
		oauthSvc: oauthSvc,
	}
}

// HandleRegister godoc
// @Summary      Register a new user
// @Tags         auth
// @Produce      json
// @Param        request   body      request.RegisterRequest true "request body"
// @Success      201      {object}   response.RegisterResponse
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /api/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	_, err := h.svc.Register(ctx.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrUserEmailExists))
			return
		}

		var upstreamErr *identity.UpstreamError
		if errors.As(err, &upstreamErr) {
			response.RenderErr(ctx, response.ErrUpstream(upstreamErr))
			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.RegisterResponse{Message: "user registered"})
}

// HandleLogin godoc
// @Summary      Login a user
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /api/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		// One generic response for unknown email and wrong password.
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials())
			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), domain.Principal{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Message: "login successful",
		User:    user,
		Token:   token,
	})
}

// HandleDiscordAuth godoc
// @Summary      Start the Discord OAuth flow
// @Tags         auth
// @Success      302
// @Failure      500      {object}   response.Err
// @Router       /api/auth/discord [get]
func (h *AuthHandler) HandleDiscordAuth(ctx *gin.Context) {
	state, err := jwthelper.GenerateState([]byte(h.conf.JWTSigningKey))
	if err != nil {
		err = fmt.Errorf("v1.HandleDiscordAuth -> jwthelper.GenerateState -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Redirect(http.StatusFound, h.oauthSvc.AuthCodeURL(state))
}

// HandleDiscordCallback godoc
// @Summary      Complete the Discord OAuth flow
// @Tags         auth
// @Param        code   query   string  true   "authorization code"
// @Param        state  query   string  true   "CSRF state"
// @Success      302
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /api/auth/discord/callback [get]
func (h *AuthHandler) HandleDiscordCallback(ctx *gin.Context) {
	state := ctx.Query("state")
	if err := jwthelper.VerifyState([]byte(h.conf.JWTSigningKey), state); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	code := ctx.Query("code")
	if code == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("missing code")))
		return
	}

	user, err := h.oauthSvc.CompleteLogin(ctx.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrOAuthProfileIncomplete) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleDiscordCallback -> h.oauthSvc.CompleteLogin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), domain.Principal{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleDiscordCallback -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Redirect(http.StatusFound, h.conf.FrontendURL+"/auth/callback?token="+token)
}
