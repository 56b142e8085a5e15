package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/torneohub/torneo-api/internal/api/handler/v1/request"
	"github.com/torneohub/torneo-api/internal/api/handler/v1/response"
	"github.com/torneohub/torneo-api/internal/api/middleware"
	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, update service.UserUpdate) (domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleListUsers godoc
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/users [get]
// @Security BearerAuth
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	users, err := h.svc.ListUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path   string   true   "user ID"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/users/{userID} [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("userID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("user ID must be a valid UUID")))
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleUpdateUser godoc
// @Summary      Update a user profile and game scores
// @Description  Recomputes punteggio whenever game fields change
// @Tags         users
// @Produce      json
// @Param        userID   path   string   true   "user ID"
// @Param        request  body   request.UpdateUserRequest  true   "request body"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/users/{userID} [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("userID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("user ID must be a valid UUID")))
		return
	}

	// Users edit themselves; admins edit anyone.
	principal, err := middleware.PrincipalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))
		return
	}
	if principal.UserID != id && principal.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrForbidden(errors.New("cannot edit another user")))
		return
	}

	var req request.UpdateUserRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	// Only admins assign roles. A user editing their own profile cannot
	// promote themselves.
	if req.Role != nil && principal.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrForbidden(errors.New("only admins can change roles")))
		return
	}

	user, err := h.svc.UpdateUser(ctx.Request.Context(), id, service.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Game1:    req.Game1,
		Game2:    req.Game2,
		Game3:    req.Game3,
		Game4:    req.Game4,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", id))
			return
		}
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrUserEmailExists))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateUser -> h.svc.UpdateUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleDeleteUser godoc
// @Summary      Delete a user from both stores
// @Description  Removes the profile row and the identity account
// @Tags         users
// @Produce      json
// @Param        userID   path   string   true   "user ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/users/{userID} [delete]
// @Security BearerAuth
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("userID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("user ID must be a valid UUID")))
		return
	}

	if err = h.svc.DeleteUser(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", id))
			return
		}
		if errors.Is(err, service.ErrIdentityDeleteFailed) {
			response.RenderErr(ctx, response.ErrUpstream(err))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteUser -> h.svc.DeleteUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "user deleted"})
}
