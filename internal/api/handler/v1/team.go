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
	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/service"
)

type TeamService interface {
	ListTeams(ctx context.Context) ([]domain.Team, error)
	CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (service.TeamDetail, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

type TeamHandler struct {
	svc TeamService
}

func NewTeamHandler(svc TeamService) *TeamHandler {
	return &TeamHandler{
		svc: svc,
	}
}

// HandleListTeams godoc
// @Summary      List all teams
// @Tags         teams
// @Produce      json
// @Success      200  {array}   domain.Team
// @Failure      500  {object}  response.Err
// @Router       /api/teams [get]
// @Security BearerAuth
func (h *TeamHandler) HandleListTeams(ctx *gin.Context) {
	teams, err := h.svc.ListTeams(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTeams -> h.svc.ListTeams -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleCreateTeam godoc
// @Summary      Create a team
// @Tags         teams
// @Produce      json
// @Param        request   body      request.CreateTeamRequest true "request body"
// @Success      201  {object}  domain.Team
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/teams [post]
// @Security BearerAuth
func (h *TeamHandler) HandleCreateTeam(ctx *gin.Context) {
	var req request.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateTeam(ctx.Request.Context(), domain.Team{
		Name:            req.Name,
		Score:           req.Score,
		NumParticipants: req.NumParticipants,
		Participants:    req.ParticipantIDs(),
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateTeam -> h.svc.CreateTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetTeam godoc
// @Summary      Get a team with resolved participants
// @Tags         teams
// @Produce      json
// @Param        teamID   path   string   true   "team ID"
// @Success      200  {object}  service.TeamDetail
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/teams/{teamID} [get]
// @Security BearerAuth
func (h *TeamHandler) HandleGetTeam(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("teamID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("team ID must be a valid UUID")))
		return
	}

	team, err := h.svc.GetTeam(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetTeam -> h.svc.GetTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleDeleteTeam godoc
// @Summary      Delete a team
// @Tags         teams
// @Produce      json
// @Param        teamID   path   string   true   "team ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/teams/{teamID} [delete]
// @Security BearerAuth
func (h *TeamHandler) HandleDeleteTeam(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("teamID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("team ID must be a valid UUID")))
		return
	}

	if err = h.svc.DeleteTeam(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteTeam -> h.svc.DeleteTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "team deleted"})
}
