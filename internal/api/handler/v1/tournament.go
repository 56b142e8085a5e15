package v1

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/torneohub/torneo-api/internal/api/handler/v1/request"
	"github.com/torneohub/torneo-api/internal/api/handler/v1/response"
	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/service"
)

type TournamentService interface {
	ListTournaments(ctx context.Context) ([]domain.Tournament, error)
	CreateTournament(ctx context.Context, tournament domain.Tournament, image *multipart.FileHeader) (domain.Tournament, error)
	UpdateTournament(ctx context.Context, id uuid.UUID, tournament domain.Tournament, image *multipart.FileHeader) (domain.Tournament, error)
	DeleteTournament(ctx context.Context, id uuid.UUID) error
}

type TournamentHandler struct {
	svc TournamentService
}

func NewTournamentHandler(svc TournamentService) *TournamentHandler {
	return &TournamentHandler{
		svc: svc,
	}
}

// HandleListTournaments godoc
// @Summary      List all tournaments
// @Tags         tournaments
// @Produce      json
// @Success      200  {array}   domain.Tournament
// @Failure      500  {object}  response.Err
// @Router       /api/tournaments [get]
// @Security BearerAuth
func (h *TournamentHandler) HandleListTournaments(ctx *gin.Context) {
	tournaments, err := h.svc.ListTournaments(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTournaments -> h.svc.ListTournaments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tournaments)
}

// HandleCreateTournament godoc
// @Summary      Create a tournament
// @Tags         tournaments
// @Accept       multipart/form-data
// @Produce      json
// @Param        titolo    formData  string  true   "title"
// @Param        modalita  formData  string  true   "game mode"
// @Param        data      formData  string  true   "event date"
// @Param        image     formData  file    false  "image"
// @Success      201  {array}   domain.Tournament
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/tournaments [post]
// @Security BearerAuth
func (h *TournamentHandler) HandleCreateTournament(ctx *gin.Context) {
	form := request.TournamentForm{
		Titolo:   ctx.PostForm("titolo"),
		Modalita: ctx.PostForm("modalita"),
		Data:     ctx.PostForm("data"),
	}
	if err := form.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	// Optional image; FormFile errors only when the part is present but broken.
	image, _ := ctx.FormFile("image")

	created, err := h.svc.CreateTournament(ctx.Request.Context(), domain.Tournament{
		Titolo:   form.Titolo,
		Modalita: form.Modalita,
		Data:     form.Data,
	}, image)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateTournament -> h.svc.CreateTournament -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	// The client consumes a one-element array here.
	ctx.JSON(http.StatusCreated, []domain.Tournament{created})
}

// HandleUpdateTournament godoc
// @Summary      Update a tournament
// @Description  Replacing the image removes the previously stored file
// @Tags         tournaments
// @Accept       multipart/form-data
// @Produce      json
// @Param        torneoID  path      string  true   "tournament ID"
// @Param        titolo    formData  string  true   "title"
// @Param        modalita  formData  string  true   "game mode"
// @Param        data      formData  string  true   "event date"
// @Param        image     formData  file    false  "image"
// @Success      200  {object}  domain.Tournament
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/tournaments/{torneoID} [put]
// @Security BearerAuth
func (h *TournamentHandler) HandleUpdateTournament(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("torneoID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("tournament ID must be a valid UUID")))
		return
	}

	form := request.TournamentForm{
		Titolo:   ctx.PostForm("titolo"),
		Modalita: ctx.PostForm("modalita"),
		Data:     ctx.PostForm("data"),
	}
	if err = form.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	image, _ := ctx.FormFile("image")

	updated, err := h.svc.UpdateTournament(ctx.Request.Context(), id, domain.Tournament{
		Titolo:   form.Titolo,
		Modalita: form.Modalita,
		Data:     form.Data,
	}, image)
	if err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateTournament -> h.svc.UpdateTournament -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteTournament godoc
// @Summary      Delete a tournament and its image
// @Tags         tournaments
// @Produce      json
// @Param        torneoID  path  string  true  "tournament ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/tournaments/{torneoID} [delete]
// @Security BearerAuth
func (h *TournamentHandler) HandleDeleteTournament(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("torneoID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("tournament ID must be a valid UUID")))
		return
	}

	if err = h.svc.DeleteTournament(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteTournament -> h.svc.DeleteTournament -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "tournament deleted"})
}
