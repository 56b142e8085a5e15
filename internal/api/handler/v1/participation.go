package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/torneohub/torneo-api/internal/api/handler/v1/request"
	"github.com/torneohub/torneo-api/internal/api/handler/v1/response"
	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/service"
)

type ParticipationService interface {
	CheckEnrollment(ctx context.Context, torneoID, utenteID uuid.UUID) (service.Enrollment, error)
	Enroll(ctx context.Context, torneoID, utenteID uuid.UUID, enrolledAt time.Time) (domain.Participant, error)
	ListParticipants(ctx context.Context, torneoID uuid.UUID) ([]domain.Participant, error)
}

type ParticipationHandler struct {
	svc ParticipationService
}

func NewParticipationHandler(svc ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{
		svc: svc,
	}
}

// HandleListParticipants godoc
// @Summary      List a tournament's participants
// @Description  Joined with user display fields, in enrollment order
// @Tags         participations
// @Produce      json
// @Param        torneoID   path   string   true   "tournament ID"
// @Success      200  {array}   domain.Participant
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/partecipanti/{torneoID} [get]
// @Security BearerAuth
func (h *ParticipationHandler) HandleListParticipants(ctx *gin.Context) {
	torneoID, err := uuid.Parse(ctx.Param("torneoID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("tournament ID must be a valid UUID")))
		return
	}

	participants, err := h.svc.ListParticipants(ctx.Request.Context(), torneoID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListParticipants -> h.svc.ListParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participants)
}

// HandleEnroll godoc
// @Summary      Enroll a user into a tournament
// @Description  The participation stores a snapshot of the user's score
// @Tags         participations
// @Produce      json
// @Param        torneoID   path   string                  true   "tournament ID"
// @Param        request    body   request.EnrollRequest   true   "request body"
// @Success      201  {object}  domain.Participant
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/partecipazioni/{torneoID} [post]
// @Security BearerAuth
func (h *ParticipationHandler) HandleEnroll(ctx *gin.Context) {
	torneoID, err := uuid.Parse(ctx.Param("torneoID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("tournament ID must be a valid UUID")))
		return
	}

	var req request.EnrollRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	// The path parameter is authoritative. A body naming a different
	// tournament is a malformed request, not a second target.
	if bodyID, parseErr := uuid.Parse(req.TorneoID); parseErr != nil || bodyID != torneoID {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("torneo_id in the body does not match the path")))
		return
	}

	utenteID, err := uuid.Parse(req.UtenteID)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("utente_id must be a valid UUID")))
		return
	}

	participant, err := h.svc.Enroll(ctx.Request.Context(), torneoID, utenteID, req.EnrolledAt())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", utenteID))
			return
		}
		if errors.Is(err, service.ErrAlreadyEnrolled) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyEnrolled))
			return
		}

		err = fmt.Errorf("v1.HandleEnroll -> h.svc.Enroll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, participant)
}

// HandleCheckEnrollment godoc
// @Summary      Check whether a user is enrolled in a tournament
// @Tags         participations
// @Produce      json
// @Param        torneoID   path   string   true   "tournament ID"
// @Param        userID     path   string   true   "user ID"
// @Success      200  {object}  response.EnrollmentResponse
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /api/partecipazioni/{torneoID}/utente/{userID} [get]
// @Security BearerAuth
func (h *ParticipationHandler) HandleCheckEnrollment(ctx *gin.Context) {
	torneoID, err := uuid.Parse(ctx.Param("torneoID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("tournament ID must be a valid UUID")))
		return
	}

	utenteID, err := uuid.Parse(ctx.Param("userID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("user ID must be a valid UUID")))
		return
	}

	enrollment, err := h.svc.CheckEnrollment(ctx.Request.Context(), torneoID, utenteID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckEnrollment -> h.svc.CheckEnrollment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	message := "not enrolled"
	if enrollment.Iscrizione {
		message = "enrolled"
	}

	ctx.JSON(http.StatusOK, response.EnrollmentResponse{
		Iscrizione: enrollment.Iscrizione,
		Punteggio:  enrollment.Punteggio,
		Message:    message,
	})
}
