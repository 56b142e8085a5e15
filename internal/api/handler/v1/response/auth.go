package response

import "github.com/torneohub/torneo-api/internal/domain"

type RegisterResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
	Token   string      `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type EnrollmentResponse struct {
	Iscrizione bool   `json:"iscrizione"`
	Punteggio  int    `json:"punteggio"`
	Message    string `json:"message"`
}
