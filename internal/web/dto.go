package web

import (
	"github.com/goserg/rosterserver/internal/domain"
)

type playerResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Team       string  `json:"team"`
	Position   string  `json:"position"`
	BattingAvg float64 `json:"batting_avg"`
	Bio        string  `json:"bio"`
}

func convertPlayer(p domain.Player) playerResponse {
	return playerResponse{
		ID:         p.ID,
		Name:       p.Name,
		Team:       p.Team,
		Position:   p.Position,
		BattingAvg: p.RoundedBattingAvg(),
		Bio:        p.Bio,
	}
}

func convertPlayers(players []domain.Player) []playerResponse {
	converted := make([]playerResponse, 0, len(players))
	for _, p := range players {
		converted = append(converted, convertPlayer(p))
	}
	return converted
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code,omitempty"`
	Fields    []string `json:"fields,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}
