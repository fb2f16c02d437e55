package sqlite

import (
	"github.com/goserg/rosterserver/gen/model"
	"github.com/goserg/rosterserver/internal/domain"
	"github.com/goserg/rosterserver/internal/normalize"
)

func convertPlayersToDomain(players []model.Players) []domain.Player {
	converted := make([]domain.Player, 0, len(players))
	for _, player := range players {
		converted = append(converted, convertPlayerToDomain(player))
	}
	return converted
}

func convertPlayerToDomain(player model.Players) domain.Player {
	return domain.Player{
		ID:         player.ID,
		Name:       player.Name,
		Team:       player.Team,
		Position:   player.Position,
		BattingAvg: player.BattingAvg,
		Bio:        player.Bio,
	}
}

func convertPlayerFromDomain(player domain.Player) model.Players {
	return model.Players{
		ID:         player.ID,
		Name:       player.Name,
		NameKey:    normalize.Name(player.Name),
		Team:       player.Team,
		Position:   player.Position,
		BattingAvg: player.BattingAvg,
		Bio:        player.Bio,
	}
}
