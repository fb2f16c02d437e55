package mem

import (
	"context"
	"sort"
	"sync"

	"github.com/goserg/rosterserver/internal/domain"
	"github.com/goserg/rosterserver/internal/normalize"
	"github.com/goserg/rosterserver/internal/storage"
)

// Storage keeps players in process memory. It is used by tests and by the
// "memory" storage driver.
type Storage struct {
	mu      sync.RWMutex
	lastID  int64
	players map[int64]domain.Player
	names   map[string]int64
}

var _ storage.PlayerStorage = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		players: make(map[int64]domain.Player),
		names:   make(map[string]int64),
	}
}

func (s *Storage) ListPlayers(_ context.Context) ([]domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]domain.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, player)
	}
	sort.SliceStable(players, func(i, j int) bool {
		ki, kj := normalize.Name(players[i].Name), normalize.Name(players[j].Name)
		if ki != kj {
			return ki < kj
		}
		return players[i].ID < players[j].ID
	})
	return players, nil
}

func (s *Storage) Get(_ context.Context, id int64) (domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return domain.Player{}, domain.ErrNotFound
	}
	return player, nil
}

func (s *Storage) Create(_ context.Context, player domain.Player) (domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalize.Name(player.Name)
	if _, ok := s.names[key]; ok {
		return domain.Player{}, domain.ErrDuplicateName
	}
	s.lastID++
	player.ID = s.lastID
	s.players[player.ID] = player
	s.names[key] = player.ID
	return player, nil
}

func (s *Storage) Update(_ context.Context, id int64, apply func(*domain.Player)) (domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.players[id]
	if !ok {
		return domain.Player{}, domain.ErrNotFound
	}
	updated := old
	apply(&updated)
	updated.ID = id

	oldKey, newKey := normalize.Name(old.Name), normalize.Name(updated.Name)
	if owner, ok := s.names[newKey]; ok && owner != id {
		return domain.Player{}, domain.ErrDuplicateName
	}
	delete(s.names, oldKey)
	s.names[newKey] = id
	s.players[id] = updated
	return updated, nil
}

func (s *Storage) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.names, normalize.Name(player.Name))
	delete(s.players, id)
	return nil
}

func (s *Storage) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players), nil
}

func (s *Storage) Close() error {
	return nil
}
