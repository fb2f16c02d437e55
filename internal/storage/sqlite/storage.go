package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/goserg/rosterserver/gen/model"
	"github.com/goserg/rosterserver/gen/table"
	"github.com/goserg/rosterserver/internal/domain"
	migrate "github.com/goserg/rosterserver/internal/migrate"
	"github.com/goserg/rosterserver/internal/storage"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.PlayerStorage = (*Storage)(nil)

func New(l *logrus.Logger, fileName string) (*Storage, error) {
	log := l.WithFields(logrus.Fields{
		"from": "player-storage",
	})
	db, err := sql.Open("sqlite3", buildSource(fileName))
	if err != nil {
		return nil, err
	}
	// one connection: writers are serialized, name_key uniqueness is left to the index
	db.SetMaxOpenConns(1)

	err = migrate.UpServerDB(db)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	err = db.Ping()
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	log.WithField("file", fileName).Info("player storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared"
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	var players []model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		ORDER_BY(table.Players.NameKey.ASC(), table.Players.ID.ASC()).
		QueryContext(ctx, s.db, &players)
	if err != nil {
		return nil, err
	}
	return convertPlayersToDomain(players), nil
}

func (s *Storage) Get(ctx context.Context, id int64) (domain.Player, error) {
	return inTx(ctx, s.db, func(tx *sql.Tx) (domain.Player, error) {
		player, err := getPlayer(ctx, tx, id)
		if err != nil {
			return domain.Player{}, err
		}
		return convertPlayerToDomain(player), nil
	})
}

func getPlayer(ctx context.Context, tx *sql.Tx, id int64) (model.Players, error) {
	var player model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		WHERE(table.Players.ID.EQ(sqlite.Int(id))).
		QueryContext(ctx, tx, &player)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return model.Players{}, domain.ErrNotFound
		}
		return model.Players{}, err
	}
	return player, nil
}

func (s *Storage) Create(ctx context.Context, player domain.Player) (domain.Player, error) {
	var created model.Players
	err := table.Players.
		INSERT(table.Players.MutableColumns).
		MODEL(convertPlayerFromDomain(player)).
		RETURNING(table.Players.AllColumns).
		QueryContext(ctx, s.db, &created)
	if err != nil {
		return domain.Player{}, convertError(err)
	}
	s.log.WithFields(logrus.Fields{"id": created.ID, "name": created.Name}).Debug("player created")
	return convertPlayerToDomain(created), nil
}

func (s *Storage) Update(ctx context.Context, id int64, apply func(*domain.Player)) (domain.Player, error) {
	return inTx(ctx, s.db, func(tx *sql.Tx) (domain.Player, error) {
		current, err := getPlayer(ctx, tx, id)
		if err != nil {
			return domain.Player{}, err
		}
		player := convertPlayerToDomain(current)
		apply(&player)
		player.ID = id

		var updated model.Players
		err = table.Players.
			UPDATE(table.Players.MutableColumns).
			MODEL(convertPlayerFromDomain(player)).
			WHERE(table.Players.ID.EQ(sqlite.Int(id))).
			RETURNING(table.Players.AllColumns).
			QueryContext(ctx, tx, &updated)
		if err != nil {
			return domain.Player{}, convertError(err)
		}
		return convertPlayerToDomain(updated), nil
	})
}

func (s *Storage) Delete(ctx context.Context, id int64) error {
	res, err := table.Players.
		DELETE().
		WHERE(table.Players.ID.EQ(sqlite.Int(id))).
		ExecContext(ctx, s.db)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Storage) Count(ctx context.Context) (int, error) {
	query, args := sqlite.
		SELECT(sqlite.COUNT(sqlite.STAR)).
		FROM(table.Players).
		Sql()
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func convertError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return domain.ErrDuplicateName
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrDuplicateName
	}
	return err
}

func inTx[T any](ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) (T, error)) (T, error) {
	var zero T
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	value, err := fn(tx)
	if err != nil {
		return zero, errors.Join(err, tx.Rollback())
	}
	return value, tx.Commit()
}
