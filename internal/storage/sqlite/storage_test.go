package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/goserg/rosterserver/internal/domain"
	"github.com/goserg/rosterserver/internal/storage"
	"github.com/goserg/rosterserver/internal/storage/storagetest"
)

func TestStorage(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	dir := t.TempDir()
	var n atomic.Int32
	suite.Run(t, &storagetest.Suite{
		New: func() storage.PlayerStorage {
			file := filepath.Join(dir, "roster"+strconv.Itoa(int(n.Add(1)))+".sqlite")
			s, err := New(l, file)
			require.NoError(t, err)
			return s
		},
	})
}

func TestMigrationsAreIdempotent(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	file := filepath.Join(t.TempDir(), "roster.sqlite")

	s, err := New(l, file)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(l, file)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestLargeIDs(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	s, err := New(l, filepath.Join(t.TempDir(), "roster.sqlite"))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	first, err := s.Create(ctx, domain.Player{Name: "First", Team: "T", Position: "P"})
	require.NoError(t, err)
	const big = int64(3_000_000_000)
	_, err = s.db.ExecContext(ctx, "UPDATE sqlite_sequence SET seq = ? WHERE name = 'players'", big)
	require.NoError(t, err)

	created, err := s.Create(ctx, domain.Player{Name: "Second", Team: "T", Position: "P"})
	require.NoError(t, err)
	assert.Equal(t, big+1, created.ID)
	assert.Greater(t, created.ID, first.ID)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}
