package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	logger "github.com/beka-birhanu/vinom-common/log"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) general_i.Logger {
	t.Helper()
	l, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)
	return l
}

type memStore struct {
	records map[uuid.UUID]game.Record
	locks   map[uuid.UUID]*sync.Mutex
	saveErr error
	mu      sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		records: make(map[uuid.UUID]game.Record),
		locks:   make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *memStore) Load(_ context.Context, playerID uuid.UUID) (*game.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[playerID]
	if !ok {
		return nil, i.ErrSessionNotFound
	}
	return &r, nil
}

func (s *memStore) Save(_ context.Context, playerID uuid.UUID, record game.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[playerID] = record
	return nil
}

func (s *memStore) Lock(_ context.Context, playerID uuid.UUID) (func(), error) {
	s.mu.Lock()
	l, ok := s.locks[playerID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[playerID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock, nil
}

type memRuns struct {
	runs map[uuid.UUID][]game.SolvedRun
	sync.Mutex
}

func (r *memRuns) Add(_ context.Context, playerID uuid.UUID, run game.SolvedRun) error {
	r.Lock()
	defer r.Unlock()
	if r.runs == nil {
		r.runs = make(map[uuid.UUID][]game.SolvedRun)
	}
	r.runs[playerID] = append([]game.SolvedRun{run}, r.runs[playerID]...)
	return nil
}

func (r *memRuns) ByPlayer(_ context.Context, playerID uuid.UUID, limit int64) ([]game.SolvedRun, error) {
	r.Lock()
	defer r.Unlock()
	runs := r.runs[playerID]
	if int64(len(runs)) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

type memLeaderboard struct {
	scores map[string]float64
	sync.Mutex
}

func (l *memLeaderboard) Increment(_ context.Context, member string, by float64) error {
	l.Lock()
	defer l.Unlock()
	if l.scores == nil {
		l.scores = make(map[string]float64)
	}
	l.scores[member] += by
	return nil
}

func (l *memLeaderboard) Top(_ context.Context, n int64) ([]i.Score, error) {
	l.Lock()
	defer l.Unlock()
	var out []i.Score
	for m, s := range l.scores {
		out = append(out, i.Score{Member: m, Score: s})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	if int64(len(out)) > n {
		out = out[:n]
	}
	return out, nil
}

var errUserNotFound = errors.New("user not found")

type memUsers struct {
	users map[uuid.UUID]*identity.User
	sync.Mutex
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[uuid.UUID]*identity.User)}
}

func (u *memUsers) Save(user *identity.User) error {
	u.Lock()
	defer u.Unlock()
	u.users[user.ID] = user
	return nil
}

func (u *memUsers) ByID(id uuid.UUID) (*identity.User, error) {
	u.Lock()
	defer u.Unlock()
	user, ok := u.users[id]
	if !ok {
		return nil, errUserNotFound
	}
	return user, nil
}

func (u *memUsers) ByUsername(username string) (*identity.User, error) {
	u.Lock()
	defer u.Unlock()
	for _, user := range u.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, errUserNotFound
}

type stubTokenizer struct {
	claims map[string]interface{}
	ttl    time.Duration
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, ttl time.Duration) (string, error) {
	s.claims = claims
	s.ttl = ttl
	return "signed-token", nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.claims, nil
}
