package services

import (
	"context"
	"sync"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uint64]*entities.User
	nextID  uint64
	updated map[uint64]string
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint64]*entities.User{}, updated: map[uint64]string{}, nextID: 100}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && !u.IsDeleted() {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint64) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetActiveUserRole(ctx context.Context, id uint64) (string, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, apperrors.NewConflictError("Email already registered")
		}
	}
	r.nextID++
	cp := *user
	cp.ID = r.nextID
	r.users[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id uint64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.PasswordHash = hash
	r.updated[id] = hash
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return apperrors.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []entities.LoginHistory
	err     error
}

func (r *fakeHistoryRepo) Insert(_ context.Context, entry *entities.LoginHistory) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uint64(len(r.entries) + 1)
	entry.LoginTimestamp = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) GetByUser(_ context.Context, userID uint64, limit int) ([]entities.LoginHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.LoginHistory
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].UserID == userID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]time.Duration
	err  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]time.Duration{}}
}

func (c *fakeCache) Set(_ context.Context, key string, _ interface{}, expiration time.Duration) error {
	if c.err != nil {
		return c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = expiration
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return "1", nil
	}
	return "", nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

// fakeTxManager выполняет fn без транзакции, но последовательно.
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(nil)
}

type fakeStatusRepo struct {
	states  map[uint64]*entities.RequestState
	logs    []entities.RequestStatusLog
	saveErr error
}

func newFakeStatusRepo() *fakeStatusRepo {
	return &fakeStatusRepo{states: map[uint64]*entities.RequestState{}}
}

func (r *fakeStatusRepo) LockState(_ context.Context, _ pgx.Tx, id uint64) (*entities.RequestState, error) {
	s, ok := r.states[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Request not found")
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStatusRepo) SaveState(_ context.Context, _ pgx.Tx, id uint64, state entities.RequestState) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.states[id] = &state
	return nil
}

func (r *fakeStatusRepo) InsertLog(_ context.Context, _ pgx.Tx, entry *entities.RequestStatusLog) error {
	entry.ID = uint64(len(r.logs) + 1)
	entry.ChangedAt = time.Now()
	r.logs = append(r.logs, *entry)
	return nil
}

func (r *fakeStatusRepo) GetHistory(_ context.Context, requestID uint64) ([]dto.StatusHistoryDTO, error) {
	var out []dto.StatusHistoryDTO
	for _, l := range r.logs {
		if l.RequestID == requestID {
			out = append(out, dto.StatusHistoryDTO{ID: l.ID, OldStatus: l.OldStatus, NewStatus: l.NewStatus, ChangedBy: l.ChangedBy})
		}
	}
	return out, nil
}
