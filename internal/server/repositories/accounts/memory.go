package accounts

import (
	"context"
	"sort"
	"sync"

	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory. Documents are copied
// on the way in and out so callers never share state with the store.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.Account
	byEmail map[string]string
	newID   func() string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.Account),
		byEmail: make(map[string]string),
		newID:   uuid.NewString,
	}
}

func cloneAccount(a *models.Account) *models.Account {
	cp := *a
	cp.Schema = a.Schema.Clone()
	return &cp
}

func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.ErrorConflict
	}

	stored := cloneAccount(account)
	stored.ID = r.newID()
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID

	return cloneAccount(stored), nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneAccount(r.byID[id]), nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Account, 0, len(r.byID))
	for _, a := range r.byID {
		result = append(result, cloneAccount(a))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) UpdateSchema(ctx context.Context, id string, schema fields.Map) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.Schema = schema.Clone()
	return nil
}

func (r *MemoryRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.byID))
	r.byID = make(map[string]*models.Account)
	r.byEmail = make(map[string]string)
	return n, nil
}
