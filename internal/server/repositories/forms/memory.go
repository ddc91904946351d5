package forms

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/google/uuid"
)

type memoryForm struct {
	form *models.FormRecord
	seq  int64
}

// MemoryRepository keeps form records in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]memoryForm
	seq   int64
	newID func() string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:  make(map[string]memoryForm),
		newID: uuid.NewString,
	}
}

func cloneForm(f *models.FormRecord) *models.FormRecord {
	cp := *f
	cp.Values = f.Values.Clone()
	return &cp
}

func (r *MemoryRepository) Create(ctx context.Context, form *models.FormRecord) (*models.FormRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneForm(form)
	stored.ID = r.newID()
	r.seq++
	r.byID[stored.ID] = memoryForm{form: stored, seq: r.seq}

	return cloneForm(stored), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.FormRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneForm(item.form), nil
}

func (r *MemoryRepository) ListByAccount(ctx context.Context, accountID, formType string) ([]*models.FormRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]memoryForm, 0)
	for _, item := range r.byID {
		if item.form.AccountID != accountID {
			continue
		}
		if formType != "" && item.form.FormType != formType {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.form.CreatedAt.Equal(b.form.CreatedAt) {
			return a.form.CreatedAt.After(b.form.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]*models.FormRecord, len(matched))
	for i, item := range matched {
		result[i] = cloneForm(item.form)
	}
	return result, nil
}

func (r *MemoryRepository) ReplaceValues(ctx context.Context, id string, values fields.Map, updatedAt time.Time) (*models.FormRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	item.form.Values = values.Clone()
	item.form.UpdatedAt = updatedAt
	return cloneForm(item.form), nil
}
