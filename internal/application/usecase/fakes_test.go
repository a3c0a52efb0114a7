package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

// fakeStorage guarda nombres en memoria. Rechaza archivos cuyo nombre empiece con "bad".
type fakeStorage struct {
	mu      sync.Mutex
	seq     int
	saved   map[string]bool
	removed []string
}

func newFakeStorage() *fakeStorage { return &fakeStorage{saved: map[string]bool{}} }

func (f *fakeStorage) Save(_ context.Context, file *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(file.Filename) >= 3 && file.Filename[:3] == "bad" {
		return "", domain.ErrInvalidImageType
	}
	f.seq++
	name := fmt.Sprintf("%s-%d.png", file.Filename, f.seq)
	f.saved[name] = true
	return name, nil
}

func (f *fakeStorage) Remove(filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, filename)
	if !f.saved[filename] {
		return errors.New("no existe")
	}
	delete(f.saved, filename)
	return nil
}

func (f *fakeStorage) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func file(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 10}
}

func seedCategory(t *testing.T, store *memory.Store, name string) string {
	t.Helper()
	now := time.Now().UTC()
	c := &entity.Category{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Categories().Create(context.Background(), c))
	return c.ID
}
