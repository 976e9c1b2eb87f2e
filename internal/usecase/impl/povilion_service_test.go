package impl

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/domain/repository"
	"francheasy/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePovilionRepo struct {
	mu        sync.Mutex
	povilions map[uuid.UUID]*entity.Povilion
}

func newFakePovilionRepo() *fakePovilionRepo {
	return &fakePovilionRepo{povilions: make(map[uuid.UUID]*entity.Povilion)}
}

func (r *fakePovilionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Povilion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if povilion, ok := r.povilions[id]; ok {
		clone := *povilion
		return &clone, nil
	}
	return nil, repository.ErrPovilionNotFound
}

func (r *fakePovilionRepo) FindAll(_ context.Context) ([]*entity.Povilion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Povilion, 0, len(r.povilions))
	for _, povilion := range r.povilions {
		clone := *povilion
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakePovilionRepo) FindByStore(_ context.Context, storeID uuid.UUID) ([]*entity.Povilion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Povilion, 0)
	for _, povilion := range r.povilions {
		if povilion.StoreID == storeID {
			clone := *povilion
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakePovilionRepo) Create(_ context.Context, povilion *entity.Povilion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	povilion.ID = uuid.New()
	povilion.CreatedAt = time.Now()
	clone := *povilion
	r.povilions[povilion.ID] = &clone
	return nil
}

func (r *fakePovilionRepo) Update(_ context.Context, povilion *entity.Povilion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.povilions[povilion.ID]; !ok {
		return repository.ErrPovilionNotFound
	}
	clone := *povilion
	r.povilions[povilion.ID] = &clone
	return nil
}

func (r *fakePovilionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.povilions[id]; !ok {
		return repository.ErrPovilionNotFound
	}
	delete(r.povilions, id)
	return nil
}

type povilionFixture struct {
	svc       usecase.PovilionUsecase
	repo      *fakePovilionRepo
	storeRepo *fakeStoreRepo
	storeID   uuid.UUID
}

func newPovilionFixture(t *testing.T) *povilionFixture {
	t.Helper()
	repo := newFakePovilionRepo()
	storeRepo := newFakeStoreRepo()

	store := &entity.Store{Title: "Host", Latitude: 55.75, Longitude: 37.61}
	require.NoError(t, storeRepo.Create(context.Background(), store))

	svc := NewPovilionService(PovilionServiceParams{
		PovilionRepo: repo,
		StoreRepo:    storeRepo,
		Logger:       slog.Default(),
	})

	return &povilionFixture{svc: svc, repo: repo, storeRepo: storeRepo, storeID: store.ID}
}

func TestPovilionService_Create(t *testing.T) {
	f := newPovilionFixture(t)
	ownerID := uuid.New()

	povilion, err := f.svc.Create(context.Background(), ownerID, usecase.CreatePovilionInput{
		StoreID: f.storeID,
		Title:   "Kiosk 1",
		Price:   15000,
	})
	require.NoError(t, err)
	assert.Equal(t, ownerID, povilion.UserID)
	assert.Equal(t, f.storeID, povilion.StoreID)
}

func TestPovilionService_Create_Guards(t *testing.T) {
	f := newPovilionFixture(t)

	_, err := f.svc.Create(context.Background(), uuid.New(), usecase.CreatePovilionInput{StoreID: f.storeID})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = f.svc.Create(context.Background(), uuid.New(), usecase.CreatePovilionInput{Title: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = f.svc.Create(context.Background(), uuid.New(), usecase.CreatePovilionInput{Title: "x", StoreID: uuid.New()})
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestPovilionService_ListByStore(t *testing.T) {
	f := newPovilionFixture(t)
	ownerID := uuid.New()

	for _, title := range []string{"Kiosk 1", "Kiosk 2"} {
		_, err := f.svc.Create(context.Background(), ownerID, usecase.CreatePovilionInput{
			StoreID: f.storeID,
			Title:   title,
		})
		require.NoError(t, err)
	}

	povilions, err := f.svc.ListByStore(context.Background(), f.storeID)
	require.NoError(t, err)
	assert.Len(t, povilions, 2)

	_, err = f.svc.ListByStore(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestPovilionService_UpdateDelete_OwnerOnly(t *testing.T) {
	f := newPovilionFixture(t)
	ownerID := uuid.New()

	povilion, err := f.svc.Create(context.Background(), ownerID, usecase.CreatePovilionInput{
		StoreID: f.storeID,
		Title:   "Kiosk 1",
		Price:   15000,
	})
	require.NoError(t, err)

	input := usecase.UpdatePovilionInput{Title: "Kiosk A", Price: 18000}

	_, err = f.svc.Update(context.Background(), uuid.New(), povilion.ID, input)
	assert.ErrorIs(t, err, domainerrors.ErrOwnershipViolation)

	updated, err := f.svc.Update(context.Background(), ownerID, povilion.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Kiosk A", updated.Title)
	assert.InDelta(t, 18000, updated.Price, 0.001)

	err = f.svc.Delete(context.Background(), uuid.New(), povilion.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOwnershipViolation)

	require.NoError(t, f.svc.Delete(context.Background(), ownerID, povilion.ID))

	_, err = f.svc.Update(context.Background(), ownerID, povilion.ID, input)
	assert.ErrorIs(t, err, domainerrors.ErrPovilionNotFound)
}
