package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/domain/repository"
	"francheasy/internal/domain/service"
	"francheasy/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test fakes ---

type fakeProofGenerator struct {
	proof *entity.PKCEProof
	err   error
}

func (g *fakeProofGenerator) NewProof() (*entity.PKCEProof, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.proof != nil {
		return g.proof, nil
	}
	return &entity.PKCEProof{Verifier: "test-verifier", Challenge: "test-challenge"}, nil
}

type fakeProofStore struct {
	mu     sync.Mutex
	proofs map[string]*entity.PKCEProof
}

func newFakeProofStore() *fakeProofStore {
	return &fakeProofStore{proofs: make(map[string]*entity.PKCEProof)}
}

func (s *fakeProofStore) Store(_ context.Context, sessionID string, proof *entity.PKCEProof) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proofs[sessionID] = proof
	return nil
}

func (s *fakeProofStore) Consume(_ context.Context, sessionID string) (*entity.PKCEProof, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	proof, ok := s.proofs[sessionID]
	if !ok {
		return nil, service.ErrProofNotFound
	}
	delete(s.proofs, sessionID)
	return proof, nil
}

type fakeProvider struct {
	mu            sync.Mutex
	exchangeCalls int
	lastVerifier  string
	lastDeviceID  string
	exchangeErr   error
	profileErr    error
	profileID     string
	profileRaw    []byte
}

func (p *fakeProvider) BuildAuthorizationURL(state, challenge string) string {
	return fmt.Sprintf("https://id.vk.com/auth?state=%s&code_challenge=%s", state, challenge)
}

func (p *fakeProvider) Exchange(_ context.Context, code, verifier, deviceID string) (*service.ProviderToken, error) {
	p.mu.Lock()
	p.exchangeCalls++
	p.lastVerifier = verifier
	p.lastDeviceID = deviceID
	p.mu.Unlock()

	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return &service.ProviderToken{AccessToken: "vk-token", UserID: 777}, nil
}

func (p *fakeProvider) FetchProfile(_ context.Context, _ *service.ProviderToken) (*service.ProviderProfile, error) {
	if p.profileErr != nil {
		return nil, p.profileErr
	}
	id := p.profileID
	if id == "" {
		id = "777"
	}
	raw := p.profileRaw
	if raw == nil {
		raw = []byte(`{"id":777,"first_name":"Ivan"}`)
	}
	return &service.ProviderProfile{
		ID:        id,
		FirstName: "Ivan",
		Raw:       raw,
	}, nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	byVKID  map[string]*entity.User
	byID    map[uuid.UUID]*entity.User
	failTog bool // when set, the next Create reports a unique violation once
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byVKID: make(map[string]*entity.User),
		byID:   make(map[uuid.UUID]*entity.User),
	}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.byID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByVKID(_ context.Context, vkID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.byVKID[vkID]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failTog {
		r.failTog = false
		// Simulate a concurrent insert winning the unique vk_id race
		winner := &entity.User{ID: uuid.New(), VKID: user.VKID, VKProfile: user.VKProfile}
		r.byVKID[winner.VKID] = winner
		r.byID[winner.ID] = winner
		return domainerrors.ErrConflict.WrapMessage("vk id already linked")
	}
	if _, exists := r.byVKID[user.VKID]; exists {
		return domainerrors.ErrConflict.WrapMessage("vk id already linked")
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.byVKID[user.VKID] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	r.byID[user.ID] = user
	r.byVKID[user.VKID] = user
	return nil
}

// fakeTxManager runs the callback without a real database transaction.
type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

// fakeRepoFactory hands out whichever fakes the test wired in.
type fakeRepoFactory struct {
	users        repository.UserRepository
	francheasies repository.FrancheasyRepository
	stores       repository.StoreRepository
	povilions    repository.PovilionRepository
	businesses   repository.BusinessRepository
	requests     repository.BusinessRequestRepository
}

func (f *fakeRepoFactory) NewUserRepository() repository.UserRepository             { return f.users }
func (f *fakeRepoFactory) NewFrancheasyRepository() repository.FrancheasyRepository { return f.francheasies }
func (f *fakeRepoFactory) NewStoreRepository() repository.StoreRepository           { return f.stores }
func (f *fakeRepoFactory) NewPovilionRepository() repository.PovilionRepository     { return f.povilions }
func (f *fakeRepoFactory) NewBusinessRepository() repository.BusinessRepository     { return f.businesses }
func (f *fakeRepoFactory) NewBusinessRequestRepository() repository.BusinessRequestRepository {
	return f.requests
}

// fakeTokenService issues deterministic tokens without real signing.
type fakeTokenService struct{}

func (fakeTokenService) GenerateTokens(userID uuid.UUID) (string, string, error) {
	return "access-" + userID.String(), "refresh-" + userID.String(), nil
}

func (fakeTokenService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return "access-" + userID.String(), nil
}

func (fakeTokenService) ValidateAccessToken(token string) (*service.Claims, error) {
	return parseFakeToken(token, "access-")
}

func (fakeTokenService) ValidateRefreshToken(token string) (*service.Claims, error) {
	return parseFakeToken(token, "refresh-")
}

func (fakeTokenService) GetRefreshTokenDuration() time.Duration { return time.Hour }

func parseFakeToken(token, prefix string) (*service.Claims, error) {
	if !strings.HasPrefix(token, prefix) {
		return nil, service.ErrTokenInvalid
	}
	id, err := uuid.Parse(strings.TrimPrefix(token, prefix))
	if err != nil {
		return nil, service.ErrTokenInvalid
	}
	return &service.Claims{UserID: id, RegisteredClaims: jwt.RegisteredClaims{}}, nil
}

type fakeQRService struct{}

func (fakeQRService) EncodeURL(url string) ([]byte, error) {
	return []byte("png:" + url), nil
}

// --- Harness ---

type authFixture struct {
	svc        usecase.AuthUsecase
	users      *fakeUserRepo
	proofStore *fakeProofStore
	provider   *fakeProvider
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	proofStore := newFakeProofStore()
	provider := &fakeProvider{}

	svc := NewAuthService(AuthServiceParams{
		TxManager:      &fakeTxManager{factory: &fakeRepoFactory{users: users}},
		UserRepo:       users,
		ProofGenerator: &fakeProofGenerator{},
		ProofStore:     proofStore,
		Provider:       provider,
		TokenService:   fakeTokenService{},
		QRService:      fakeQRService{},
		Logger:         slog.Default(),
	})

	return &authFixture{svc: svc, users: users, proofStore: proofStore, provider: provider}
}

func (f *authFixture) beginLogin(t *testing.T) *usecase.LoginRedirect {
	t.Helper()
	redirect, err := f.svc.BeginLogin(context.Background())
	require.NoError(t, err)
	return redirect
}

// --- Tests ---

func TestAuthService_BeginLogin(t *testing.T) {
	f := newAuthFixture()

	redirect := f.beginLogin(t)
	assert.NotEmpty(t, redirect.SessionID)
	assert.Contains(t, redirect.AuthURL, "state="+redirect.SessionID)
	assert.Contains(t, redirect.AuthURL, "code_challenge=test-challenge")

	// The proof must be retrievable under the session id
	proof, err := f.proofStore.Consume(context.Background(), redirect.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "test-verifier", proof.Verifier)
}

func TestAuthService_LoginQR(t *testing.T) {
	f := newAuthFixture()

	png, err := f.svc.LoginQR(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "png:https://id.vk.com/auth"))
}

func TestAuthService_HandleCallback_NewUser(t *testing.T) {
	f := newAuthFixture()
	redirect := f.beginLogin(t)

	pair, err := f.svc.HandleCallback(context.Background(), usecase.CallbackInput{
		Code:     "auth-code",
		State:    redirect.SessionID,
		DeviceID: "device-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// The stored verifier, not the challenge, must reach the exchange
	assert.Equal(t, "test-verifier", f.provider.lastVerifier)
	assert.Equal(t, "device-1", f.provider.lastDeviceID)

	// A local user is linked to the VK id
	user, err := f.users.FindByVKID(context.Background(), "777")
	require.NoError(t, err)
	assert.Equal(t, "access-"+user.ID.String(), pair.AccessToken)
}

func TestAuthService_HandleCallback_ReturningUser(t *testing.T) {
	f := newAuthFixture()

	// First sign-in creates the user
	redirect := f.beginLogin(t)
	_, err := f.svc.HandleCallback(context.Background(), usecase.CallbackInput{Code: "c1", State: redirect.SessionID})
	require.NoError(t, err)

	first, err := f.users.FindByVKID(context.Background(), "777")
	require.NoError(t, err)

	// Second sign-in resolves to the same local user
	redirect = f.beginLogin(t)
	_, err = f.svc.HandleCallback(context.Background(), usecase.CallbackInput{Code: "c2", State: redirect.SessionID})
	require.NoError(t, err)

	second, err := f.users.FindByVKID(context.Background(), "777")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestAuthService_HandleCallback_ReturningUserProfileIsOverwritten(t *testing.T) {
	f := newAuthFixture()

	redirect := f.beginLogin(t)
	_, err := f.svc.HandleCallback(context.Background(), usecase.CallbackInput{Code: "c1", State: redirect.SessionID})
	require.NoError(t, err)

	first, err := f.users.FindByVKID(context.Background(), "777")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":777,"first_name":"Ivan"}`, string(first.VKProfile))

	// VK returns a changed profile on the next sign-in
	f.provider.profileRaw = []byte(`{"id":777,"first_name":"Ivan","last_name":"Petrov"}`)

	redirect = f.beginLogin(t)
	_, err = f.svc.HandleCallback(context.Background(), usecase.CallbackInput{Code: "c2", State: redirect.SessionID})
	require.NoError(t, err)

	second, err := f.users.FindByVKID(context.Background(), "777")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.JSONEq(t, `{"id":777,"first_name":"Ivan","last_name":"Petrov"}`, string(second.VKProfile))
}

func TestAuthService_HandleCallback_UnknownState(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.HandleCallback(context.Background(), usecase.CallbackInput{Code: "code", State: "never-issued"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidState)

	// The provider must never be contacted for an invalid state
	assert.Equal(t, 0, f.provider.exchangeCalls)
}

func TestAuthService_HandleCallback_MissingParams(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.HandleCallback(context.Background(), usecase.CallbackInput{State: "s"})
	assert.Error(t, err)

	_, err = f.svc.HandleCallback(context.Background(), usecase.CallbackInput{Code: "c"})
	assert.Error(t, err)
}

func TestAuthService_HandleCallback_StateIsSingleUse(t *testing.T) {
	f := newAuthFixture()
	redirect := f.beginLogin(t)

	input := usecase.CallbackInput{Code: "code", State: redirect.SessionID}

	_, err := f.svc.HandleCallback(context.Background(), input)
	require.NoError(t, err)

	_, err = f.svc.HandleCallback(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidState)
	assert.Equal(t, 1, f.provider.exchangeCalls)
}

func TestAuthService_HandleCallback_ProofConsumedEvenWhenExchangeFails(t *testing.T) {
	f := newAuthFixture()
	f.provider.exchangeErr = service.ErrProviderRejected

	redirect := f.beginLogin(t)
	input := usecase.CallbackInput{Code: "bad-code", State: redirect.SessionID}

	_, err := f.svc.HandleCallback(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrProviderError)

	// The proof was burned before the exchange, so a retry hits the state check
	_, err = f.svc.HandleCallback(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidState)
}

func TestAuthService_HandleCallback_ProviderUnavailable(t *testing.T) {
	f := newAuthFixture()
	f.provider.exchangeErr = service.ErrProviderUnavailable

	redirect := f.beginLogin(t)
	_, err := f.svc.HandleCallback(context.Background(), usecase.CallbackInput{Code: "c", State: redirect.SessionID})
	assert.ErrorIs(t, err, domainerrors.ErrProviderUnavailable)
}

func TestAuthService_HandleCallback_ProfileWithoutID(t *testing.T) {
	f := newAuthFixture()
	f.provider.profileID = "0"

	redirect := f.beginLogin(t)
	_, err := f.svc.HandleCallback(context.Background(), usecase.CallbackInput{Code: "c", State: redirect.SessionID})
	assert.ErrorIs(t, err, domainerrors.ErrProviderError)
}

func TestAuthService_HandleCallback_ConcurrentLinkRace(t *testing.T) {
	f := newAuthFixture()
	f.users.failTog = true

	redirect := f.beginLogin(t)
	pair, err := f.svc.HandleCallback(context.Background(), usecase.CallbackInput{Code: "c", State: redirect.SessionID})
	require.NoError(t, err)

	// The loser of the insert race resolves to the winner's user
	winner, err := f.users.FindByVKID(context.Background(), "777")
	require.NoError(t, err)
	assert.Equal(t, "access-"+winner.ID.String(), pair.AccessToken)
}

func TestAuthService_Refresh(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()
	refreshToken := "refresh-" + userID.String()

	pair, err := f.svc.Refresh(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "access-"+userID.String(), pair.AccessToken)
	assert.Equal(t, refreshToken, pair.RefreshToken, "refresh token is echoed back unchanged")
	assert.Equal(t, "bearer", pair.TokenType)
}

func TestAuthService_Refresh_RejectsInvalidTokens(t *testing.T) {
	f := newAuthFixture()

	for _, token := range []string{"", "garbage", "access-" + uuid.NewString()} {
		_, err := f.svc.Refresh(context.Background(), token)
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated, "token %q", token)
	}
}

func TestAuthService_GetProfile(t *testing.T) {
	f := newAuthFixture()

	user := &entity.User{VKID: "42", VKProfile: []byte(`{"id":42}`)}
	require.NoError(t, f.users.Create(context.Background(), user))

	got, err := f.svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "42", got.VKID)

	_, err = f.svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
