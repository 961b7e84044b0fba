package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/redmonkez12/jobs-api/internal/apperr"
	"github.com/redmonkez12/jobs-api/internal/user"
)

type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*user.User
	failGet error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*user.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, name, email, passwordHash string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.byEmail[email]; exists {
		return nil, user.ErrDuplicateEmail
	}
	u := &user.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failGet != nil {
		return nil, f.failGet
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func newTestService(t *testing.T, store UserStore) (*Service, TokenService) {
	t.Helper()
	tokens := newJWT(t, "test-secret", time.Hour)
	svc, err := NewService(store, NewBcryptHasher(bcrypt.MinCost), tokens)
	require.NoError(t, err)
	return svc, tokens
}

func TestService_RegisterThenLogin(t *testing.T) {
	svc, tokens := newTestService(t, newFakeUserStore())
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", registered.User.PasswordHash)

	loggedIn, err := svc.Login(ctx, "ada@x.com", "secret1")
	require.NoError(t, err)

	fromRegister, err := tokens.Verify(registered.Token)
	require.NoError(t, err)
	fromLogin, err := tokens.Verify(loggedIn.Token)
	require.NoError(t, err)

	assert.Equal(t, registered.User.ID, fromRegister.UserID)
	assert.Equal(t, fromRegister.UserID, fromLogin.UserID)
	assert.Equal(t, "Ada", fromLogin.Name)
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc, _ := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "ada@x.com", "secret2")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Len(t, store.byEmail, 1)
}

func TestService_RegisterValidationDoesNotTouchStore(t *testing.T) {
	store := newFakeUserStore()
	svc, _ := newTestService(t, store)

	_, err := svc.Register(context.Background(), "Ada", "ada@x.com", "123")
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	assert.Empty(t, store.byEmail)
}

func TestService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t, newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "ada@x.com", "wrong-pass")
	_, unknownEmail := svc.Login(ctx, "nobody@x.com", "secret1")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, apperr.As(wrongPassword), apperr.As(unknownEmail))
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(wrongPassword))
	assert.Equal(t, "invalid credentials", apperr.As(wrongPassword).Message)
}

func TestService_LoginMissingFields(t *testing.T) {
	svc, _ := newTestService(t, newFakeUserStore())

	_, err := svc.Login(context.Background(), "", "secret1")
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestService_LoginStoreFailureIsInternal(t *testing.T) {
	store := newFakeUserStore()
	store.failGet = errors.New("connection refused")
	svc, _ := newTestService(t, store)

	_, err := svc.Login(context.Background(), "ada@x.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.ErrorContains(t, err, "connection refused")
}

func TestService_EmailIsCaseSensitive(t *testing.T) {
	svc, _ := newTestService(t, newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ADA@x.com", "secret1")
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

type recordingHasher struct {
	PasswordHasher
	hashErr  error
	verified []string
}

func (h *recordingHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return h.PasswordHasher.Hash(password)
}

func (h *recordingHasher) Verify(password, hash string) bool {
	h.verified = append(h.verified, hash)
	return h.PasswordHasher.Verify(password, hash)
}

func TestNewService_FailsWhenFallbackHashFails(t *testing.T) {
	hasher := &recordingHasher{PasswordHasher: NewBcryptHasher(bcrypt.MinCost), hashErr: errors.New("entropy exhausted")}

	_, err := NewService(newFakeUserStore(), hasher, newJWT(t, "test-secret", time.Hour))
	require.Error(t, err)
	assert.ErrorContains(t, err, "entropy exhausted")
}

func TestService_UnknownEmailVerifiesAgainstRealHash(t *testing.T) {
	hasher := &recordingHasher{PasswordHasher: NewBcryptHasher(bcrypt.MinCost)}
	svc, err := NewService(newFakeUserStore(), hasher, newJWT(t, "test-secret", time.Hour))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ghost@x.com", "secret1")
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

	require.Len(t, hasher.verified, 1)
	cost, err := bcrypt.Cost([]byte(hasher.verified[0]))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
