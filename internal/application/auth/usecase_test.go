package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/devis-renovation-api/internal/application/auth"
	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
	"github.com/jhoicas/devis-renovation-api/internal/domain"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/devis-renovation-api/pkg/jwt"
)

const secret = "test-secret"

// ── Fake UserRepository ───────────────────────────────────────────────────────

type memUsers struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	m.byID[u.ID] = &cp
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byEmail[email], nil
}

func newUseCase() *auth.AuthUseCase {
	return auth.NewAuthUseCase(newMemUsers(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}).
		WithBcryptCost(bcrypt.MinCost)
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegister_DevuelveTokenValido(t *testing.T) {
	uc := newUseCase()

	res, err := uc.Register(context.Background(), dto.RegisterRequest{Email: " Artisan@Example.com ", Password: "secret1", Name: "Jean"})
	require.NoError(t, err)

	assert.Equal(t, "artisan@example.com", res.User.Email)
	assert.Equal(t, "bearer", res.TokenType)
	userID, err := pkgjwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
}

func TestRegister_EmailDuplicado_Conflicto(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@b.fr", Password: "secret1", Name: "A"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "A@B.fr", Password: "otro123", Name: "B"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.True(t, domain.IsConflict(err))
}

func TestLogin_EmailDesconocidoYPasswordIncorrecto_MismoError(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@b.fr", Password: "secret1", Name: "A"})
	require.NoError(t, err)

	_, errUnknown := uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.fr", Password: "secret1"})
	_, errBadPwd := uc.Login(ctx, dto.LoginRequest{Email: "a@b.fr", Password: "incorrecta"})

	require.Error(t, errUnknown)
	require.Error(t, errBadPwd)
	assert.ErrorIs(t, errUnknown, domain.ErrUnauthorized)
	assert.ErrorIs(t, errBadPwd, domain.ErrUnauthorized)
	assert.Equal(t, errUnknown.Error(), errBadPwd.Error())
}

func TestLogin_Correcto(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	reg, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@b.fr", Password: "secret1", Name: "A"})
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "a@b.fr", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)
}

func TestMe(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	reg, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@b.fr", Password: "secret1", Name: "A"})
	require.NoError(t, err)

	me, err := uc.Me(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", me.Name)

	_, err = uc.Me(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
