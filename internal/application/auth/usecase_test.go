package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const secret = "auth-test-secret"

func newAuth(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestRegisterUser_SiempreCustomer(t *testing.T) {
	store := memory.NewStore()
	uc := newAuth(store)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Luis@Mail.com ", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "luis@mail.com", u.Email)
	assert.Equal(t, entity.RoleCustomer, u.Role)
	assert.Equal(t, "luis@mail.com", u.Name, "sin nombre se usa el email")

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "luis@mail.com", Password: "password2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	stored, err := store.Users().GetByEmail(ctx, "luis@mail.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", stored.PasswordHash, "la password se guarda hasheada")
}

func TestLogin(t *testing.T) {
	store := memory.NewStore()
	uc := newAuth(store)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@mail.com", Password: "password1"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@mail.com", Password: "password1"})
	require.NoError(t, err)
	userID, role, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleCustomer, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@mail.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@mail.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	store := memory.NewStore()
	uc := newAuth(store)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@mail.com", Password: "password1"})
	require.NoError(t, err)

	u, err := store.Users().GetByEmail(ctx, "ana@mail.com")
	require.NoError(t, err)
	u.Status = entity.UserStatusInactive
	require.NoError(t, store.Users().Update(ctx, u))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@mail.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEnsureAdmin(t *testing.T) {
	store := memory.NewStore()
	uc := newAuth(store)
	ctx := context.Background()

	admin, err := uc.EnsureAdmin(ctx, "admin@tienda.com", "supersecreta", "")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.Equal(t, "Administrador", admin.Name)

	// Segunda llamada: promueve y reutiliza el mismo usuario.
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "jefe@tienda.com", Password: "password1"})
	require.NoError(t, err)
	promoted, err := uc.EnsureAdmin(ctx, "jefe@tienda.com", "nuevaclave1", "Jefe")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, promoted.Role)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "jefe@tienda.com", Password: "nuevaclave1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	_, err = uc.EnsureAdmin(ctx, "x@y.com", "corta", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
