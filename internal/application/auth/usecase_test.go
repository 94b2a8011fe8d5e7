package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/azex/pestops-api/internal/application/auth"
	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
	pkgjwt "github.com/azex/pestops-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.users[u.ID] = u
	return nil
}
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) { return f.users[id], nil }
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) Delete(id string) error      { delete(f.users, id); return nil }
func (f *fakeUserRepo) ListByRole(companyID, role, branchID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error { f.companies[c.ID] = c; return nil }
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return f.companies[id], nil
}
func (f *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) { return nil, nil }
func (f *fakeCompanyRepo) Update(c *entity.Company) error                    { f.companies[c.ID] = c; return nil }

const companyID = "co-1"

var jwtCfg = auth.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	ExpMinutes: 60,
	Issuer:     "pestops-test",
}

func setupAuth(t *testing.T) (*auth.AuthUseCase, *fakeUserRepo) {
	t.Helper()
	userRepo := &fakeUserRepo{users: map[string]*entity.User{}}
	companyRepo := &fakeCompanyRepo{companies: map[string]*entity.Company{
		companyID: {ID: companyID, Name: "PestOps LLC", Status: "active"},
	}}
	return auth.NewAuthUseCase(userRepo, companyRepo, jwtCfg), userRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RegisterUser
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_HasheaPassword(t *testing.T) {
	uc, repo := setupAuth(t)

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:     "tec@pestops.com",
		Password:  "secreto123",
		CompanyID: companyID,
		Role:      entity.RoleTechnician,
		FirstName: "Juan",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTechnician, resp.Role)
	assert.Equal(t, "active", resp.Status)

	stored := repo.users[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash,
		"la contraseña nunca se guarda en plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")),
		"el hash debe verificar contra la contraseña original")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := setupAuth(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "tec@pestops.com", Password: "x", CompanyID: companyID,
	})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{
		Email: "tec@pestops.com", Password: "y", CompanyID: companyID,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_EmpresaInexistente(t *testing.T) {
	uc, _ := setupAuth(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "tec@pestops.com", Password: "x", CompanyID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_RolDesconocido(t *testing.T) {
	uc, _ := setupAuth(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "tec@pestops.com", Password: "x", CompanyID: companyID, Role: "bodeguero",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenConClaims(t *testing.T) {
	uc, _ := setupAuth(t)

	reg, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "admin@pestops.com", Password: "secreto123", CompanyID: companyID, Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "admin@pestops.com", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, tokCompanyID, role, err := pkgjwt.Parse(jwtCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, companyID, tokCompanyID)
	assert.Equal(t, entity.RoleAdmin, role)
}

// Email desconocido y password incorrecto devuelven el mismo error para no
// filtrar qué cuentas existen.
func TestLogin_CredencialesMalas_MismoError(t *testing.T) {
	uc, _ := setupAuth(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "admin@pestops.com", Password: "secreto123", CompanyID: companyID,
	})
	require.NoError(t, err)

	_, errPass := uc.Login(dto.LoginRequest{Email: "admin@pestops.com", Password: "incorrecta"})
	_, errEmail := uc.Login(dto.LoginRequest{Email: "nadie@pestops.com", Password: "secreto123"})

	assert.ErrorIs(t, errPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errEmail, domain.ErrUnauthorized)
}

func TestLogin_CuentaInactiva_Forbidden(t *testing.T) {
	uc, repo := setupAuth(t)

	reg, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "ex@pestops.com", Password: "secreto123", CompanyID: companyID,
	})
	require.NoError(t, err)
	repo.users[reg.ID].Status = "suspended"

	_, err = uc.Login(dto.LoginRequest{Email: "ex@pestops.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
