package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otienog1/invoice/internal/adapter/repository"
	userdomain "github.com/otienog1/invoice/internal/domain/user"
	"github.com/otienog1/invoice/pkg/auth"
)

// fakeUserRepo guarda usuários em memória, indexados por email
type fakeUserRepo struct {
	users map[string]*userdomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*userdomain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *userdomain.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*userdomain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*userdomain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userdomain.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// noopLogger descarta os logs nos testes
type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}

func newLoginRouter(t *testing.T, repo *fakeUserRepo) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "chave-de-teste")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")

	jwtService, err := auth.NewJWTService()
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	c := NewAuthController(repo, jwtService, noopLogger{})
	r.POST("/auth/login", c.Login)
	return r
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	u, err := userdomain.NewUser("maria", "maria@example.com", "Maria Silva", "senha-secreta")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))

	router := newLoginRouter(t, repo)

	t.Run("credenciais corretas emitem token", func(t *testing.T) {
		w := postLogin(router, `{"email":"maria@example.com","password":"senha-secreta"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("senha incorreta", func(t *testing.T) {
		w := postLogin(router, `{"email":"maria@example.com","password":"senha-errada"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "credenciais inválidas")
	})

	t.Run("usuário inexistente responde igual à senha errada", func(t *testing.T) {
		w := postLogin(router, `{"email":"ninguem@example.com","password":"senha-secreta"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "credenciais inválidas")
	})

	t.Run("conta desativada tem mensagem própria", func(t *testing.T) {
		u.IsActive = false
		defer func() { u.IsActive = true }()

		w := postLogin(router, `{"email":"maria@example.com","password":"senha-secreta"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "conta desativada")
		assert.NotContains(t, w.Body.String(), "credenciais inválidas")
	})
}
