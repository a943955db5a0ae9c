package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"github.com/fitzone/fitzone-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	users  map[uint]*models.User
	nextID uint
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[uint]*models.User{}}
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	user.ID = m.nextID
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) Update(_ context.Context, user *models.User) error {
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUsers) List(_ context.Context, page repository.Page) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *memUsers) Delete(_ context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

var testTokens = TokenIssuer{Secret: "test-secret", TTL: time.Hour}

func authRouter(users UserStore, user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(as(user))
	r.POST("/api/auth/register", Register(users, testTokens))
	r.POST("/api/auth/login", Login(users, testTokens))
	r.PUT("/api/users/profile", UpdateProfile(users))
	r.DELETE("/api/users/:userId", DeleteUser(users))
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	users := newMemUsers()
	r := authRouter(users, nil)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Jane Doe",
		"email":    "Jane@Example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", user["email"])
	assert.Equal(t, "member", user["role"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	claims, err := utils.ValidateToken(body["token"].(string), testTokens.Secret)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Jane Again",
		"email":    "jane@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "jane@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["token"])

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "jane@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "nobody@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode(t, w)["message"])
}

func TestRegisterValidation(t *testing.T) {
	r := authRouter(newMemUsers(), nil)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "J",
		"email":    "jane@example.com",
		"password": "123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := decode(t, w)["errors"].([]interface{})
	require.Len(t, errs, 2)
	assert.Equal(t, map[string]interface{}{"field": "name", "message": "must be at least 2 characters"}, errs[0])
	assert.Equal(t, map[string]interface{}{"field": "password", "message": "must be at least 6 characters"}, errs[1])
}

func TestUpdateProfileAndDeleteUser(t *testing.T) {
	users := newMemUsers()
	member := &models.User{Name: "Jane", Email: "jane@example.com", Role: models.RoleMember, IsActive: true, Password: "secret1"}
	require.NoError(t, member.HashPassword())
	require.NoError(t, users.Create(context.Background(), member))

	r := authRouter(users, member)
	w := doJSON(t, r, http.MethodPut, "/api/users/profile", map[string]string{"name": "Jane Smith", "password": "newsecret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Jane Smith", users.users[member.ID].Name)
	assert.NoError(t, users.users[member.ID].CheckPassword("newsecret"))

	w = doJSON(t, r, http.MethodDelete, "/api/users/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	admin := authRouter(users, testAdmin)
	w = doJSON(t, admin, http.MethodDelete, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, users.users)

	w = doJSON(t, admin, http.MethodDelete, "/api/users/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
