package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torneohub/torneo-api/internal/api/middleware"
	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/pkg/jwthelper"
	"github.com/torneohub/torneo-api/internal/service"
)

const userTestSigningKey = "test-signing-key"

type fakeUserService struct {
	user domain.User

	lastUpdate  *service.UserUpdate
	updateCalls int
}

func (f *fakeUserService) GetUser(_ context.Context, _ uuid.UUID) (domain.User, error) {
	return f.user, nil
}

func (f *fakeUserService) ListUsers(_ context.Context) ([]domain.User, error) {
	return []domain.User{f.user}, nil
}

func (f *fakeUserService) UpdateUser(_ context.Context, _ uuid.UUID, update service.UserUpdate) (domain.User, error) {
	f.updateCalls++
	f.lastUpdate = &update
	return f.user, nil
}

func (f *fakeUserService) DeleteUser(_ context.Context, _ uuid.UUID) error {
	return nil
}

func newUserRouter(svc UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewUserHandler(svc)
	auth := middleware.NewAuthenticator(userTestSigningKey)

	router := gin.New()
	router.PUT("/api/users/:userID", auth.VerifyJWT(), handler.HandleUpdateUser)

	return router
}

func userToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()

	token, err := jwthelper.GenerateToken([]byte(userTestSigningKey), domain.Principal{
		UserID:   userID,
		Email:    "mario@example.com",
		Username: "mario",
		Role:     role,
	})
	require.NoError(t, err)

	return "Bearer " + token
}

func putJSON(router *gin.Engine, path, authorization, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authorization)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	return resp
}

func TestHandleUpdateUser(t *testing.T) {
	userID := uuid.New()

	t.Run("user edits own scores", func(t *testing.T) {
		svc := &fakeUserService{user: domain.User{ID: userID}}
		router := newUserRouter(svc)

		resp := putJSON(router, "/api/users/"+userID.String(),
			userToken(t, userID, domain.RoleUser), `{"game1":30}`)

		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, svc.lastUpdate.Game1)
		assert.Equal(t, 30, *svc.lastUpdate.Game1)
	})

	t.Run("user cannot edit another profile", func(t *testing.T) {
		svc := &fakeUserService{}
		router := newUserRouter(svc)

		resp := putJSON(router, "/api/users/"+uuid.NewString(),
			userToken(t, userID, domain.RoleUser), `{"game1":30}`)

		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.Zero(t, svc.updateCalls)
	})

	t.Run("user cannot set a role on their own profile", func(t *testing.T) {
		svc := &fakeUserService{user: domain.User{ID: userID}}
		router := newUserRouter(svc)

		resp := putJSON(router, "/api/users/"+userID.String(),
			userToken(t, userID, domain.RoleUser), `{"role":"admin"}`)

		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.Zero(t, svc.updateCalls, "a self-promotion must not reach the service")
	})

	t.Run("admin promotes another user", func(t *testing.T) {
		svc := &fakeUserService{user: domain.User{ID: userID}}
		router := newUserRouter(svc)

		resp := putJSON(router, "/api/users/"+userID.String(),
			userToken(t, uuid.New(), domain.RoleAdmin), `{"role":"admin"}`)

		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, 1, svc.updateCalls)
		require.NotNil(t, svc.lastUpdate.Role)
		assert.Equal(t, domain.RoleAdmin, *svc.lastUpdate.Role)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		svc := &fakeUserService{}
		router := newUserRouter(svc)

		resp := putJSON(router, "/api/users/"+userID.String(),
			userToken(t, uuid.New(), domain.RoleAdmin), `{"role":"superuser"}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Zero(t, svc.updateCalls)
	})
}
