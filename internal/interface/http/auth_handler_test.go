package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/second-brain-api/internal/application"
	"github.com/oksasatya/second-brain-api/internal/domain/entity"
	"github.com/oksasatya/second-brain-api/internal/domain/repository"
	"github.com/oksasatya/second-brain-api/internal/interface/middleware"
	"github.com/oksasatya/second-brain-api/pkg/helpers"
)

// memUserRepo backs the handler tests with an in-memory user store.
type memUserRepo struct {
	byEmail map[string]*entity.User
	nextID  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	r.nextID++
	u.ID = "u-" + strconv.Itoa(r.nextID)
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) EnrichProfile(_ context.Context, id, name, avatarURL string) error {
	return nil
}

func (r *memUserRepo) UpsertByEmail(_ context.Context, u *entity.User) error {
	if existing, ok := r.byEmail[u.Email]; ok {
		u.ID = existing.ID
		return nil
	}
	return r.Create(context.Background(), u)
}

func (r *memUserRepo) UpdateAvatar(_ context.Context, id, avatarURL string) error { return nil }

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Compare(h, p string) bool      { return h == "h:"+p }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtMgr := helpers.NewJWTManager("test-secret", time.Hour, 168*time.Hour)
	svc := application.NewAuthService(newMemUserRepo(), jwtMgr, plainHasher{}, nil, nil, nil)
	h := NewAuthHandler(svc, nil, nil, "")

	r := gin.New()
	r.POST("/signup", h.SignUp)
	r.POST("/signin", h.SignIn)
	r.POST("/auth/refresh", h.Refresh)
	protected := r.Group("/")
	protected.Use(middleware.Auth(jwtMgr))
	protected.GET("/me", h.Me)
	return r
}

func doJSON(r *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestSignUpFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/signup", `{"name":"Ada","email":"ada@example.com","password":"secret"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decode(t, w).Success)

	// duplicate
	w = doJSON(r, http.MethodPost, "/signup", `{"name":"Ada","email":"ada@example.com","password":"secret"}`, "")
	require.Equal(t, http.StatusConflict, w.Code)
	e := decode(t, w)
	assert.False(t, e.Success)
	assert.Equal(t, "BE-03", e.Code)

	// validation: name too short
	w = doJSON(r, http.MethodPost, "/signup", `{"name":"Ab","email":"x@example.com","password":"secret"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignInAndMe(t *testing.T) {
	r := newTestRouter(t)
	doJSON(r, http.MethodPost, "/signup", `{"name":"Ada","email":"ada@example.com","password":"secret"}`, "")

	w := doJSON(r, http.MethodPost, "/signin", `{"email":"ada@example.com","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var pair application.TokenPair
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &pair))
	require.NotEmpty(t, pair.AccessToken)
	_, err := time.Parse(time.RFC1123, pair.ExpiresAt)
	require.NoError(t, err)

	w = doJSON(r, http.MethodGet, "/me", "", pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &profile))
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, "ada@example.com", profile.Email)
}

func TestSignIn_Failures(t *testing.T) {
	r := newTestRouter(t)
	doJSON(r, http.MethodPost, "/signup", `{"name":"Ada","email":"ada@example.com","password":"secret"}`, "")

	w := doJSON(r, http.MethodPost, "/signin", `{"email":"ada@example.com","password":"wrong!"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "BE-04", decode(t, w).Code)

	w = doJSON(r, http.MethodPost, "/signin", `{"email":"nobody@example.com","password":"secret"}`, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BE-02", decode(t, w).Code)
}

func TestMe_RequiresToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/me", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired := helpers.NewJWTManager("test-secret", -time.Minute, time.Hour)
	tok, _, err := expired.GenerateAccessToken("u-1")
	require.NoError(t, err)
	w = doJSON(r, http.MethodGet, "/me", "", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	r := newTestRouter(t)
	doJSON(r, http.MethodPost, "/signup", `{"name":"Ada","email":"ada@example.com","password":"secret"}`, "")
	w := doJSON(r, http.MethodPost, "/signin", `{"email":"ada@example.com","password":"secret"}`, "")
	var pair application.TokenPair
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &pair))

	w = doJSON(r, http.MethodPost, "/auth/refresh", `{"refreshToken":"`+pair.RefreshToken+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var renewed application.TokenPair
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &renewed))
	assert.NotEmpty(t, renewed.AccessToken)

	// body field name is refreshToken; anything else fails binding
	w = doJSON(r, http.MethodPost, "/auth/refresh", `{"refresh_token":"x"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/refresh", `{"refreshToken":"garbage"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "BE-04", decode(t, w).Code)
}
