package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcomico/dotmarket-client/internal/api"
	"github.com/dotcomico/dotmarket-client/internal/model"
	"github.com/dotcomico/dotmarket-client/internal/storage"
)

type fakeAuthAPI struct {
	login    func(ctx context.Context, creds api.LoginCredentials) (*api.AuthResponse, error)
	register func(ctx context.Context, input api.RegisterInput) (*api.AuthResponse, error)
	me       func(ctx context.Context) (*model.User, error)
}

func (f *fakeAuthAPI) Login(ctx context.Context, creds api.LoginCredentials) (*api.AuthResponse, error) {
	return f.login(ctx, creds)
}

func (f *fakeAuthAPI) Register(ctx context.Context, input api.RegisterInput) (*api.AuthResponse, error) {
	return f.register(ctx, input)
}

func (f *fakeAuthAPI) Me(ctx context.Context) (*model.User, error) {
	return f.me(ctx)
}

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "1", "exp": expiry.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func setupSessionTest(t *testing.T, authAPI AuthAPI) (*Session, *storage.Store) {
	mirror, err := storage.New(t.TempDir())
	require.NoError(t, err)
	return NewSession(authAPI, mirror), mirror
}

func TestSession_LoginPersists(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	authAPI := &fakeAuthAPI{
		login: func(ctx context.Context, creds api.LoginCredentials) (*api.AuthResponse, error) {
			return &api.AuthResponse{
				Token: token,
				User:  model.User{ID: 1, Username: "dana", Email: creds.Email, Role: model.RoleCustomer},
			}, nil
		},
	}
	session, mirror := setupSessionTest(t, authAPI)

	result := session.Login(context.Background(), api.LoginCredentials{Email: "dana@example.com", Password: "pw"})
	require.True(t, result.Success)
	assert.Equal(t, LandingStorefront, result.Landing)
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, token, session.Token())

	// Restoring from the mirror resumes the session
	restored := NewSession(authAPI, mirror)
	assert.True(t, restored.IsAuthenticated())
	require.NotNil(t, restored.User())
	assert.Equal(t, "dana", restored.User().Username)
}

func TestSession_LoginFailure(t *testing.T) {
	authAPI := &fakeAuthAPI{
		login: func(ctx context.Context, creds api.LoginCredentials) (*api.AuthResponse, error) {
			return nil, errors.New("bad credentials")
		},
	}
	session, _ := setupSessionTest(t, authAPI)

	result := session.Login(context.Background(), api.LoginCredentials{})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.False(t, session.IsAuthenticated())
}

func TestSession_StaffLanding(t *testing.T) {
	authAPI := &fakeAuthAPI{
		login: func(ctx context.Context, creds api.LoginCredentials) (*api.AuthResponse, error) {
			return &api.AuthResponse{
				Token: signedToken(t, time.Now().Add(time.Hour)),
				User:  model.User{ID: 2, Username: "root", Role: model.RoleAdmin},
			}, nil
		},
	}
	session, _ := setupSessionTest(t, authAPI)

	result := session.Login(context.Background(), api.LoginCredentials{})
	require.True(t, result.Success)
	assert.Equal(t, LandingBackOffice, result.Landing)
	assert.True(t, session.IsAdmin())
	assert.False(t, session.IsManager())
	assert.True(t, session.HasRole(model.RoleAdmin, model.RoleManager))
}

func TestSession_ExpiredTokenNotAuthenticated(t *testing.T) {
	authAPI := &fakeAuthAPI{}
	mirror, err := storage.New(t.TempDir())
	require.NoError(t, err)

	expired := signedToken(t, time.Now().Add(-time.Minute))
	require.NoError(t, mirror.Set(SessionStorageKey, model.AuthSession{
		Token: expired,
		User:  model.User{ID: 1, Role: model.RoleCustomer},
	}))

	session := NewSession(authAPI, mirror)
	assert.False(t, session.IsAuthenticated())
	assert.False(t, session.HasRole(model.RoleCustomer))
}

func TestSession_OpaqueTokenAccepted(t *testing.T) {
	// Tokens the client cannot parse are presented anyway; the server
	// answers 401 if they are no good.
	authAPI := &fakeAuthAPI{}
	mirror, err := storage.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, mirror.Set(SessionStorageKey, model.AuthSession{
		Token: "opaque-token",
		User:  model.User{ID: 1, Role: model.RoleCustomer},
	}))

	session := NewSession(authAPI, mirror)
	assert.True(t, session.IsAuthenticated())
}

func TestSession_Logout(t *testing.T) {
	authAPI := &fakeAuthAPI{
		login: func(ctx context.Context, creds api.LoginCredentials) (*api.AuthResponse, error) {
			return &api.AuthResponse{
				Token: signedToken(t, time.Now().Add(time.Hour)),
				User:  model.User{ID: 1, Role: model.RoleCustomer},
			}, nil
		},
	}
	session, mirror := setupSessionTest(t, authAPI)
	require.True(t, session.Login(context.Background(), api.LoginCredentials{}).Success)

	session.Logout()

	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Token())
	assert.Nil(t, session.User())
	assert.False(t, mirror.Has(SessionStorageKey))
}

func TestSession_RefreshUser(t *testing.T) {
	authAPI := &fakeAuthAPI{
		login: func(ctx context.Context, creds api.LoginCredentials) (*api.AuthResponse, error) {
			return &api.AuthResponse{
				Token: signedToken(t, time.Now().Add(time.Hour)),
				User:  model.User{ID: 1, Username: "old", Role: model.RoleCustomer},
			}, nil
		},
		me: func(ctx context.Context) (*model.User, error) {
			return &model.User{ID: 1, Username: "new", Role: model.RoleManager}, nil
		},
	}
	session, _ := setupSessionTest(t, authAPI)
	require.True(t, session.Login(context.Background(), api.LoginCredentials{}).Success)

	user, err := session.RefreshUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", user.Username)
	assert.True(t, session.IsManager())
}
