package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/study-marks/internal/config"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/mock"
	"github.com/MKhiriev/study-marks/internal/store"
	"github.com/MKhiriev/study-marks/internal/validators"
	"github.com/MKhiriev/study-marks/models"
)

func newTestAuthService(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository) {
	t.Helper()
	repo := mock.NewMockUserRepository(ctrl)
	cfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "study-marks-test",
		TokenDuration: time.Hour,
	}

	svc := NewAuthService(repo, validators.NewStructValidator(), cfg, logger.Nop()).(*authService)
	svc.bcryptCost = bcrypt.MinCost

	return svc, repo
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_HashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestAuthService(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "student", u.Login)
			assert.Empty(t, u.Password, "plain password must not reach the repository")
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-pass")))
			u.ID = "u-1"
			return u, nil
		},
	)

	user, err := svc.RegisterUser(ctx, models.User{Login: "student", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
}

func TestAuthService_RegisterUser_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		user models.User
	}{
		{name: "empty login", user: models.User{Password: "secret-pass"}},
		{name: "short login", user: models.User{Login: "ab", Password: "secret-pass"}},
		{name: "short password", user: models.User{Login: "student", Password: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, _ := newTestAuthService(t, ctrl)

			_, err := svc.RegisterUser(context.Background(), tt.user)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, validators.ErrValidation)
		})
	}
}

func TestAuthService_RegisterUser_LoginTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestAuthService(t, ctrl)

	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "student", Password: "secret-pass"})
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	stored := models.User{ID: "u-1", Login: "student", PasswordHash: hashPassword(t, "secret-pass")}

	tests := []struct {
		name     string
		input    models.User
		setup    func(repo *mock.MockUserRepository)
		wantID   string
		wantErr  error
		checkErr func(t *testing.T, err error)
	}{
		{
			name:  "valid credentials",
			input: models.User{Login: "student", Password: "secret-pass"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByLogin(gomock.Any(), "student").Return(stored, nil)
			},
			wantID: "u-1",
		},
		{
			name:  "wrong password",
			input: models.User{Login: "student", Password: "not-the-pass"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByLogin(gomock.Any(), "student").Return(stored, nil)
			},
			wantErr: ErrWrongPassword,
		},
		{
			name:  "unknown login looks like a wrong password",
			input: models.User{Login: "ghost", Password: "secret-pass"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByLogin(gomock.Any(), "ghost").Return(models.User{}, store.ErrNoUserWasFound)
			},
			wantErr: ErrWrongPassword,
		},
		{
			name:    "empty password",
			input:   models.User{Login: "student"},
			setup:   func(repo *mock.MockUserRepository) {},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:  "repository failure",
			input: models.User{Login: "student", Password: "secret-pass"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByLogin(gomock.Any(), "student").Return(models.User{}, errors.New("connection reset"))
			},
			checkErr: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrWrongPassword)
				assert.Contains(t, err.Error(), "connection reset")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, repo := newTestAuthService(t, ctrl)
			tt.setup(repo)

			user, err := svc.Login(context.Background(), tt.input)

			switch {
			case tt.checkErr != nil:
				tt.checkErr(t, err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, user.ID)
			}
		})
	}
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_CreateAndParseToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: "u-42"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "u-42", parsed.UserID)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	other := *svc
	other.tokenIssuer = "someone-else"
	foreign, err := other.CreateToken(ctx, models.User{ID: "u-1"})
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    svc.tokenIssuer,
		Subject:   "u-1",
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
	}).SignedString([]byte(svc.tokenSignKey))
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":      "not.a.jwt",
		"wrong issuer": foreign.SignedString,
		"expired":      stale,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(ctx, raw)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}
