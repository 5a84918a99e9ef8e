package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/maciej3031/todo-app/internal/auth"
	"github.com/maciej3031/todo-app/internal/errors"
	"github.com/maciej3031/todo-app/internal/model"
)

func newTestAccountService(userRepo *MockUserRepository, tokenStore *MockTokenStore, mailer *MockMailer) AccountService {
	return NewAccountService(userRepo, auth.NewJWTService("test-secret"), tokenStore, mailer, nil)
}

func TestAccountService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		confirm       string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			password: "password123",
			confirm:  "password123",
			email:    "alice@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "missing username",
			username:      "",
			password:      "password123",
			confirm:       "password123",
			email:         "alice@example.com",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrRegisterDataIncorrect,
		},
		{
			name:          "username too long",
			username:      strings.Repeat("a", 40),
			password:      "password123",
			confirm:       "password123",
			email:         "alice@example.com",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrRegisterDataIncorrect,
		},
		{
			name:          "email too long",
			username:      "alice",
			password:      "password123",
			confirm:       "password123",
			email:         strings.Repeat("a", 95) + "@b.com",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrRegisterDataIncorrect,
		},
		{
			name:          "malformed email",
			username:      "alice",
			password:      "password123",
			confirm:       "password123",
			email:         "not-an-email",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrIncorrectEmail,
		},
		{
			name:          "password mismatch",
			username:      "alice",
			password:      "password123",
			confirm:       "password321",
			email:         "alice@example.com",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrPasswordMismatch,
		},
		{
			name:     "username taken",
			username: "alice",
			password: "password123",
			confirm:  "password123",
			email:    "alice@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)
			},
			expectedError: errors.ErrUserAlreadyExists,
		},
		{
			name:     "email taken",
			username: "alice",
			password: "password123",
			confirm:  "password123",
			email:    "alice@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{Email: "alice@example.com"}, nil)
			},
			expectedError: errors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMock(userRepo)
			svc := newTestAccountService(userRepo, new(MockTokenStore), new(MockMailer))

			user, err := svc.Register(context.Background(), tt.username, tt.password, tt.confirm, tt.email)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.True(t, auth.CheckPassword(tt.password, user.PasswordHash))
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAccountService_Login(t *testing.T) {
	hashed, err := auth.HashPassword("password123")
	assert.NoError(t, err)
	storedUser := &model.User{ID: 7, Username: "alice", PasswordHash: hashed, Email: "alice@example.com"}

	t.Run("no such user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
		svc := newTestAccountService(userRepo, new(MockTokenStore), new(MockMailer))

		_, _, _, err := svc.Login(context.Background(), "ghost", "password123", false)
		assert.ErrorIs(t, err, errors.ErrNoSuchUser)
	})

	t.Run("incorrect password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(storedUser, nil)
		svc := newTestAccountService(userRepo, new(MockTokenStore), new(MockMailer))

		_, _, _, err := svc.Login(context.Background(), "alice", "wrongpass", false)
		assert.ErrorIs(t, err, errors.ErrIncorrectPassword)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := newTestAccountService(new(MockUserRepository), new(MockTokenStore), new(MockMailer))

		_, _, _, err := svc.Login(context.Background(), "alice", "", false)
		assert.ErrorIs(t, err, errors.ErrLoginDataIncorrect)
	})

	t.Run("successful login records last login", func(t *testing.T) {
		user := *storedUser
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(&user, nil)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		tokenStore := new(MockTokenStore)
		tokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(7), "alice", auth.RefreshTokenExpiry).Return(nil)
		svc := newTestAccountService(userRepo, tokenStore, new(MockMailer))

		accessToken, refreshToken, loggedIn, err := svc.Login(context.Background(), "alice", "password123", false)
		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.NotNil(t, loggedIn.LastLogin)
		userRepo.AssertExpectations(t)
		tokenStore.AssertExpectations(t)
	})

	t.Run("remember extends refresh token lifetime", func(t *testing.T) {
		user := *storedUser
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(&user, nil)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		tokenStore := new(MockTokenStore)
		tokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(7), "alice", auth.RememberedRefreshTokenExpiry).Return(nil)
		svc := newTestAccountService(userRepo, tokenStore, new(MockMailer))

		_, _, _, err := svc.Login(context.Background(), "alice", "password123", true)
		assert.NoError(t, err)
		tokenStore.AssertExpectations(t)
	})
}

func TestAccountService_ChangeProfile(t *testing.T) {
	baseUser := func() *model.User {
		return &model.User{ID: 7, Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	}

	t.Run("email already in use", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, uint(7)).Return(baseUser(), nil)
		userRepo.On("FindByEmail", mock.Anything, "bob@example.com").Return(&model.User{ID: 8}, nil)
		svc := newTestAccountService(userRepo, new(MockTokenStore), new(MockMailer))

		_, err := svc.ChangeProfile(context.Background(), 7, ProfileChanges{Email: "bob@example.com"})
		assert.ErrorIs(t, err, errors.ErrEmailExists)
	})

	t.Run("username already in use", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, uint(7)).Return(baseUser(), nil)
		userRepo.On("FindByUsername", mock.Anything, "bob").Return(&model.User{ID: 8}, nil)
		svc := newTestAccountService(userRepo, new(MockTokenStore), new(MockMailer))

		_, err := svc.ChangeProfile(context.Background(), 7, ProfileChanges{Username: "bob"})
		assert.ErrorIs(t, err, errors.ErrLoginChangeInvalid)
	})

	t.Run("password mismatch", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, uint(7)).Return(baseUser(), nil)
		svc := newTestAccountService(userRepo, new(MockTokenStore), new(MockMailer))

		_, err := svc.ChangeProfile(context.Background(), 7, ProfileChanges{Password: "new", Confirm: "other"})
		assert.ErrorIs(t, err, errors.ErrPasswordChangeInvalid)
	})

	t.Run("applies independent changes", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, uint(7)).Return(baseUser(), nil)
		userRepo.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByEmail", mock.Anything, "bob@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		svc := newTestAccountService(userRepo, new(MockTokenStore), new(MockMailer))

		user, err := svc.ChangeProfile(context.Background(), 7, ProfileChanges{
			Username: "bob",
			Email:    "bob@example.com",
			Password: "newpass123",
			Confirm:  "newpass123",
		})
		assert.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
		assert.Equal(t, "bob@example.com", user.Email)
		assert.True(t, auth.CheckPassword("newpass123", user.PasswordHash))
		userRepo.AssertExpectations(t)
	})
}

func TestAccountService_DeleteAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("DeleteWithOwned", mock.Anything, uint(7)).Return(nil)
	svc := newTestAccountService(userRepo, new(MockTokenStore), new(MockMailer))

	err := svc.DeleteAccount(context.Background(), 7)
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAccountService_ResetPassword(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
		svc := newTestAccountService(userRepo, new(MockTokenStore), new(MockMailer))

		err := svc.ResetPassword(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, errors.ErrNoUserWithEmail)
	})

	t.Run("stores new password and mails the plaintext", func(t *testing.T) {
		user := &model.User{ID: 7, Username: "alice", Email: "alice@example.com", PasswordHash: "old"}
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		var mailedBody string
		mailer := new(MockMailer)
		mailer.On("Send", "alice@example.com", "Reset password", mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { mailedBody = args.String(2) }).
			Return(nil)

		svc := newTestAccountService(userRepo, new(MockTokenStore), mailer)
		err := svc.ResetPassword(context.Background(), "alice@example.com")
		assert.NoError(t, err)
		assert.NotEqual(t, "old", user.PasswordHash)
		assert.Contains(t, mailedBody, "Hello alice!")

		// the mailed plaintext must verify against the stored hash
		fields := strings.Split(mailedBody, "New password: ")
		assert.Len(t, fields, 2)
		plaintext := fields[1][:auth.GeneratedPasswordLength]
		assert.True(t, auth.CheckPassword(plaintext, user.PasswordHash))
		mailer.AssertExpectations(t)
	})

	t.Run("mail failure surfaces as transport error", func(t *testing.T) {
		user := &model.User{ID: 7, Username: "alice", Email: "alice@example.com"}
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		mailer := new(MockMailer)
		mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		svc := newTestAccountService(userRepo, new(MockTokenStore), mailer)
		err := svc.ResetPassword(context.Background(), "alice@example.com")
		assert.ErrorIs(t, err, errors.ErrMailDispatch)
	})
}

func TestAccountService_RefreshAndLogout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(7, "alice", auth.RefreshTokenExpiry)
	assert.NoError(t, err)

	t.Run("refresh issues a new access token", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(7), "alice", nil)
		svc := NewAccountService(new(MockUserRepository), jwtService, tokenStore, new(MockMailer), nil)

		accessToken, err := svc.Refresh(context.Background(), refreshToken)
		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
	})

	t.Run("refresh rejects unknown token", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", assert.AnError)
		svc := NewAccountService(new(MockUserRepository), jwtService, tokenStore, new(MockMailer), nil)

		_, err := svc.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
	})

	t.Run("logout deletes the stored token", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		tokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
		svc := NewAccountService(new(MockUserRepository), jwtService, tokenStore, new(MockMailer), nil)

		assert.NoError(t, svc.Logout(context.Background(), refreshToken))
		tokenStore.AssertExpectations(t)
	})
}
