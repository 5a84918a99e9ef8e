package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/maciej3031/todo-app/internal/auth"
	"github.com/maciej3031/todo-app/internal/cache"
	"github.com/maciej3031/todo-app/internal/errors"
	"github.com/maciej3031/todo-app/internal/mail"
	"github.com/maciej3031/todo-app/internal/model"
	"github.com/maciej3031/todo-app/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// lastLoginOffset is the fixed UTC offset applied to stored login times,
// carried over from the legacy schema.
const lastLoginOffset = 2 * time.Hour

const (
	resetMailSubject = "Reset password"
	resetMailBody    = "Hello %s! \nYour password has been changed. New password: %s. We recommend to change it" +
		" immediately. \n\nRegards, \ntodo team!"
)

// ProfileChanges carries optional profile updates; empty fields are left
// unchanged.
type ProfileChanges struct {
	Username string
	Password string
	Confirm  string
	Email    string
}

// AccountService handles registration, sessions and profile management.
type AccountService interface {
	Register(ctx context.Context, username, password, confirm, email string) (*model.User, error)
	Login(ctx context.Context, username, password string, remember bool) (accessToken, refreshToken string, user *model.User, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID uint) (*model.User, error)
	ChangeProfile(ctx context.Context, userID uint, changes ProfileChanges) (*model.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
	ResetPassword(ctx context.Context, email string) error
}

type accountService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	mailer     mail.Mailer
	validator  *FieldValidator
	cache      *cache.Client
}

// NewAccountService creates a new account service.
func NewAccountService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	mailer mail.Mailer,
	cache *cache.Client,
) AccountService {
	return &accountService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		mailer:     mailer,
		validator:  NewFieldValidator(),
		cache:      cache,
	}
}

func (s *accountService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register creates a new user with a hashed password.
func (s *accountService) Register(ctx context.Context, username, password, confirm, email string) (*model.User, error) {
	if !s.validator.ValidLength(username, MaxCredentialLength) ||
		!s.validator.ValidLength(password, MaxCredentialLength) ||
		!s.validator.ValidLength(confirm, MaxCredentialLength) ||
		!s.validator.ValidLength(email, MaxEmailLength) {
		return nil, errors.ErrRegisterDataIncorrect
	}
	if !s.validator.ValidEmail(email) {
		return nil, errors.ErrIncorrectEmail
	}
	if password != confirm {
		return nil, errors.ErrPasswordMismatch
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, errors.ErrUserAlreadyExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username existence: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, errors.ErrUserAlreadyExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email existence: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashed,
		Email:        email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials, records the login time and issues a token pair.
func (s *accountService) Login(ctx context.Context, username, password string, remember bool) (string, string, *model.User, error) {
	if !s.validator.ValidLength(username, MaxCredentialLength) ||
		!s.validator.ValidLength(password, MaxCredentialLength) {
		return "", "", nil, errors.ErrLoginDataIncorrect
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", "", nil, errors.ErrNoSuchUser
		}
		return "", "", nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", "", nil, errors.ErrIncorrectPassword
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshTTL := auth.RefreshTokenExpiry
	if remember {
		refreshTTL = auth.RememberedRefreshTokenExpiry
	}
	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username, refreshTTL)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, refreshTTL); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	lastLogin := time.Now().UTC().Truncate(time.Second).Add(lastLoginOffset)
	user.LastLogin = &lastLogin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", "", nil, fmt.Errorf("record last login: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))

	return accessToken, refreshToken, user, nil
}

// Refresh validates a refresh token and returns a new access token.
func (s *accountService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	storedUserID, storedUsername, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedUsername != claims.Username {
		return "", errors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates the refresh token, ending the session.
func (s *accountService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errors.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// GetProfile returns the user record, served from cache when possible.
func (s *accountService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNoSuchUser
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, profileCacheTTL)
	}
	return user, nil
}

// ChangeProfile applies any requested profile updates. Each field is
// validated independently; the first failing field aborts the change.
func (s *accountService) ChangeProfile(ctx context.Context, userID uint, changes ProfileChanges) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNoSuchUser
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if changes.Username != "" && changes.Username != user.Username {
		if !s.validator.ValidLength(changes.Username, MaxCredentialLength) {
			return nil, errors.ErrLoginChangeInvalid
		}
		if _, err := s.userRepo.FindByUsername(ctx, changes.Username); err == nil {
			return nil, errors.ErrLoginChangeInvalid
		} else if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check username existence: %w", err)
		}
		user.Username = changes.Username
	}

	if changes.Email != "" && changes.Email != user.Email {
		if !s.validator.ValidEmail(changes.Email) {
			return nil, errors.ErrIncorrectEmail
		}
		if _, err := s.userRepo.FindByEmail(ctx, changes.Email); err == nil {
			return nil, errors.ErrEmailExists
		} else if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check email existence: %w", err)
		}
		user.Email = changes.Email
	}

	if changes.Password != "" {
		if changes.Password != changes.Confirm || !s.validator.ValidLength(changes.Password, MaxCredentialLength) {
			return nil, errors.ErrPasswordChangeInvalid
		}
		hashed, err := auth.HashPassword(changes.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return user, nil
}

// DeleteAccount removes the user together with all owned tasks and opinions.
func (s *accountService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.DeleteWithOwned(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}

// ResetPassword stores a freshly generated password for the user and mails
// the plaintext to them. Mailing the plaintext is legacy behavior kept for
// compatibility.
func (s *accountService) ResetPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNoUserWithEmail
		}
		return fmt.Errorf("find user: %w", err)
	}

	newPassword := auth.GeneratePassword()
	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))

	body := fmt.Sprintf(resetMailBody, user.Username, newPassword)
	if err := s.mailer.Send(user.Email, resetMailSubject, body); err != nil {
		return errors.ErrMailDispatch
	}
	return nil
}
