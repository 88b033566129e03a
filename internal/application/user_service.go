package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/OlexiiMelnik/app-users/internal/domain/entity"
	repo "github.com/OlexiiMelnik/app-users/internal/domain/repository"
	"github.com/OlexiiMelnik/app-users/pkg/helpers"
	"github.com/OlexiiMelnik/app-users/pkg/mailer"
	"github.com/OlexiiMelnik/app-users/pkg/types"
)

var (
	// ErrRegistration deliberately does not reveal which check failed.
	ErrRegistration       = errors.New("unable to complete registration")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidDateRange is raised before the store is touched.
	ErrInvalidDateRange = errors.New("'from' date must be less than 'to' date")
)

type Service struct {
	Users       repo.UserRepository
	Roles       repo.RoleRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	MailEnabled bool
}

func NewService(users repo.UserRepository, roles repo.RoleRepository, jwt *helpers.JWTManager, rdb *redis.Client, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailEnabled bool) *Service {
	return &Service{
		Users:       users,
		Roles:       roles,
		JWT:         jwt,
		Redis:       rdb,
		Pub:         pub,
		Logger:      logger,
		MailEnabled: mailEnabled,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	BirthDate types.Date
	Address   string
	Phone     string
}

// Register creates a new account with exactly the USER role assigned.
// An already-registered email and a missing USER role both surface as
// ErrRegistration; the latter is a configuration fault, not a user error.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*UserResponse, error) {
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrRegistration
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	userRole, err := s.Roles.GetByName(ctx, entity.RoleUser)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("default role lookup failed")
		}
		return nil, ErrRegistration
	}

	u := &entity.User{
		Email:     in.Email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		BirthDate: in.BirthDate,
		Address:   in.Address,
		Phone:     in.Phone,
		Roles:     []entity.Role{*userRole},
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			// Lost the race against a concurrent registration; the unique
			// constraint is the authoritative check.
			return nil, ErrRegistration
		}
		return nil, err
	}

	s.enqueueWelcomeEmail(ctx, u)

	resp := ToUserResponse(u)
	return &resp, nil
}

type UpdateInput struct {
	FirstName string
	LastName  string
	BirthDate types.Date
	Address   string
	Phone     string
}

// Update overwrites the profile fields of the user behind the given
// email. Email, password, and roles are not part of the input shape and
// cannot change through this path.
func (s *Service) Update(ctx context.Context, email string, in UpdateInput) (*UserResponse, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.BirthDate = in.BirthDate
	u.Address = in.Address
	u.Phone = in.Phone

	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}

	resp := ToUserResponse(u)
	return &resp, nil
}

// DeleteByID delegates to the store. Deleting an id that does not exist
// is a no-op by design; delete stays idempotent.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	return s.Users.DeleteByID(ctx, id)
}

// FindUsersByBirthDateRange returns one page of users born within
// [from, to] inclusive. The range precondition fails before any store
// access.
func (s *Service) FindUsersByBirthDateRange(ctx context.Context, from, to types.Date, p repo.Pageable) ([]UserResponse, error) {
	if from.After(to.Time) {
		return nil, ErrInvalidDateRange
	}
	users, err := s.Users.FindByBirthDateRange(ctx, from, to, p)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out, nil
}

// Authenticate validates email/password and returns the user without
// issuing tokens. Failures are uniform to avoid account enumeration.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("user:session:%d", userID)
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *Service) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	roles := u.RoleNames()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email, roles, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.Email, roles, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the token pair behind a valid refresh token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	uid, err := claims.UserID()
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, uid)
	if err != nil || u == nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, ErrInvalidCredentials
		}
	}
	return s.IssueTokens(ctx, u)
}

// Logout drops the Redis session record.
func (s *Service) Logout(ctx context.Context, userID int64) {
	if s.Redis != nil {
		s.Redis.Del(ctx, sessionKey(userID))
	}
}

func (s *Service) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:      u.Email,
		Subject: "Welcome aboard",
		Text:    fmt.Sprintf("Hi %s, your account has been created.", u.FirstName),
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
	}
}
