package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/mvera/storedash/internal/database/models"
	"github.com/mvera/storedash/internal/tasks"
	"github.com/mvera/storedash/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrSlugExhausted      = errors.New("could not assign a unique slug")
)

// Attempts before giving up on store slug collision resolution.
const maxSlugAttempts = 5

type Service struct {
	db     *gorm.DB
	jwt    *JWTService
	queue  *asynq.Client // nil when no worker is deployed
	logger *slog.Logger
}

func NewService(db *gorm.DB, jwt *JWTService, queue *asynq.Client, logger *slog.Logger) *Service {
	return &Service{db: db, jwt: jwt, queue: queue, logger: logger}
}

type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	Phone     string
	StoreName string // Optional: create a store at registration
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *models.User  `json:"user"`
	Store        *models.Store `json:"store,omitempty"`
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	// Check if user exists
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := models.RoleStoreStaff
	if input.StoreName != "" {
		role = models.RoleStoreOwner
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         role,
		IsActive:     true,
	}

	var store *models.Store
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if input.StoreName == "" {
			return nil
		}

		slug, err := uniqueStoreSlug(tx, input.StoreName)
		if err != nil {
			return err
		}

		store = &models.Store{
			Name:    input.StoreName,
			Slug:    slug,
			Status:  models.StoreStatusPending,
			OwnerID: user.ID,
		}
		return tx.Create(store).Error
	})
	if err != nil {
		return nil, err
	}

	if store != nil && s.queue != nil {
		task, err := tasks.NewStoreProvisionTask(tasks.StoreProvisionPayload{
			StoreID: store.ID,
			OwnerID: user.ID,
		})
		if err == nil {
			if _, err := s.queue.EnqueueContext(ctx, task); err != nil {
				s.logger.Warn("failed to enqueue store provisioning", "store_id", store.ID, "error", err)
			}
		}
	}

	access, refresh, err := s.jwt.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         &user,
		Store:        store,
	}, nil
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("OwnedStores").
		Preload("Memberships.Store").
		Where("email = ?", input.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	if !CheckPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// One-time invite credentials are spent on first successful login
	if err := s.db.WithContext(ctx).Model(&models.StaffMembership{}).
		Where("user_id = ? AND invite_credential <> ''", user.ID).
		Update("invite_credential", "").Error; err != nil {
		s.logger.Warn("failed to clear invite credential", "user_id", user.ID, "error", err)
	}

	access, refresh, err := s.jwt.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         &user,
	}, nil
}

// Refresh verifies a refresh token, re-checks that the user still exists
// and is active, and mints a fresh token pair. All failure causes collapse
// into ErrInvalidToken so account existence never leaks.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}

	access, refresh, err := s.jwt.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         &user,
	}, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("OwnedStores").
		Preload("Memberships.Store").
		First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// uniqueStoreSlug assigns a globally unique store slug, suffixing with a
// fresh random token on each collision.
func uniqueStoreSlug(tx *gorm.DB, name string) (string, error) {
	base := util.Slugify(name)
	if base == "" {
		base = "store"
	}

	candidate := base
	for i := 0; i < maxSlugAttempts; i++ {
		var count int64
		if err := tx.Model(&models.Store{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = base + "-" + util.SlugSuffix()
	}
	return "", ErrSlugExhausted
}
