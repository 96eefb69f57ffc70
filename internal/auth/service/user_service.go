package service

import (
	"context"
	"fmt"
	"time"

	"github.com/FJR5209/Dashboard-backend/internal/auth/domain"
	"github.com/FJR5209/Dashboard-backend/internal/auth/dto"
	apperrors "github.com/FJR5209/Dashboard-backend/internal/errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -destination=../../mocks/mock_device_checker.go -package=mocks github.com/FJR5209/Dashboard-backend/internal/auth/service DeviceChecker

// DeviceChecker narrows the telemetry store to what user management needs:
// confirming that referenced device identifiers are registered.
type DeviceChecker interface {
	ExistingIDs(ctx context.Context, deviceIDs []string) ([]string, error)
}

type UserService struct {
	repo    domain.UserRepository
	tokens  TokenGenerator
	devices DeviceChecker
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, devices DeviceChecker) *UserService {
	return &UserService{
		repo:    repo,
		tokens:  tokens,
		devices: devices,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Role == "" ||
		input.TempLimit == nil || input.HumidityLimit == nil {
		return nil, apperrors.ErrMissingFields
	}

	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperrors.ErrEmailAlreadyInUse
	}

	var deviceIDs []string
	if input.DeviceID != "" {
		found, err := s.devices.ExistingIDs(ctx, []string{input.DeviceID})
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, apperrors.ErrDeviceNotFound
		}
		deviceIDs = []string{input.DeviceID}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Email:         input.Email,
		Role:          input.Role,
		PasswordHash:  string(hashedPassword),
		TempLimit:     *input.TempLimit,
		HumidityLimit: *input.HumidityLimit,
		DeviceIDs:     deviceIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login returns a signed token for valid credentials. Unknown email and
// wrong password produce the same error so callers cannot probe accounts.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperrors.ErrMissingFields
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{Token: token}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Update(ctx context.Context, id string, input dto.UpdateUserInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		existing, err := s.repo.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.ErrEmailAlreadyInUse
		}
		user.Email = input.Email
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.TempLimit != nil {
		user.TempLimit = *input.TempLimit
	}
	if input.HumidityLimit != nil {
		user.HumidityLimit = *input.HumidityLimit
	}

	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if input.Devices != nil {
		valid, err := s.devices.ExistingIDs(ctx, input.Devices)
		if err != nil {
			return nil, err
		}
		if len(valid) != len(input.Devices) {
			invalid := missingIDs(input.Devices, valid)
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUnknownDevices, invalid)
		}
		user.DeviceIDs = valid
	}

	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func missingIDs(requested, found []string) []string {
	present := make(map[string]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}

	var missing []string
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
