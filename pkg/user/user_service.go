package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/entities"
)

type (
	UserService interface {
		FindOrCreateByIdentity(ctx context.Context, identityRef string, email string, fullName string) (*entities.User, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) error
	}

	userService struct {
		userRepository UserRepository
	}
)

func NewUserService(userRepository UserRepository) UserService {
	return &userService{userRepository: userRepository}
}

// FindOrCreateByIdentity maps an identity-provider subject to a local
// user. Primary lookup is the subject id; accounts that predate the
// provider link are found by email and linked on first sight; unknown
// subjects with an email get a fresh account.
func (s *userService) FindOrCreateByIdentity(ctx context.Context, identityRef string, email string, fullName string) (*entities.User, error) {
	u, err := s.userRepository.GetUserByIdentityRef(ctx, identityRef)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if email == "" {
		return nil, domain.ErrEmailMissing
	}
	email = strings.ToLower(strings.TrimSpace(email))

	u, err = s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		u.IdentityProviderRef = identityRef
		if err := s.userRepository.UpdateUser(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if fullName == "" {
		fullName = "User"
	}
	u = &entities.User{
		ID:                  uuid.New(),
		IdentityProviderRef: identityRef,
		Email:               email,
		FullName:            fullName,
		ReminderPreference:  domain.ReminderPreferenceEmail,
	}
	if err := s.userRepository.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	return domain.UserResponse{
		ID:                 u.ID.String(),
		Email:              u.Email,
		FullName:           u.FullName,
		PhoneNumber:        u.PhoneNumber,
		MailConnected:      u.MailConnected,
		LastInboxScanDate:  u.LastInboxScanDate,
		ReminderPreference: u.ReminderPreference,
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) error {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		u.PhoneNumber = req.PhoneNumber
	}
	if req.ReminderPreference != "" {
		u.ReminderPreference = req.ReminderPreference
	}

	return s.userRepository.UpdateUser(ctx, u)
}
