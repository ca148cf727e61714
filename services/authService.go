package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"MediClaim/database"
	"MediClaim/models"
	"MediClaim/policy"
	"MediClaim/repositories"
	"MediClaim/utils"
)

type UserService interface {
	Register(ctx context.Context, user *models.User) error
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	GetUser(ctx context.Context, p policy.Principal, userID string) (*models.User, error)
	ListUsers(ctx context.Context, p policy.Principal, role models.Role, page utils.Pagination) ([]models.User, int64, error)
	UpdateProfile(ctx context.Context, userID string, name, phone, address string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register validates signup data and creates the account. A short redis lock
// keyed on the email closes the duplicate-signup race window.
func (s *userService) Register(ctx context.Context, user *models.User) error {
	lockKey := fmt.Sprintf("user_lock:%s", user.Email)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, time.Minute)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return errors.New("failed to acquire lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	if err := utils.ValidateUserData(*user); err != nil {
		return invalidf("invalid user data: %v", err)
	}

	if exists, err := s.userRepo.EmailExists(ctx, user.Email); err != nil {
		return err
	} else if exists {
		return invalidf("email already registered")
	}

	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashedPassword

	return s.userRepo.CreateUser(ctx, user)
}

// Authenticate verifies credentials; it returns the same error for a missing
// account and a bad password.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return nil, invalidf("invalid email or password")
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user")
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, p policy.Principal, userID string) (*models.User, error) {
	// Users may always read their own record; anyone else goes through the
	// list rule (insurers and banks).
	if p.UserID != userID {
		if err := policy.Decide(p, policy.UserList, policy.Facts{}); err != nil {
			return nil, err
		}
	}
	return s.GetProfile(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, p policy.Principal, role models.Role, page utils.Pagination) ([]models.User, int64, error) {
	// Patients need the doctor directory to book appointments; everything
	// else is restricted to insurers and banks.
	if !(p.Role == models.RolePatient && role == models.RoleDoctor) {
		if err := policy.Decide(p, policy.UserList, policy.Facts{}); err != nil {
			return nil, 0, err
		}
	}
	if role != "" && !models.ValidRole(role) {
		return nil, 0, invalidf("unknown role %s", role)
	}
	return s.userRepo.ListUsers(ctx, role, page)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, name, phone, address string) error {
	if name == "" {
		return invalidf("name cannot be blank")
	}
	return s.userRepo.UpdateUserProfile(ctx, userID, name, phone, address)
}

func (s *userService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.Password, oldPassword) {
		return invalidf("current password is incorrect")
	}
	if err := utils.ValidatePassword(newPassword); err != nil {
		return invalidf("%v", err)
	}
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdateUserPassword(ctx, userID, hashed)
}
