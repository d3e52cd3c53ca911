package user

import (
	"context"
	"errors"
	"fmt"
	"myntraMarket/domain"
	"myntraMarket/pkg/logger"
	"myntraMarket/pkg/utils"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var validRoles = map[string]bool{
	RoleCustomer: true,
	RoleAdmin:    true,
}

type userService struct {
	userRepo UserRepository
	validate *validator.Validate
}

func NewUserService(userRepo UserRepository, validate *validator.Validate) *userService {
	return &userService{
		userRepo: userRepo,
		validate: validate,
	}
}

func (s *userService) CreateUser(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create user")
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid password")
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	if user.FullName == "" {
		logger.Error("Invalid user data: full name is required")
		return domain.User{}, errors.New("full name is required")
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if user.Role == "" {
		user.Role = RoleCustomer
	}
	if !validRoles[user.Role] {
		logger.Error("Invalid role", "role", user.Role)
		return domain.User{}, errors.New("invalid role")
	}

	// Reject duplicate emails before hitting the unique constraint.
	if _, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil {
		logger.Error("email already registered", "email", user.Email)
		return domain.User{}, errors.New("email already registered")
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("failed to hash password", err)
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.Error("failed to create user", err)
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created successfully", "user_id", user.ID)

	return *user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get user by id")
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("invalid user id")
		return domain.User{}, errors.New("invalid user id")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find user", err)
		return domain.User{}, err
	}

	return user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all users")
		return nil, fmt.Errorf("context error: %w", err)
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all users", err)
		return nil, err
	}

	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when update user")
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("user not found", err)
		return domain.User{}, errors.New("user not found")
	}

	if updateData.FullName != "" {
		user.FullName = updateData.FullName
	}

	if updateData.Password != "" {
		if err := s.validate.Var(updateData.Password, "min=6"); err != nil {
			logger.Error("Invalid password")
			return domain.User{}, errors.New("password must be at least 6 characters")
		}

		hashed, err := utils.HashPassword(updateData.Password)
		if err != nil {
			logger.Error("failed to hash password", err)
			return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, &user); err != nil {
		logger.Error("failed to update user", err)
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	logger.Info("user updated success", "user_id", id)

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when delete user")
		return fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("invalid user id when deleting user")
		return errors.New("invalid user id")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		logger.Error("user not found", err)
		return errors.New("user not found")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete user", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.Info("user deleted success", "user_id", id)

	return nil
}
