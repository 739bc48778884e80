package service

import (
	"context"

	"critica/internal/middleware"
	"critica/internal/models"
	"critica/internal/policy"
	"critica/internal/repository"
	"critica/internal/validation"
)

// UserService covers the admin-only user administration endpoints plus
// the self-service profile at /users/me/.
type UserService struct {
	userRepo repository.UserRepository
}

type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

// UpdateUserInput carries a partial update; nil fields are left alone.
type UpdateUserInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, caller policy.Caller, search string, limit, offset int) ([]models.User, int64, error) {
	if !policy.Allow(policy.VerbList, policy.ResourceUsers, caller) {
		return nil, 0, models.NewPermissionDeniedError("Only administrators can manage users")
	}
	return s.userRepo.List(ctx, search, limit, offset)
}

func (s *UserService) GetUser(ctx context.Context, caller policy.Caller, username string) (*models.User, error) {
	if !policy.Allow(policy.VerbRetrieve, policy.ResourceUsers, caller) {
		return nil, models.NewPermissionDeniedError("Only administrators can manage users")
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, caller policy.Caller, in CreateUserInput) (*models.User, error) {
	if !policy.Allow(policy.VerbCreate, policy.ResourceUsers, caller) {
		return nil, models.NewPermissionDeniedError("Only administrators can manage users")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}

	role := models.Role(in.Role)
	if in.Role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, models.NewFieldValidationError("role", "Role must be one of: user, moderator, admin")
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "User created by admin", "username", user.Username, "role", string(user.Role))
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, caller policy.Caller, username string, in UpdateUserInput) (*models.User, error) {
	if !policy.Allow(policy.VerbUpdate, policy.ResourceUsers, caller) {
		return nil, models.NewPermissionDeniedError("Only administrators can manage users")
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	if in.Role != nil {
		role := models.Role(*in.Role)
		if !role.Valid() {
			return nil, models.NewFieldValidationError("role", "Role must be one of: user, moderator, admin")
		}
		user.Role = role
	}
	if err := applyProfile(user, in); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, caller policy.Caller, username string) error {
	if !policy.Allow(policy.VerbDelete, policy.ResourceUsers, caller) {
		return models.NewPermissionDeniedError("Only administrators can manage users")
	}
	return s.userRepo.DeleteByUsername(ctx, username)
}

// GetMe returns the caller's own record. The admin-only users policy
// does not apply to the /users/me/ endpoints.
func (s *UserService) GetMe(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateMe applies a partial profile update to the caller's own record.
// Role is not self-assignable; a role field in the payload is ignored.
func (s *UserService) UpdateMe(ctx context.Context, userID uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := applyProfile(user, in); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func applyProfile(user *models.User, in UpdateUserInput) error {
	if in.Username != nil {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return err
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return err
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	return nil
}
