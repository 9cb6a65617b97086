package service

import (
	"context"
	"errors"
	"strings"

	"tagline/internal/models"
	"tagline/internal/repository"
	"tagline/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
var ErrInvalidCredentials = models.NewFieldError("non_field_errors", "Unable to log in with provided credentials.")

type UserService struct {
	repos *repository.Repos
}

type RegisterInput struct {
	Email    string
	Password string
}

// UpdateProfileInput applies every non-empty field.
type UpdateProfileInput struct {
	UserID         uint
	Email          string
	Bio            string
	ProfilePicture string
	Password       string
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{repos: repos}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hashed), nil
}

// Register creates an account with a hashed password. Emails are unique
// after normalization.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := validation.NormalizeEmail(in.Email)
	fields := map[string]string{}
	if err := validation.ValidateEmail(email); err != nil {
		fields["email"] = err.Error()
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, &models.AppError{Code: models.CodeValidation, Message: "Invalid registration data", Fields: fields}
	}

	existing, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("A user with this email already exists")
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns the matching user.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.repos.Users.GetByID(ctx, id)
}

// GetProfile assembles the user with follow counts and ids and their posts,
// newest first.
func (s *UserService) GetProfile(ctx context.Context, id, currentUserID uint) (*models.Profile, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	followers, err := s.repos.Follows.FollowerIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	following, err := s.repos.Follows.FollowingIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := s.repos.Posts.List(ctx, repository.PostFilter{
		AuthorID: id,
		OrderBy:  repository.OrderDateCreated,
		Desc:     true,
	}, currentUserID)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		User:           *user,
		FollowersCount: int64(len(followers)),
		FollowingCount: int64(len(following)),
		Followers:      followers,
		Following:      following,
		Posts:          posts,
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.repos.Users.GetWithPassword(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" {
		email := validation.NormalizeEmail(in.Email)
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewFieldError("email", err.Error())
		}
		if email != user.Email {
			existing, err := s.repos.Users.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, models.NewConflictError("A user with this email already exists")
			}
			user.Email = email
		}
	}
	if in.Bio != "" {
		if err := validation.ValidateBio(in.Bio); err != nil {
			return nil, models.NewFieldError("bio", err.Error())
		}
		user.Bio = in.Bio
	}
	if pic := strings.TrimSpace(in.ProfilePicture); pic != "" {
		if err := validation.ValidateImageURL(pic); err != nil {
			return nil, models.NewFieldError("profile_picture", "profile_picture "+err.Error())
		}
		user.ProfilePicture = pic
	}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewFieldError("password", err.Error())
		}
		hashed, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.repos.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.repos.Users.GetWithPassword(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return models.NewFieldError("old_password", "Wrong password.")
		}
		return models.NewInternalError(err)
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewFieldError("new_password", err.Error())
	}
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.repos.Users.Update(ctx, user)
}
