package service

import (
	"context"
	"strings"

	"bridgeforum/internal/models"
	"bridgeforum/internal/repository"
	"bridgeforum/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
	images   ImageUploader
}

// UpdateProfileInput carries the profile form. Age is the raw form value; Photo is optional.
type UpdateProfileInput struct {
	UserID     uint
	Username   string
	Email      string
	Country    string
	Age        string
	Profession string
	Photo      *UploadImageInput
}

func NewUserService(userRepo repository.UserRepository, images ImageUploader) *UserService {
	return &UserService{userRepo: userRepo, images: images}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// UpdateProfile saves the profile form. A blank email keeps the current address and a missing
// photo keeps the current picture.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	current, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	email := validation.NormalizeEmail(in.Email)
	if email == "" {
		email = current.Email
	} else if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	age, err := validation.ParseAge(in.Age)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if email != current.Email {
		other, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != current.ID {
			return nil, models.NewConflictError("Email already registered")
		}
	}

	if in.Photo != nil {
		in.Photo.UserID = current.ID
		in.Photo.Prefix = ImagePrefixProfiles
	}
	photoURL, err := uploadOptional(ctx, s.images, in.Photo)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Username = strings.TrimSpace(in.Username)
	updated.Email = email
	updated.Country = strings.TrimSpace(in.Country)
	updated.Age = age
	updated.Profession = strings.TrimSpace(in.Profession)
	if photoURL != "" {
		updated.Photo = photoURL
	}

	if err := s.userRepo.UpdateProfile(ctx, &updated); err != nil {
		discardImage(ctx, s.images, photoURL)
		return nil, err
	}
	if photoURL != "" && current.Photo != "" {
		discardImage(ctx, s.images, current.Photo)
	}
	return &updated, nil
}
