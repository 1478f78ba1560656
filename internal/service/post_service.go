package service

import (
	"context"

	"bridgeforum/internal/models"
	"bridgeforum/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	images   ImageUploader
}

type CreatePostInput struct {
	UserID           uint
	Body             string
	FrustrationLevel int
	Image            *UploadImageInput
}

type UpdatePostInput struct {
	UserID uint
	PostID uint
	Body   string
}

type DeletePostInput struct {
	UserID  uint
	IsAdmin bool
	PostID  uint
}

func NewPostService(postRepo repository.PostRepository, images ImageUploader) *PostService {
	return &PostService{postRepo: postRepo, images: images}
}

// CreatePost uploads the optional image first and drops it again if the post cannot be saved.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	body, err := validateBody(in.Body, false)
	if err != nil {
		return nil, err
	}
	if !models.ValidFrustrationLevel(in.FrustrationLevel) {
		return nil, models.NewValidationError("frustration level must be between 1 and 10")
	}

	if in.Image != nil {
		in.Image.UserID = in.UserID
		in.Image.Prefix = ImagePrefixPosts
	}
	imageURL, err := uploadOptional(ctx, s.images, in.Image)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Body:             body,
		FrustrationLevel: in.FrustrationLevel,
		ImageURL:         imageURL,
		UserID:           in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		discardImage(ctx, s.images, imageURL)
		return nil, err
	}
	return post, nil
}

// GetPost loads a post with its comment thread.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetWithComments(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) ListUserPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListByUser(ctx, userID, limit, offset)
}

// UpdatePost changes the body. Only the author may edit.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You do not have permission to edit this post")
	}
	body, err := validateBody(in.Body, false)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.UpdateBody(ctx, post.ID, body); err != nil {
		return nil, err
	}
	post.Body = body
	return post, nil
}

// DeletePost removes the post and its comments. Authors and admins may delete.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID && !in.IsAdmin {
		return models.NewForbiddenError("You do not have permission to delete this post")
	}
	if err := s.postRepo.DeleteWithComments(ctx, post.ID); err != nil {
		return err
	}
	discardImage(ctx, s.images, post.ImageURL)
	return nil
}
