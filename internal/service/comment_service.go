package service

import (
	"context"

	"bridgeforum/internal/models"
	"bridgeforum/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	images      ImageUploader
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Body   string
	Image  *UploadImageInput
}

type ReplyInput struct {
	UserID   uint
	ParentID uint
	Body     string
	Image    *UploadImageInput
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Body      string
}

type DeleteCommentInput struct {
	UserID    uint
	IsAdmin   bool
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	images ImageUploader,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		images:      images,
	}
}

// CreateComment adds a top-level comment. A comment needs text or an image.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	comment := &models.Comment{UserID: in.UserID, PostID: in.PostID}
	if err := s.save(ctx, comment, in.Body, in.Image); err != nil {
		return nil, err
	}
	return comment, nil
}

// Reply answers a comment on the same post. Replies to a reply attach to its top-level
// comment so threads stay one level deep.
func (s *CommentService) Reply(ctx context.Context, in ReplyInput) (*models.Comment, error) {
	parent, err := s.commentRepo.GetByID(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}
	parentID := parent.ID
	if parent.ParentID != nil {
		parentID = *parent.ParentID
	}

	reply := &models.Comment{UserID: in.UserID, PostID: parent.PostID, ParentID: &parentID}
	if err := s.save(ctx, reply, in.Body, in.Image); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *CommentService) save(ctx context.Context, comment *models.Comment, rawBody string, img *UploadImageInput) error {
	hasImage := img != nil && len(img.Content) > 0
	body, err := validateBody(rawBody, hasImage)
	if err != nil {
		return err
	}
	if hasImage {
		img.UserID = comment.UserID
		img.Prefix = ImagePrefixComments
	}
	imageURL, err := uploadOptional(ctx, s.images, img)
	if err != nil {
		return err
	}

	comment.Body = body
	comment.ImageURL = imageURL
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		discardImage(ctx, s.images, imageURL)
		return err
	}
	return nil
}

// UpdateComment changes the text of a comment. Only the author may edit.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You do not have permission to edit this comment")
	}
	body, err := validateBody(in.Body, comment.ImageURL != "")
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.UpdateBody(ctx, comment.ID, body); err != nil {
		return nil, err
	}
	comment.Body = body
	return comment, nil
}

// DeleteComment removes a comment and its replies. Authors and admins may delete.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID && !in.IsAdmin {
		return nil, models.NewForbiddenError("You do not have permission to delete this comment")
	}
	if err := s.commentRepo.DeleteWithReplies(ctx, comment.ID); err != nil {
		return nil, err
	}
	discardImage(ctx, s.images, comment.ImageURL)
	return comment, nil
}
