package usecase

import (
	"fmt"
	"strings"

	"blogicum/pkg/logger"
	"blogicum/pkg/queue"
	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/policy"
	"blogicum/services/blog/internal/repo/persistent"
)

// Notifier publishes notification tasks. *queue.Client satisfies it.
type Notifier interface {
	PublishNotificationTask(routingKey string, task queue.Task) error
}

type CommentUseCase interface {
	AddComment(principal entity.Principal, postID, text string) (*entity.Comment, error)
	UpdateComment(principal entity.Principal, postID, commentID, text string) (*entity.Comment, error)
	DeleteComment(principal entity.Principal, postID, commentID string) error
}

type commentUseCase struct {
	postRepo    persistent.PostRepository
	commentRepo persistent.CommentRepository
	userRepo    persistent.UserRepository
	notifier    Notifier
	clock       policy.Clock
	logger      *logger.Logger
}

// NewCommentUseCase builds the comment mutations. notifier may be nil.
func NewCommentUseCase(
	postRepo persistent.PostRepository,
	commentRepo persistent.CommentRepository,
	userRepo persistent.UserRepository,
	notifier Notifier,
	clock policy.Clock,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
	}
}

// AddComment comments on a post the principal is allowed to open.
func (uc *commentUseCase) AddComment(principal entity.Principal, postID, text string) (*entity.Comment, error) {
	if err := requireAccount(uc.userRepo, principal); err != nil {
		return nil, err
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(principal, post, uc.clock.Now()) {
		return nil, entity.ErrNotFound
	}

	if err := validateCommentText(text); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		Text:      text,
		PostID:    post.ID,
		AuthorID:  principal.UserID,
		CreatedAt: uc.clock.Now().UTC(),
	}
	if err := uc.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	uc.notifyAuthor(post, comment)
	return uc.commentRepo.GetByID(comment.ID)
}

func (uc *commentUseCase) UpdateComment(principal entity.Principal, postID, commentID, text string) (*entity.Comment, error) {
	comment, err := uc.ownedComment(principal, postID, commentID)
	if err != nil {
		return nil, err
	}
	if err := validateCommentText(text); err != nil {
		return nil, err
	}

	comment.Text = text
	if err := uc.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return uc.commentRepo.GetByID(comment.ID)
}

func (uc *commentUseCase) DeleteComment(principal entity.Principal, postID, commentID string) error {
	comment, err := uc.ownedComment(principal, postID, commentID)
	if err != nil {
		return err
	}
	return uc.commentRepo.Delete(comment.ID)
}

// ownedComment loads a comment of postID that principal may change.
// A comment of another post is reported as missing.
func (uc *commentUseCase) ownedComment(principal entity.Principal, postID, commentID string) (*entity.Comment, error) {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, entity.ErrNotFound
	}
	if err := policy.Authorize(principal, comment.AuthorID); err != nil {
		return nil, err
	}
	return comment, nil
}

func validateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return entity.NewValidationError("text", "this field is required")
	}
	return nil
}

func (uc *commentUseCase) notifyAuthor(post *entity.Post, comment *entity.Comment) {
	if uc.notifier == nil || post.AuthorID == comment.AuthorID {
		return
	}

	task := queue.Task{
		Type:      queue.RoutingKeyNewComment,
		UserID:    post.AuthorID,
		PostID:    post.ID,
		CommentID: comment.ID,
		ActorID:   comment.AuthorID,
		Priority:  5,
		CreatedAt: comment.CreatedAt,
	}
	if err := uc.notifier.PublishNotificationTask(queue.RoutingKeyNewComment, task); err != nil {
		uc.logger.Warn("Failed to publish comment notification for post %s: %v", post.ID, err)
	}
}
