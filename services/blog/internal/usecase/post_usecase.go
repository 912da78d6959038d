package usecase

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"blogicum/pkg/logger"
	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/policy"
	"blogicum/services/blog/internal/repo/persistent"

	"github.com/google/uuid"
)

const maxTitleLength = 256

// ImageStorage keeps post images. *s3.Client satisfies it.
type ImageStorage interface {
	UploadFile(key string, body io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
	KeyFromURL(url string) (string, bool)
}

// ImageUpload is an image attached to a post form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// PostInput carries the post form. On create a nil PubDate means now and a
// nil IsPublished means published; on update nil leaves the stored value.
type PostInput struct {
	Title       string
	Text        string
	PubDate     *time.Time
	IsPublished *bool
	CategoryID  *string
	LocationID  *string
	Image       *ImageUpload
}

type PostUseCase interface {
	CreatePost(principal entity.Principal, input PostInput) (*entity.Post, error)
	UpdatePost(principal entity.Principal, postID string, input PostInput) (*entity.Post, error)
	DeletePost(principal entity.Principal, postID string) error
}

type postUseCase struct {
	postRepo     persistent.PostRepository
	userRepo     persistent.UserRepository
	categoryRepo persistent.CategoryRepository
	locationRepo persistent.LocationRepository
	images       ImageStorage
	clock        policy.Clock
	logger       *logger.Logger
}

// NewPostUseCase builds the post mutations. images may be nil, in which case
// posts with an image are rejected.
func NewPostUseCase(
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
	categoryRepo persistent.CategoryRepository,
	locationRepo persistent.LocationRepository,
	images ImageStorage,
	clock policy.Clock,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:     postRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		images:       images,
		clock:        clock,
		logger:       logger,
	}
}

func (uc *postUseCase) CreatePost(principal entity.Principal, input PostInput) (*entity.Post, error) {
	if err := requireAccount(uc.userRepo, principal); err != nil {
		return nil, err
	}

	post := &entity.Post{
		AuthorID:    principal.UserID,
		PubDate:     uc.clock.Now().UTC(),
		IsPublished: true,
	}
	if err := uc.apply(post, input); err != nil {
		return nil, err
	}

	if input.Image != nil {
		url, err := uc.upload(principal.UserID, input.Image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = url
	}

	if err := uc.postRepo.Create(post); err != nil {
		uc.removeImage(post.ImageURL)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.logger.Info("Post %s created by %s", post.ID, principal.UserID)
	return uc.postRepo.GetByID(post.ID)
}

func (uc *postUseCase) UpdatePost(principal entity.Principal, postID string, input PostInput) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(principal, post.AuthorID); err != nil {
		return nil, err
	}

	if err := uc.apply(post, input); err != nil {
		return nil, err
	}

	oldImage := post.ImageURL
	if input.Image != nil {
		url, err := uc.upload(principal.UserID, input.Image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = url
	}

	if err := uc.postRepo.Update(post); err != nil {
		if post.ImageURL != oldImage {
			uc.removeImage(post.ImageURL)
		}
		return nil, err
	}
	if post.ImageURL != oldImage {
		uc.removeImage(oldImage)
	}

	return uc.postRepo.GetByID(post.ID)
}

func (uc *postUseCase) DeletePost(principal entity.Principal, postID string) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(principal, post.AuthorID); err != nil {
		return err
	}

	if err := uc.postRepo.Delete(post.ID); err != nil {
		return err
	}
	uc.removeImage(post.ImageURL)

	uc.logger.Info("Post %s deleted by %s", post.ID, principal.UserID)
	return nil
}

// requireAccount rejects anonymous principals and tokens whose user no
// longer exists.
func requireAccount(userRepo persistent.UserRepository, principal entity.Principal) error {
	if !principal.IsAuthenticated() {
		return entity.ErrUnauthenticated
	}
	if _, err := userRepo.GetByID(principal.UserID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.ErrUnauthenticated
		}
		return err
	}
	return nil
}

// apply validates input and copies it onto post. A nil PubDate or
// IsPublished keeps the value already on post.
func (uc *postUseCase) apply(post *entity.Post, input PostInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return entity.NewValidationError("title", "this field is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return entity.NewValidationError("title", fmt.Sprintf("at most %d characters", maxTitleLength))
	}
	if strings.TrimSpace(input.Text) == "" {
		return entity.NewValidationError("text", "this field is required")
	}

	categoryID, err := uc.publishedCategory(input.CategoryID)
	if err != nil {
		return err
	}
	locationID, err := uc.publishedLocation(input.LocationID)
	if err != nil {
		return err
	}

	post.Title = title
	post.Text = input.Text
	if input.PubDate != nil {
		post.PubDate = input.PubDate.UTC()
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}
	post.CategoryID = categoryID
	post.LocationID = locationID
	return nil
}

// publishedCategory accepts only categories offered as choices: existing and published.
func (uc *postUseCase) publishedCategory(id *string) (*string, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	category, err := uc.categoryRepo.GetByID(*id)
	if errors.Is(err, entity.ErrNotFound) || (err == nil && !category.IsPublished) {
		return nil, entity.ErrInvalidCategory
	}
	if err != nil {
		return nil, err
	}
	return &category.ID, nil
}

func (uc *postUseCase) publishedLocation(id *string) (*string, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	location, err := uc.locationRepo.GetByID(*id)
	if errors.Is(err, entity.ErrNotFound) || (err == nil && !location.IsPublished) {
		return nil, entity.ErrInvalidLocation
	}
	if err != nil {
		return nil, err
	}
	return &location.ID, nil
}

func (uc *postUseCase) upload(userID string, image *ImageUpload) (string, error) {
	if uc.images == nil {
		return "", entity.NewValidationError("image", "image uploads are disabled")
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", entity.NewValidationError("image", "file is not an image")
	}

	key := fmt.Sprintf("posts_images/%s/%s%s", userID, uuid.New().String(), strings.ToLower(filepath.Ext(image.Filename)))
	url, err := uc.images.UploadFile(key, image.Body, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, nil
}

// removeImage deletes a stored image. Failures are logged, not returned.
func (uc *postUseCase) removeImage(url string) {
	if url == "" || uc.images == nil {
		return
	}
	key, ok := uc.images.KeyFromURL(url)
	if !ok {
		uc.logger.Warn("Image %s is not in our bucket, skipping delete", url)
		return
	}
	if err := uc.images.DeleteFile(key); err != nil {
		uc.logger.Error("Failed to delete image %s: %v", key, err)
	}
}
