package usecase

import (
	"fmt"

	"blogicum/pkg/logger"
	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/policy"
	"blogicum/services/blog/internal/repo/persistent"
)

const DefaultPostsPerPage = 10

// PostDetail is a single post with its comments, oldest first.
type PostDetail struct {
	Post     *entity.Post
	Comments []*entity.Comment
}

type CategoryPosts struct {
	Category *entity.Category
	Page     *entity.Page[*entity.Post]
}

type ProfilePosts struct {
	Profile *entity.User
	Page    *entity.Page[*entity.Post]
}

// ContentUseCase answers every read of the blog. Lists are ordered by
// publish date descending, then id descending, and carry comment counts.
type ContentUseCase interface {
	ListPosts(page int) (*entity.Page[*entity.Post], error)
	ListCategoryPosts(slug string, page int) (*CategoryPosts, error)
	ListProfilePosts(username string, principal entity.Principal, page int) (*ProfilePosts, error)
	GetPost(postID string, principal entity.Principal) (*PostDetail, error)
	ListCategories() ([]*entity.Category, error)
	ListLocations() ([]*entity.Location, error)
}

type contentUseCase struct {
	postRepo     persistent.PostRepository
	commentRepo  persistent.CommentRepository
	categoryRepo persistent.CategoryRepository
	locationRepo persistent.LocationRepository
	userRepo     persistent.UserRepository
	clock        policy.Clock
	perPage      int
	logger       *logger.Logger
}

func NewContentUseCase(
	postRepo persistent.PostRepository,
	commentRepo persistent.CommentRepository,
	categoryRepo persistent.CategoryRepository,
	locationRepo persistent.LocationRepository,
	userRepo persistent.UserRepository,
	clock policy.Clock,
	perPage int,
	logger *logger.Logger,
) ContentUseCase {
	if perPage <= 0 {
		perPage = DefaultPostsPerPage
	}
	return &contentUseCase{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		clock:        clock,
		perPage:      perPage,
		logger:       logger,
	}
}

func (uc *contentUseCase) paginate(q entity.PostQuery, page int) (*entity.Page[*entity.Post], error) {
	total, err := uc.postRepo.Count(q)
	if err != nil {
		return nil, err
	}

	number, offset, totalPages := entity.PageBounds(page, uc.perPage, total)
	q.Limit = uc.perPage
	q.Offset = offset

	posts, err := uc.postRepo.List(q)
	if err != nil {
		return nil, err
	}
	return entity.NewPage(posts, number, uc.perPage, total, totalPages), nil
}

func (uc *contentUseCase) ListPosts(page int) (*entity.Page[*entity.Post], error) {
	now := uc.clock.Now()
	return uc.paginate(entity.PostQuery{LiveAt: &now}, page)
}

func (uc *contentUseCase) ListCategoryPosts(slug string, page int) (*CategoryPosts, error) {
	category, err := uc.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !category.IsPublished {
		return nil, entity.ErrNotFound
	}

	now := uc.clock.Now()
	posts, err := uc.paginate(entity.PostQuery{CategoryID: category.ID, LiveAt: &now}, page)
	if err != nil {
		return nil, err
	}
	return &CategoryPosts{Category: category, Page: posts}, nil
}

// ListProfilePosts shows the owner every one of their posts. Anyone else sees
// only the live ones.
func (uc *contentUseCase) ListProfilePosts(username string, principal entity.Principal, page int) (*ProfilePosts, error) {
	profile, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	q := entity.PostQuery{AuthorID: profile.ID}
	if !policy.CanEdit(principal, profile.ID) {
		now := uc.clock.Now()
		q.LiveAt = &now
	}

	posts, err := uc.paginate(q, page)
	if err != nil {
		return nil, err
	}
	return &ProfilePosts{Profile: profile, Page: posts}, nil
}

func (uc *contentUseCase) GetPost(postID string, principal entity.Principal) (*PostDetail, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(principal, post, uc.clock.Now()) {
		return nil, entity.ErrNotFound
	}

	comments, err := uc.commentRepo.ListByPost(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	return &PostDetail{Post: post, Comments: comments}, nil
}

func (uc *contentUseCase) ListCategories() ([]*entity.Category, error) {
	return uc.categoryRepo.List(true)
}

func (uc *contentUseCase) ListLocations() ([]*entity.Location, error) {
	return uc.locationRepo.List(true)
}

