package persistent

import (
	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil || m.ID == "" {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
	}
}

func ToCategoryEntity(m *model.CategoryModel) *entity.Category {
	if m == nil {
		return nil
	}

	return &entity.Category{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Slug:        m.Slug,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
	}
}

func ToCategoryModel(e *entity.Category) *model.CategoryModel {
	if e == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Slug:        e.Slug,
		IsPublished: e.IsPublished,
		CreatedAt:   e.CreatedAt,
	}
}

func ToLocationEntity(m *model.LocationModel) *entity.Location {
	if m == nil {
		return nil
	}

	return &entity.Location{
		ID:          m.ID,
		Name:        m.Name,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
	}
}

func ToLocationModel(e *entity.Location) *model.LocationModel {
	if e == nil {
		return nil
	}

	return &model.LocationModel{
		ID:          e.ID,
		Name:        e.Name,
		IsPublished: e.IsPublished,
		CreatedAt:   e.CreatedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:           m.ID,
		Title:        m.Title,
		Text:         m.Text,
		PubDate:      m.PubDate.UTC(),
		IsPublished:  m.IsPublished,
		ImageURL:     m.ImageURL,
		AuthorID:     m.AuthorID,
		Author:       ToUserEntity(&m.Author),
		CategoryID:   m.CategoryID,
		Category:     ToCategoryEntity(m.Category),
		LocationID:   m.LocationID,
		Location:     ToLocationEntity(m.Location),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		CommentCount: m.CommentCount,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:          e.ID,
		Title:       e.Title,
		Text:        e.Text,
		PubDate:     e.PubDate.UTC(),
		IsPublished: e.IsPublished,
		ImageURL:    e.ImageURL,
		AuthorID:    e.AuthorID,
		CategoryID:  e.CategoryID,
		LocationID:  e.LocationID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		Text:      m.Text,
		PostID:    m.PostID,
		AuthorID:  m.AuthorID,
		Author:    ToUserEntity(&m.Author),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        e.ID,
		Text:      e.Text,
		PostID:    e.PostID,
		AuthorID:  e.AuthorID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
