package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/workhive/jobportal-api/internal/dto"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
)

// BlogService orchestrates the admin blog surface.
type BlogService struct {
	store  entityStore
	logger *zap.Logger
}

// NewBlogService constructs a BlogService.
func NewBlogService(store entityStore, logger *zap.Logger) *BlogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogService{store: store, logger: logger}
}

// List returns a filtered page of blog posts with their authors attached.
func (s *BlogService) List(ctx context.Context, req dto.BlogPostListRequest) ([]dto.BlogPostItem, *models.Pagination, error) {
	filters := query.FilterSpec{
		"published":    req.Published,
		"author_id":    req.AuthorID,
		"search":       req.Search,
		"created_from": req.CreatedFrom,
		"created_to":   req.CreatedTo,
	}

	var posts []models.BlogPost
	pagination, err := s.store.List(ctx, "blog_posts", filters, req.SortBy, req.SortDirection, req.Page, req.PerPage, &posts)
	if err != nil {
		return nil, nil, err
	}

	authorIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		authorIDs = append(authorIDs, post.AuthorID)
	}
	var authors []models.User
	if err := s.store.Related(ctx, "blog_posts", "author", authorIDs, &authors); err != nil {
		return nil, nil, err
	}
	byID := make(map[string]models.User, len(authors))
	for _, author := range authors {
		byID[author.ID] = author
	}

	items := make([]dto.BlogPostItem, 0, len(posts))
	for _, post := range posts {
		item := dto.BlogPostItem{BlogPost: post}
		if author, ok := byID[post.AuthorID]; ok {
			item.AuthorName = author.FullName
		}
		items = append(items, item)
	}
	return items, pagination, nil
}
