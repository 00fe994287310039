package services

import (
	"context"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
)

// NewsService is a thin CRUD layer over the news collection. Reads bump the
// view counter; writes are admin-gated at the HTTP layer.
type NewsService struct {
	repo domain.NewsRepository
}

func NewNewsService(repo domain.NewsRepository) *NewsService {
	return &NewsService{repo: repo}
}

type NewsInput struct {
	Title    string              `json:"title"`
	Body     string              `json:"body"`
	Category domain.NewsCategory `json:"category"`
	ImageURL string              `json:"imageUrl"`
	Publish  bool                `json:"publish"`
}

func (s *NewsService) Create(ctx context.Context, author *domain.User, in NewsInput) (*domain.News, error) {
	if in.Title == "" || in.Body == "" {
		return nil, serrors.NewInvalidRequest("title and body are required")
	}
	if in.Category == "" {
		in.Category = domain.NewsCategoryGeneral
	}
	n := &domain.News{
		Title:     in.Title,
		Body:      in.Body,
		Category:  in.Category,
		ImageURL:  in.ImageURL,
		AuthorID:  author.ID,
		Published: in.Publish,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Get returns the article and counts the view. Unpublished articles are
// visible to admins only.
func (s *NewsService) Get(ctx context.Context, id string, viewer *domain.User) (*domain.News, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.Published && !HasRole(viewer, domain.RoleAdmin) {
		return nil, serrors.ErrNotFound
	}
	if err := s.repo.IncrementViews(ctx, id); err == nil {
		n.Views++
	}
	return n, nil
}

func (s *NewsService) List(ctx context.Context, viewer *domain.User, category domain.NewsCategory, limit, offset int64) ([]*domain.News, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	onlyPublished := !HasRole(viewer, domain.RoleAdmin)
	return s.repo.List(ctx, onlyPublished, category, limit, offset)
}

func (s *NewsService) Update(ctx context.Context, id string, in NewsInput) (*domain.News, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		n.Title = in.Title
	}
	if in.Body != "" {
		n.Body = in.Body
	}
	if in.Category != "" {
		n.Category = in.Category
	}
	if in.ImageURL != "" {
		n.ImageURL = in.ImageURL
	}
	n.Published = in.Publish
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
