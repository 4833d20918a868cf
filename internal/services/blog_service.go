package services

import (
	"strings"

	"assekura/internal/models"
)

const defaultLanguage = "de"

// PostStore is implemented by repositories.PostRepository.
type PostStore interface {
	ListByLanguage(language string) ([]*models.BlogPost, error)
	ListByCategory(category, language string) ([]*models.BlogPost, error)
	Search(query, language string) ([]*models.BlogPost, error)
	GetBySlug(slug, language string) (*models.BlogPost, error)
	Categories() ([]string, error)
	Create(post *models.BlogPost, translations []models.PostTranslation) (int, error)
	Update(post *models.BlogPost, translations []models.PostTranslation) error
	Delete(id int) error
}

type BlogService struct {
	Store PostStore
}

func NewBlogService(store PostStore) *BlogService {
	return &BlogService{Store: store}
}

func normalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return defaultLanguage
	}
	return language
}

func (s *BlogService) GetAllPosts(language string) ([]*models.BlogPost, error) {
	return s.Store.ListByLanguage(normalizeLanguage(language))
}

func (s *BlogService) GetPostBySlug(slug, language string) (*models.BlogPost, error) {
	return s.Store.GetBySlug(slug, normalizeLanguage(language))
}

func (s *BlogService) GetPostsByCategory(category, language string) ([]*models.BlogPost, error) {
	return s.Store.ListByCategory(category, normalizeLanguage(language))
}

func (s *BlogService) SearchPosts(query, language string) ([]*models.BlogPost, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.BlogPost{}, nil
	}
	return s.Store.Search(query, normalizeLanguage(language))
}

func (s *BlogService) GetCategories() ([]string, error) {
	return s.Store.Categories()
}

func (s *BlogService) CreatePost(post *models.BlogPost, translations []models.PostTranslation) (int, error) {
	return s.Store.Create(post, translations)
}

func (s *BlogService) UpdatePost(post *models.BlogPost, translations []models.PostTranslation) error {
	return s.Store.Update(post, translations)
}

func (s *BlogService) DeletePost(id int) error {
	return s.Store.Delete(id)
}
