package repositories

import (
	"database/sql"
	"fmt"

	"assekura/internal/models"
)

type PostRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{DB: db}
}

// Every read joins blog_posts with the translation row for the
// requested language. Posts without one simply don't appear; there is
// no fallback language.
const postColumns = `
	p.id, p.category, p.cover_url, p.published, p.created_at,
	t.language, t.slug, t.title, t.excerpt
`

func (r *PostRepository) ListByLanguage(language string) ([]*models.BlogPost, error) {
	q := `
		SELECT ` + postColumns + `
		FROM blog_posts p
		JOIN post_translations t ON t.post_id = p.id AND t.language = $1
		WHERE p.published = TRUE
		ORDER BY p.created_at DESC
	`
	return r.queryPosts(q, language)
}

func (r *PostRepository) ListByCategory(category, language string) ([]*models.BlogPost, error) {
	q := `
		SELECT ` + postColumns + `
		FROM blog_posts p
		JOIN post_translations t ON t.post_id = p.id AND t.language = $2
		WHERE p.published = TRUE AND p.category = $1
		ORDER BY p.created_at DESC
	`
	return r.queryPosts(q, category, language)
}

func (r *PostRepository) Search(query, language string) ([]*models.BlogPost, error) {
	q := `
		SELECT ` + postColumns + `
		FROM blog_posts p
		JOIN post_translations t ON t.post_id = p.id AND t.language = $2
		WHERE p.published = TRUE
		  AND (t.title ILIKE '%' || $1 || '%' OR t.excerpt ILIKE '%' || $1 || '%' OR t.body ILIKE '%' || $1 || '%')
		ORDER BY p.created_at DESC
	`
	return r.queryPosts(q, query, language)
}

func (r *PostRepository) GetBySlug(slug, language string) (*models.BlogPost, error) {
	q := `
		SELECT ` + postColumns + `, t.body
		FROM blog_posts p
		JOIN post_translations t ON t.post_id = p.id AND t.language = $2
		WHERE p.published = TRUE AND t.slug = $1
	`
	row := r.DB.QueryRow(q, slug, language)

	var post models.BlogPost
	if err := row.Scan(
		&post.ID, &post.Category, &post.CoverURL, &post.Published, &post.CreatedAt,
		&post.Language, &post.Slug, &post.Title, &post.Excerpt, &post.Body,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) Categories() ([]string, error) {
	rows, err := r.DB.Query(`SELECT DISTINCT category FROM blog_posts WHERE published = TRUE ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostRepository) queryPosts(q string, args ...any) ([]*models.BlogPost, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.BlogPost
	for rows.Next() {
		var post models.BlogPost
		if err := rows.Scan(
			&post.ID, &post.Category, &post.CoverURL, &post.Published, &post.CreatedAt,
			&post.Language, &post.Slug, &post.Title, &post.Excerpt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

// ---- admin side ----

func (r *PostRepository) Create(post *models.BlogPost, translations []models.PostTranslation) (int, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin create post: %w", err)
	}
	defer tx.Rollback()

	var id int
	if err := tx.QueryRow(`
		INSERT INTO blog_posts (category, cover_url, published, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`, post.Category, post.CoverURL, post.Published).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}

	for _, t := range translations {
		if _, err := tx.Exec(`
			INSERT INTO post_translations (post_id, language, slug, title, excerpt, body)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, t.Language, t.Slug, t.Title, t.Excerpt, t.Body); err != nil {
			return 0, fmt.Errorf("insert translation %s: %w", t.Language, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create post: %w", err)
	}
	return id, nil
}

func (r *PostRepository) Update(post *models.BlogPost, translations []models.PostTranslation) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin update post: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE blog_posts SET category = $1, cover_url = $2, published = $3 WHERE id = $4
	`, post.Category, post.CoverURL, post.Published, post.ID); err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	for _, t := range translations {
		if _, err := tx.Exec(`
			INSERT INTO post_translations (post_id, language, slug, title, excerpt, body)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (post_id, language) DO UPDATE
			SET slug = EXCLUDED.slug, title = EXCLUDED.title, excerpt = EXCLUDED.excerpt, body = EXCLUDED.body
		`, post.ID, t.Language, t.Slug, t.Title, t.Excerpt, t.Body); err != nil {
			return fmt.Errorf("upsert translation %s: %w", t.Language, err)
		}
	}

	return tx.Commit()
}

func (r *PostRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM blog_posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
