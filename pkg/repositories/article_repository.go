package repositories

import (
	"context"
	"fmt"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/database"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
)

// ArticleRepository defines Knowledge Hub article data access.
type ArticleRepository interface {
	// GetArticles returns the whole corpus ordered by ID.
	GetArticles(ctx context.Context) ([]models.Article, error)

	// UpsertArticle creates or replaces an article. The numeric ID is
	// assigned by the caller, never generated here.
	UpsertArticle(ctx context.Context, article *models.Article) error
}

type articleRepository struct {
	db *database.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *database.DB) ArticleRepository {
	return &articleRepository{db: db}
}

var _ ArticleRepository = (*articleRepository)(nil)

func (r *articleRepository) GetArticles(ctx context.Context) ([]models.Article, error) {
	query := `SELECT id, title, category, summary, content, COALESCE(date, '') FROM articles ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Category, &a.Summary, &a.Content, &a.Date); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return articles, nil
}

func (r *articleRepository) UpsertArticle(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (id, title, category, summary, content, date)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			summary = EXCLUDED.summary,
			content = EXCLUDED.content,
			date = EXCLUDED.date`

	_, err := r.db.Exec(ctx, query,
		article.ID, article.Title, article.Category, article.Summary, article.Content, article.Date)
	if err != nil {
		return fmt.Errorf("upsert article: %w", err)
	}
	return nil
}
