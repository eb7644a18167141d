package manga

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kaminari/internal/platform/apperr"
	"github.com/taibuivan/kaminari/internal/platform/database/schema"
	"github.com/taibuivan/kaminari/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListManga(context context.Context, f Filter, limit, offset int) ([]*Manga, int, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE TRUE
	`,
		strings.Join(schema.CoreManga.Columns(), ", "), schema.CoreManga.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE TRUE`, schema.CoreManga.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		clause := fmt.Sprintf(" AND %s ILIKE $", schema.CoreManga.Title) + itos(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	if f.Status != "" {
		clause := fmt.Sprintf(" AND %s = $", schema.CoreManga.Status) + itos(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, f.Status)
		countArgs = append(countArgs, f.Status)
	}

	query += fmt.Sprintf(" ORDER BY %s DESC LIMIT $", schema.CoreManga.TotalViews) + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_manga")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_manga")
	}
	defer rows.Close()

	var series []*Manga
	for rows.Next() {
		m := &Manga{}
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Slug, &m.Description, &m.CoverImageURL,
			&m.Status, &m.Rating, &m.TotalViews, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_manga")
		}
		series = append(series, m)
	}

	return series, total, nil
}

func (repository *PostgresRepository) GetManga(context context.Context, id string) (*Manga, error) {
	return repository.getOne(context, schema.CoreManga.ID, id)
}

func (repository *PostgresRepository) GetMangaBySlug(context context.Context, slug string) (*Manga, error) {
	return repository.getOne(context, schema.CoreManga.Slug, slug)
}

func (repository *PostgresRepository) getOne(context context.Context, column, value string) (*Manga, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
	`,
		strings.Join(schema.CoreManga.Columns(), ", "), schema.CoreManga.Table, column,
	)
	m := &Manga{}

	err := repository.db.QueryRow(context, query, value).Scan(
		&m.ID, &m.Title, &m.Slug, &m.Description, &m.CoverImageURL,
		&m.Status, &m.Rating, &m.TotalViews, &m.CreatedAt, &m.UpdatedAt,
	)

	return m, dberr.Wrap(err, "get_manga")
}

func (repository *PostgresRepository) CreateManga(context context.Context, m *Manga) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		schema.CoreManga.Table, schema.CoreManga.ID, schema.CoreManga.Title, schema.CoreManga.Slug,
		schema.CoreManga.Description, schema.CoreManga.CoverImageURL, schema.CoreManga.Status,
		schema.CoreManga.CreatedAt, schema.CoreManga.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		m.ID, m.Title, m.Slug, m.Description, m.CoverImageURL, m.Status,
	).Scan(&m.CreatedAt, &m.UpdatedAt)

	if dberr.IsUniqueViolation(err, "uq_manga_slug") {
		return apperr.Conflict("A series with this title already exists")
	}
	return dberr.Wrap(err, "create_manga")
}

func (repository *PostgresRepository) UpdateManga(context context.Context, m *Manga) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreManga.Table, schema.CoreManga.Title, schema.CoreManga.Description,
		schema.CoreManga.CoverImageURL, schema.CoreManga.Status, schema.CoreManga.UpdatedAt,
		schema.CoreManga.ID, schema.CoreManga.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		m.ID, m.Title, m.Description, m.CoverImageURL, m.Status,
	).Scan(&m.UpdatedAt)
	return dberr.Wrap(err, "update_manga")
}

func (repository *PostgresRepository) DeleteManga(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreManga.Table, schema.CoreManga.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_manga")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListChapters(context context.Context, mangaID string) ([]*Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		strings.Join(schema.CoreChapter.Columns(), ", "), schema.CoreChapter.Table,
		schema.CoreChapter.MangaID, schema.CoreChapter.ChapterNumber,
	)

	rows, err := repository.db.Query(context, query, mangaID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		c := &Chapter{}
		if err := rows.Scan(&c.ID, &c.MangaID, &c.ChapterNumber, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_chapter")
		}
		chapters = append(chapters, c)
	}

	return chapters, nil
}

func (repository *PostgresRepository) CreateChapter(context context.Context, c *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.CoreChapter.Table, schema.CoreChapter.ID, schema.CoreChapter.MangaID,
		schema.CoreChapter.ChapterNumber, schema.CoreChapter.Title,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		c.ID, c.MangaID, c.ChapterNumber, c.Title,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if dberr.IsUniqueViolation(err, "uq_chapter_number") {
		return apperr.Conflict("This chapter number already exists for the series")
	}
	return dberr.Wrap(err, "create_chapter")
}

func (repository *PostgresRepository) DeleteChapter(context context.Context, mangaID, chapterID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreChapter.Table, schema.CoreChapter.ID, schema.CoreChapter.MangaID,
	)

	cmd, err := repository.db.Exec(context, query, chapterID, mangaID)
	if err != nil {
		return dberr.Wrap(err, "delete_chapter")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
