package manga

import (
	"context"
	"log/slog"

	"github.com/taibuivan/kaminari/internal/platform/validate"
	"github.com/taibuivan/kaminari/pkg/slug"
	"github.com/taibuivan/kaminari/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListManga(context context.Context, filter Filter, limit, offset int) ([]*Manga, int, error) {
	return service.repo.ListManga(context, filter, limit, offset)
}

func (service *Service) GetManga(context context.Context, id string) (*Manga, error) {
	if uuid.IsValid(id) {
		return service.repo.GetManga(context, id)
	}
	// Pretty URLs resolve by slug.
	return service.repo.GetMangaBySlug(context, id)
}

func (service *Service) CreateManga(context context.Context, m *Manga) error {
	if err := service.validateManga(m); err != nil {
		return err
	}

	m.ID = uuid.New()
	m.Slug = slug.From(m.Title)
	if m.Status == "" {
		m.Status = "ongoing"
	}

	if err := service.repo.CreateManga(context, m); err != nil {
		return err
	}

	service.logger.Info("manga_created", slog.String("manga_id", m.ID), slog.String("slug", m.Slug))
	return nil
}

func (service *Service) UpdateManga(context context.Context, id string, m *Manga) error {
	m.ID = id
	if err := service.validateManga(m); err != nil {
		return err
	}

	if err := service.repo.UpdateManga(context, m); err != nil {
		return err
	}

	service.logger.Info("manga_updated", slog.String("manga_id", m.ID))
	return nil
}

func (service *Service) DeleteManga(context context.Context, id string) error {
	if err := service.repo.DeleteManga(context, id); err != nil {
		return err
	}

	service.logger.Warn("manga_deleted", slog.String("manga_id", id))
	return nil
}

func (service *Service) ListChapters(context context.Context, mangaID string) ([]*Chapter, error) {
	// Resolve the series first so an unknown id reads as 404, not an empty list.
	series, err := service.GetManga(context, mangaID)
	if err != nil {
		return nil, err
	}
	return service.repo.ListChapters(context, series.ID)
}

func (service *Service) CreateChapter(context context.Context, mangaID string, chapter *Chapter) error {
	validator := &validate.Validator{}
	validator.Custom(FieldChapterNumber, chapter.ChapterNumber <= 0, "must be greater than zero")
	if chapter.Title != nil {
		validator.MaxLen(FieldTitle, *chapter.Title, 200)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	series, err := service.repo.GetManga(context, mangaID)
	if err != nil {
		return err
	}

	chapter.ID = uuid.New()
	chapter.MangaID = series.ID

	if err := service.repo.CreateChapter(context, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.String("manga_id", chapter.MangaID),
		slog.Float64("chapter_number", chapter.ChapterNumber),
	)
	return nil
}

func (service *Service) DeleteChapter(context context.Context, mangaID, chapterID string) error {
	if err := service.repo.DeleteChapter(context, mangaID, chapterID); err != nil {
		return err
	}

	service.logger.Warn("chapter_deleted", slog.String("chapter_id", chapterID))
	return nil
}

func (service *Service) validateManga(m *Manga) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, m.Title).MaxLen(FieldTitle, m.Title, 255)
	if m.Status != "" {
		validator.OneOf(FieldStatus, m.Status, Statuses...)
	}
	if m.CoverImageURL != nil {
		validator.MaxLen(FieldCoverImageURL, *m.CoverImageURL, 500)
	}

	return validator.Err()
}
