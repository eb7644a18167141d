package manga

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kaminari/internal/platform/apperr"
	"github.com/taibuivan/kaminari/internal/platform/dberr"
)

type fakeRepo struct {
	series   map[string]*Manga
	chapters map[string][]*Chapter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		series:   map[string]*Manga{},
		chapters: map[string][]*Chapter{},
	}
}

func (r *fakeRepo) ListManga(_ context.Context, f Filter, limit, offset int) ([]*Manga, int, error) {
	var out []*Manga
	for _, m := range r.series {
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		out = append(out, m)
	}
	return out, len(out), nil
}

func (r *fakeRepo) GetManga(_ context.Context, id string) (*Manga, error) {
	m, ok := r.series[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return m, nil
}

func (r *fakeRepo) GetMangaBySlug(_ context.Context, slug string) (*Manga, error) {
	for _, m := range r.series {
		if m.Slug == slug {
			return m, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepo) CreateManga(_ context.Context, m *Manga) error {
	for _, existing := range r.series {
		if existing.Slug == m.Slug {
			return apperr.Conflict("A series with this title already exists")
		}
	}
	r.series[m.ID] = m
	return nil
}

func (r *fakeRepo) UpdateManga(_ context.Context, m *Manga) error {
	if _, ok := r.series[m.ID]; !ok {
		return dberr.ErrNotFound
	}
	r.series[m.ID] = m
	return nil
}

func (r *fakeRepo) DeleteManga(_ context.Context, id string) error {
	if _, ok := r.series[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.series, id)
	return nil
}

func (r *fakeRepo) ListChapters(_ context.Context, mangaID string) ([]*Chapter, error) {
	return r.chapters[mangaID], nil
}

func (r *fakeRepo) CreateChapter(_ context.Context, c *Chapter) error {
	for _, existing := range r.chapters[c.MangaID] {
		if existing.ChapterNumber == c.ChapterNumber {
			return apperr.Conflict("This chapter number already exists for the series")
		}
	}
	r.chapters[c.MangaID] = append(r.chapters[c.MangaID], c)
	return nil
}

func (r *fakeRepo) DeleteChapter(_ context.Context, mangaID, chapterID string) error {
	for i, c := range r.chapters[mangaID] {
		if c.ID == chapterID {
			r.chapters[mangaID] = append(r.chapters[mangaID][:i], r.chapters[mangaID][i+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

func TestCreateManga(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id, slug and default status", func(t *testing.T) {
		service, _ := newTestService()

		m := &Manga{Title: "Lightning Degree"}
		require.NoError(t, service.CreateManga(ctx, m))

		assert.NotEmpty(t, m.ID)
		assert.Equal(t, "lightning-degree", m.Slug)
		assert.Equal(t, "ongoing", m.Status)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		service, repo := newTestService()

		err := service.CreateManga(ctx, &Manga{})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		assert.Empty(t, repo.series)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		service, _ := newTestService()

		err := service.CreateManga(ctx, &Manga{Title: "Solo Max", Status: "cancelled"})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate title conflicts on slug", func(t *testing.T) {
		service, _ := newTestService()

		require.NoError(t, service.CreateManga(ctx, &Manga{Title: "Lightning Degree"}))
		err := service.CreateManga(ctx, &Manga{Title: "Lightning Degree"})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

func TestGetManga(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	m := &Manga{Title: "Omniscient Reader"}
	require.NoError(t, service.CreateManga(ctx, m))

	t.Run("by id", func(t *testing.T) {
		found, err := service.GetManga(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, m.ID, found.ID)
	})

	t.Run("by slug", func(t *testing.T) {
		found, err := service.GetManga(ctx, "omniscient-reader")
		require.NoError(t, err)
		assert.Equal(t, m.ID, found.ID)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := service.GetManga(ctx, "no-such-series")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestChapters(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	m := &Manga{Title: "Tower of God"}
	require.NoError(t, service.CreateManga(ctx, m))

	t.Run("create assigns ids and links the series", func(t *testing.T) {
		chapter := &Chapter{ChapterNumber: 1}
		require.NoError(t, service.CreateChapter(ctx, m.ID, chapter))

		assert.NotEmpty(t, chapter.ID)
		assert.Equal(t, m.ID, chapter.MangaID)
	})

	t.Run("rejects non-positive chapter numbers", func(t *testing.T) {
		err := service.CreateChapter(ctx, m.ID, &Chapter{ChapterNumber: 0})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate number conflicts", func(t *testing.T) {
		err := service.CreateChapter(ctx, m.ID, &Chapter{ChapterNumber: 1})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("unknown series is a 404, not an empty list", func(t *testing.T) {
		_, err := service.ListChapters(ctx, "missing-series")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("list resolves by slug", func(t *testing.T) {
		chapters, err := service.ListChapters(ctx, "tower-of-god")
		require.NoError(t, err)
		require.Len(t, chapters, 1)
		assert.Equal(t, float64(1), chapters[0].ChapterNumber)
	})
}
