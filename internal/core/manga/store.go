package manga

import "context"

type Repository interface {
	ListManga(context context.Context, f Filter, limit, offset int) ([]*Manga, int, error)
	GetManga(context context.Context, id string) (*Manga, error)
	GetMangaBySlug(context context.Context, slug string) (*Manga, error)
	CreateManga(context context.Context, m *Manga) error
	UpdateManga(context context.Context, m *Manga) error
	DeleteManga(context context.Context, id string) error

	ListChapters(context context.Context, mangaID string) ([]*Chapter, error)
	CreateChapter(context context.Context, c *Chapter) error
	DeleteChapter(context context.Context, mangaID, chapterID string) error
}
