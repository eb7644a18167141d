package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table         string
	ID            string
	MangaID       string
	ChapterNumber string
	Title         string
	CreatedAt     string
	UpdatedAt     string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:         "core.chapter",
	ID:            "id",
	MangaID:       "mangaid",
	ChapterNumber: "chapternumber",
	Title:         "title",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CoreChapterTable) Columns() []string {
	return []string{t.ID, t.MangaID, t.ChapterNumber, t.Title, t.CreatedAt, t.UpdatedAt}
}
