package manga

import "time"

// Manga represents a catalogued series.
type Manga struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   *string   `json:"description"`
	CoverImageURL *string   `json:"cover_image_url"`
	Status        string    `json:"status"` // 'ongoing', 'completed', 'hiatus'
	Rating        float64   `json:"rating"`
	TotalViews    int64     `json:"total_views"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Chapter represents a single released chapter of a series.
type Chapter struct {
	ID            string    `json:"id"`
	MangaID       string    `json:"manga_id"`
	ChapterNumber float64   `json:"chapter_number"`
	Title         *string   `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated catalogue search.
type Filter struct {
	Query  string // ILIKE search against title
	Status string // optional status filter
}

// Valid publication statuses.
var Statuses = []string{"ongoing", "completed", "hiatus"}

// Global field names for validation
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldCoverImageURL = "cover_image_url"
	FieldStatus        = "status"
	FieldChapterNumber = "chapter_number"
)
