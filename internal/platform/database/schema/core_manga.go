package schema

// CoreMangaTable represents the 'core.manga' table
type CoreMangaTable struct {
	Table         string
	ID            string
	Title         string
	Slug          string
	Description   string
	CoverImageURL string
	Status        string
	Rating        string
	TotalViews    string
	CreatedAt     string
	UpdatedAt     string
}

// CoreManga is the schema definition for core.manga
var CoreManga = CoreMangaTable{
	Table:         "core.manga",
	ID:            "id",
	Title:         "title",
	Slug:          "slug",
	Description:   "description",
	CoverImageURL: "coverimageurl",
	Status:        "status",
	Rating:        "rating",
	TotalViews:    "totalviews",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CoreMangaTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Description, t.CoverImageURL,
		t.Status, t.Rating, t.TotalViews, t.CreatedAt, t.UpdatedAt,
	}
}
