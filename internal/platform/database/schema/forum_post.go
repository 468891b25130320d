package schema

// ForumPostTable represents the 'forum.post' table
type ForumPostTable struct {
	Table         string
	ID            string
	AuthorID      string
	Title         string
	Slug          string
	Description   string
	CoverURL      string
	Tags          string
	DownloadLinks string
	IsAnimated    string
	ViewCount     string
	RatingCount   string
	RatingSum     string
	CommentCount  string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// ForumPost is the schema definition for forum.post
var ForumPost = ForumPostTable{
	Table:         "forum.post",
	ID:            "id",
	AuthorID:      "authorid",
	Title:         "title",
	Slug:          "slug",
	Description:   "description",
	CoverURL:      "coverurl",
	Tags:          "tags",
	DownloadLinks: "downloadlinks",
	IsAnimated:    "isanimated",
	ViewCount:     "viewcount",
	RatingCount:   "ratingcount",
	RatingSum:     "ratingsum",
	CommentCount:  "commentcount",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

// Columns returns all standard column names
func (t ForumPostTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.Title, t.Slug, t.Description, t.CoverURL, t.Tags,
		t.DownloadLinks, t.IsAnimated, t.ViewCount, t.RatingCount, t.RatingSum,
		t.CommentCount, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
