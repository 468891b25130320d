package schema

// ForumRatingTable represents the 'forum.rating' table
type ForumRatingTable struct {
	Table     string
	PostID    string
	UserID    string
	Stars     string
	CreatedAt string
	UpdatedAt string
}

// ForumRating is the schema definition for forum.rating
var ForumRating = ForumRatingTable{
	Table:     "forum.rating",
	PostID:    "postid",
	UserID:    "userid",
	Stars:     "stars",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t ForumRatingTable) Columns() []string {
	return []string{t.PostID, t.UserID, t.Stars, t.CreatedAt, t.UpdatedAt}
}
