package schema

// ForumCommentTable represents the 'forum.comment' table
type ForumCommentTable struct {
	Table     string
	ID        string
	PostID    string
	AuthorID  string
	Body      string
	GifURL    string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// ForumComment is the schema definition for forum.comment
var ForumComment = ForumCommentTable{
	Table:     "forum.comment",
	ID:        "id",
	PostID:    "postid",
	AuthorID:  "authorid",
	Body:      "body",
	GifURL:    "gifurl",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

// Columns returns all standard column names
func (t ForumCommentTable) Columns() []string {
	return []string{t.ID, t.PostID, t.AuthorID, t.Body, t.GifURL, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
