package schema

// UserPreferencesTable represents the 'users.forumpreference' table
type UserPreferencesTable struct {
	Table        string
	UserID       string
	Theme        string
	PostsPerPage string
	ShowAnimated string
	ShowGifs     string
	HideNSFW     string
	Language     string
	UpdatedAt    string
}

// UserPreferences is the schema definition for users.forumpreference
var UserPreferences = UserPreferencesTable{
	Table:        "users.forumpreference",
	UserID:       "userid",
	Theme:        "theme",
	PostsPerPage: "postsperpage",
	ShowAnimated: "showanimated",
	ShowGifs:     "showgifs",
	HideNSFW:     "hidensfw",
	Language:     "language",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t UserPreferencesTable) Columns() []string {
	return []string{t.UserID, t.Theme, t.PostsPerPage, t.ShowAnimated, t.ShowGifs, t.HideNSFW, t.Language, t.UpdatedAt}
}
