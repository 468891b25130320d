package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	Password    string
	DisplayName string
	AvatarURL   string
	Bio         string
	Role        string
	Status      string
	IsVerified  string
	PostCount   string
	RatingCount string
	PromotedAt  string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	Password:    "passwordhash",
	DisplayName: "displayname",
	AvatarURL:   "avatarurl",
	Bio:         "bio",
	Role:        "role",
	Status:      "status",
	IsVerified:  "isverified",
	PostCount:   "postcount",
	RatingCount: "ratingcount",
	PromotedAt:  "promotedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password, t.DisplayName, t.AvatarURL,
		t.Bio, t.Role, t.Status, t.IsVerified, t.PostCount, t.RatingCount,
		t.PromotedAt, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
