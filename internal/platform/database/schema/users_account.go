package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table               string
	ID                  string
	Username            string
	Email               string
	PasswordHash        string
	Role                string
	Credits             string
	IsVerified          string
	VerificationToken   string
	VerificationExpires string
	ResetToken          string
	ResetExpires        string
	TwoFactorSecret     string
	TwoFactorEnabled    string
	GoogleID            string
	FacebookID          string
	LastLoginAt         string
	CreatedAt           string
	UpdatedAt           string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:               "users.account",
	ID:                  "id",
	Username:            "username",
	Email:               "email",
	PasswordHash:        "passwordhash",
	Role:                "role",
	Credits:             "credits",
	IsVerified:          "isverified",
	VerificationToken:   "verificationtoken",
	VerificationExpires: "verificationexpires",
	ResetToken:          "resettoken",
	ResetExpires:        "resetexpires",
	TwoFactorSecret:     "twofactorsecret",
	TwoFactorEnabled:    "twofactorenabled",
	GoogleID:            "googleid",
	FacebookID:          "facebookid",
	LastLoginAt:         "lastloginat",
	CreatedAt:           "createdat",
	UpdatedAt:           "updatedat",
}

func (t UsersAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.PasswordHash, t.Role, t.Credits, t.IsVerified,
		t.VerificationToken, t.VerificationExpires, t.ResetToken, t.ResetExpires,
		t.TwoFactorSecret, t.TwoFactorEnabled, t.GoogleID, t.FacebookID,
		t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
