// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table     string
	ID        string
	Email     string
	Password  string
	Name      string
	Tagline   string
	Image     string
	CreatedAt string
	UpdatedAt string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table:     "users",
	ID:        "id",
	Email:     "email",
	Password:  "passwordhash",
	Name:      "name",
	Tagline:   "tagline",
	Image:     "image",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t UsersTable) Columns() []string {
	return []string{t.ID, t.Email, t.Password, t.Name, t.Tagline, t.Image, t.CreatedAt, t.UpdatedAt}
}
