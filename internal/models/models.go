// package models defines the data model for the Top 5 lists backend
package models

import (
	"time"

	"golang.org/x/oauth2"
)

// Visibility controls whether a list shows up in discovery.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is public or private.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// User is the identity held by the session store.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email,omitempty"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Session pairs the signed in [User] with the tokens minted at sign-in.
//
// A zero Session (nil User) means nobody is signed in.
type Session struct {
	User  *User         `json:"user"`
	Token *oauth2.Token `json:"session,omitempty"`
}

// SignedIn reports whether s carries a user.
func (s Session) SignedIn() bool {
	return s.User != nil
}

// Profile is the public face of a user, joined onto lists as their author.
type Profile struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	AvatarURL *string    `json:"avatar_url"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// List is a ranked list header. Items and author are joined in [TopFiveList].
type List struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	UserID       string     `json:"user_id"`
	Category     *string    `json:"category"`
	Visibility   Visibility `json:"visibility"`
	VoteCount    int        `json:"vote_count"`
	CommentCount int        `json:"comment_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// ListItem is one ranked entry of a list. Rank is 1-based.
type ListItem struct {
	ID          string    `json:"id"`
	ListID      string    `json:"list_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Rank        int       `json:"rank"`
	CreatedAt   time.Time `json:"created_at"`
}

// TopFiveList is a list hydrated with its rank sorted items and author profile.
type TopFiveList struct {
	List
	Items []ListItem `json:"items"`
	User  *Profile   `json:"user"`
}

// Vote records that a user starred a list. At most one per (list, user).
type Vote struct {
	ID        string    `json:"id"`
	ListID    string    `json:"list_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a message left on a list.
type Comment struct {
	ID        string    `json:"id"`
	ListID    string    `json:"list_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteState is the outcome of toggling a vote.
type VoteState struct {
	ListID    string `json:"list_id"`
	Voted     bool   `json:"voted"`
	VoteCount int    `json:"vote_count"`
}

// Clone returns a copy of p that shares no pointers with it.
func (p Profile) Clone() Profile {
	p.AvatarURL = clonePtr(p.AvatarURL)
	p.UpdatedAt = clonePtr(p.UpdatedAt)
	return p
}

// Clone returns a copy of l that shares no pointers with it.
func (l List) Clone() List {
	l.Description = clonePtr(l.Description)
	l.Category = clonePtr(l.Category)
	l.UpdatedAt = clonePtr(l.UpdatedAt)
	return l
}

// Clone returns a copy of i that shares no pointers with it.
func (i ListItem) Clone() ListItem {
	i.Description = clonePtr(i.Description)
	return i
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
