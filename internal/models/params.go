package models

// NewItem is an item supplied when creating a list.
type NewItem struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Rank        int     `json:"rank"`
}

// CreateListParams describes a list to create.
type CreateListParams struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	OwnerID     string     `json:"user_id"`
	Category    *string    `json:"category,omitempty"`
	Visibility  Visibility `json:"visibility,omitempty"`
	Items       []NewItem  `json:"items"`
}

// ItemPatch inserts an item (empty ID) or updates the matching one.
type ItemPatch struct {
	ID          string           `json:"id,omitempty"`
	Title       Optional[string] `json:"title,omitzero"`
	Description Optional[string] `json:"description,omitzero"`
	Rank        Optional[int]    `json:"rank,omitzero"`
}

// ListPatch is a field level update of a list. Untouched fields are left alone.
type ListPatch struct {
	Title       Optional[string]     `json:"title,omitzero"`
	Description Optional[string]     `json:"description,omitzero"`
	Category    Optional[string]     `json:"category,omitzero"`
	Visibility  Optional[Visibility] `json:"visibility,omitzero"`
	Items       []ItemPatch          `json:"items,omitempty"`
}

// ProfilePatch is a field level update of a profile.
type ProfilePatch struct {
	Username  Optional[string] `json:"username,omitzero"`
	AvatarURL Optional[string] `json:"avatar_url,omitzero"`
}
