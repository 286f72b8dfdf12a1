package platform

// User is an immutable profile snapshot from the search response.
type User struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	DisplayName       string   `json:"displayName"`
	HasVerifiedBadge  bool     `json:"hasVerifiedBadge"`
	PreviousUsernames []string `json:"previousUsernames"`
}

// Headshot is one resolved avatar thumbnail.
type Headshot struct {
	TargetID int64  `json:"targetId"`
	State    string `json:"state"`
	ImageURL string `json:"imageUrl"`
}

// HeadshotStateCompleted marks a thumbnail that finished rendering;
// only these carry a usable image URL.
const HeadshotStateCompleted = "Completed"

// searchResponse is the envelope of the user-search endpoint.
type searchResponse struct {
	Data []User `json:"data"`
}

// thumbnailResponse is the envelope of the avatar-headshot endpoint.
type thumbnailResponse struct {
	Data []Headshot `json:"data"`
}
