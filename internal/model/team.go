package model

// Team is a group that owns issues. Key is the short code used in issue
// identifiers (the "ENG" in "ENG-123").
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// User is a tracker account. DisplayName is what the tracker shows in its
// own UI; Name is the full name.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
}
