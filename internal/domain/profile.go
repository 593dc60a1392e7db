package domain

// Profile is a graph identity resolved from a handle.
type Profile struct {
	ID        string `json:"id"`
	Handle    string `json:"handle"`
	Name      string `json:"name,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
}
