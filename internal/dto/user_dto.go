package dto

type UpdateProfileRequest struct {
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// UserSettings mirrors the client's settings page verbatim; the backend
// stores it as one JSON document and never inspects individual fields.
type UserSettings struct {
	Notifications struct {
		ResponseEmail bool `json:"response_email"`
		ProductNews   bool `json:"product_news"`
	} `json:"notifications"`
	Display struct {
		Layout string `json:"layout,omitempty"`
		Dark   bool   `json:"dark,omitempty"`
	} `json:"display"`
	Language string `json:"language,omitempty"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

type UploadResponse struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}
