package request_models

type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=2"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=10"`
}

type NewsletterRequest struct {
	Email string `json:"email" binding:"required,email"`
}
