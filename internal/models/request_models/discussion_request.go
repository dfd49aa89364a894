package request_models

type CreateDiscussionRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required,max=10000"`
}

type CreateReplyRequest struct {
	Content string `json:"content" binding:"required,max=10000"`
}
