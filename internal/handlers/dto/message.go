package dto

type MessageCreateRequest struct {
	Content     string  `json:"content" binding:"required"`
	Attachments []int64 `json:"attachments"`
}

type MessageEditRequest struct {
	Content string `json:"content" binding:"required"`
}
