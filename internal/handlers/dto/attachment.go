package dto

type AttachmentUploadRequest struct {
	Files []AttachmentFile `json:"files" binding:"required,min=1,dive"`
}

type AttachmentFile struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type AttachmentConfirmRequest struct {
	Attachments []int64 `json:"attachments" binding:"required,min=1"`
}

type UploadSlotResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}
