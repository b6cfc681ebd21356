package dto

type ChannelCreateRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=32"`
	DisplayName string `json:"display_name" binding:"required,max=64"`
	Type        string `json:"type" binding:"required,oneof=direct group broadcast"`
	Public      bool   `json:"public"`
}

type ChannelEditRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=32"`
	DisplayName *string `json:"display_name" binding:"omitempty,max=64"`
	Public      *bool   `json:"public"`
}
