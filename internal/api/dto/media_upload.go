package dto

type MediaUploadDTO struct {
	ObjectName string `json:"object_name"`
	PublicURL  string `json:"public_url"`
}
