package dto

type FcmTokenRequest struct {
	Token string `json:"token" validate:"required,max=512"`
}

type NotificationRequest struct {
	Title string            `json:"title" validate:"required,max=200"`
	Body  string            `json:"body" validate:"required,max=1000"`
	Data  map[string]string `json:"data"`
}
