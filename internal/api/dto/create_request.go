package dto

// CreateRequest is the JSON body of a notification admission request.
type CreateRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Type    string `json:"type" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// CreateResponse is returned once a notification has been accepted.
type CreateResponse struct {
	Message        string `json:"message"`
	NotificationID string `json:"notificationId"`
}
