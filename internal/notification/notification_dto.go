package notification

type CreateNotificationRequest struct {
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	Title      string `json:"title" binding:"required,max=255"`
	Message    string `json:"message" binding:"required"`
	Type       string `json:"type" binding:"omitempty,oneof=INFO WARNING ANNOUNCEMENT"`
}

type NotificationListQuery struct {
	Since string `form:"since"`
}

type NotificationResponse struct {
	ID         string  `json:"id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	Type       string  `json:"type"`
	CreatedAt  string  `json:"created_at"`
}
