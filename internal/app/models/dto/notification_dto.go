package dto

import "time"

// NotificationResponse represents a notification delivered to a user
type NotificationResponse struct {
	ID        int64      `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	RefType   string     `json:"refType,omitempty"`
	RefID     int64      `json:"refId,omitempty"`
	IsRead    bool       `json:"isRead"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

// UnreadCountResponse reports how many notifications are unread
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}

// NotificationFilterRequest represents notification list filter parameters
type NotificationFilterRequest struct {
	UnreadOnly bool `form:"unreadOnly,default=false"`
	Page       int  `form:"page,default=1" binding:"min=1"`
	PageSize   int  `form:"pageSize,default=10" binding:"min=1,max=100"`
}
