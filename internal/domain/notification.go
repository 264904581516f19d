package domain

import "time"

// NotificationType 실시간 알림 유형
type NotificationType string

const (
	NotificationFriendRequest  NotificationType = "FRIEND_REQUEST"
	NotificationFriendAccepted NotificationType = "FRIEND_ACCEPTED"
	NotificationCardReceived   NotificationType = "CARD_RECEIVED"
	NotificationEcho           NotificationType = "ECHO"
)

// Notification WebSocket 으로 전달되는 메시지
type Notification struct {
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Timestamp int64            `json:"timestamp"` // unix millis
}

// NewNotification stamps a notification with the current time
func NewNotification(t NotificationType, message string) *Notification {
	return &Notification{
		Type:      t,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}
