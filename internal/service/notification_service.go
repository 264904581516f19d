package service

import (
	"fmt"

	"github.com/voin/voin-backend/internal/domain"
)

// Publisher delivers a notification to a member's live connections
type Publisher interface {
	SendToMember(memberID string, n *domain.Notification)
}

// NotificationService 실시간 알림 발송. 실패해도 호출한 작업에는 영향이 없다.
type NotificationService interface {
	NotifyFriendRequest(receiverID, requesterNickname string)
	NotifyFriendAccepted(requesterID, accepterNickname string)
	NotifyCardReceived(targetID, senderNickname string)
}

type notificationService struct {
	publisher Publisher
}

// NewNotificationService creates a new NotificationService. publisher may be nil.
func NewNotificationService(publisher Publisher) NotificationService {
	return &notificationService{publisher: publisher}
}

func (s *notificationService) send(memberID string, t domain.NotificationType, message string) {
	if s.publisher == nil || memberID == "" {
		return
	}
	s.publisher.SendToMember(memberID, domain.NewNotification(t, message))
}

func (s *notificationService) NotifyFriendRequest(receiverID, requesterNickname string) {
	s.send(receiverID, domain.NotificationFriendRequest, fmt.Sprintf("%s님이 친구 요청을 보냈습니다.", requesterNickname))
}

func (s *notificationService) NotifyFriendAccepted(requesterID, accepterNickname string) {
	s.send(requesterID, domain.NotificationFriendAccepted, fmt.Sprintf("%s님이 친구 요청을 수락했습니다.", accepterNickname))
}

func (s *notificationService) NotifyCardReceived(targetID, senderNickname string) {
	s.send(targetID, domain.NotificationCardReceived, fmt.Sprintf("%s님이 장점 카드를 보냈습니다.", senderNickname))
}
