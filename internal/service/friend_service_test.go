package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
)

type FriendServiceSuite struct {
	suite.Suite
	env       *testEnv
	publisher *recordingPublisher
	svc       FriendService
}

func (s *FriendServiceSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.publisher = &recordingPublisher{}
	s.svc = NewFriendService(s.env.friends, s.env.members, s.env.cards, s.env.catalog, NewNotificationService(s.publisher))

	s.env.addMember(s.T(), "alice", "앨리스", "ALICE001")
	s.env.addMember(s.T(), "bob", "밥", "BOB00002")
	s.env.addMember(s.T(), "carol", "캐롤", "CAROL003")
}

func TestFriendServiceSuite(t *testing.T) {
	suite.Run(t, new(FriendServiceSuite))
}

func (s *FriendServiceSuite) TestRequestAndAccept() {
	req, err := s.svc.Request("alice", "BOB00002")
	s.Require().NoError(err)
	s.Equal(domain.FriendStatusPending, req.Status)
	s.Equal("bob", req.Member.ID)

	received, err := s.svc.ListReceived("bob")
	s.Require().NoError(err)
	s.Require().Len(received, 1)
	s.Equal("alice", received[0].Member.ID)

	sent, err := s.svc.ListSent("alice")
	s.Require().NoError(err)
	s.Len(sent, 1)

	accepted, err := s.svc.Accept("bob", req.ID)
	s.Require().NoError(err)
	s.Equal(domain.FriendStatusAccepted, accepted.Status)
	s.NotNil(accepted.AcceptedAt)
	s.Equal("alice", accepted.Member.ID)

	for _, id := range []string{"alice", "bob"} {
		friends, err := s.svc.ListFriends(id)
		s.Require().NoError(err)
		s.Len(friends, 1)
	}

	sentNotes := s.publisher.all()
	s.Require().Len(sentNotes, 2)
	s.Equal("bob", sentNotes[0].memberID)
	s.Equal(domain.NotificationFriendRequest, sentNotes[0].n.Type)
	s.Equal("앨리스님이 친구 요청을 보냈습니다.", sentNotes[0].n.Message)
	s.Equal("alice", sentNotes[1].memberID)
	s.Equal(domain.NotificationFriendAccepted, sentNotes[1].n.Type)
	s.Equal("밥님이 친구 요청을 수락했습니다.", sentNotes[1].n.Message)
}

func (s *FriendServiceSuite) TestRequestErrors() {
	_, err := s.svc.Request("alice", "NOPE0000")
	s.ErrorIs(err, common.ErrFriendCodeNotFound)

	_, err = s.svc.Request("alice", "ALICE001")
	s.ErrorIs(err, common.ErrSelfRequest)

	_, err = s.svc.Request("alice", "BOB00002")
	s.Require().NoError(err)
	_, err = s.svc.Request("alice", "BOB00002")
	s.ErrorIs(err, common.ErrDuplicatePending)

	s.env.makeFriends(s.T(), "alice", "carol")
	_, err = s.svc.Request("carol", "ALICE001")
	s.ErrorIs(err, common.ErrAlreadyFriends)
}

func (s *FriendServiceSuite) TestAcceptGuards() {
	req, err := s.svc.Request("alice", "BOB00002")
	s.Require().NoError(err)

	_, err = s.svc.Accept("alice", req.ID)
	s.ErrorIs(err, common.ErrFriendForbidden)

	_, err = s.svc.Accept("bob", 9999)
	s.ErrorIs(err, common.ErrFriendRequestNotFound)

	_, err = s.svc.Accept("bob", req.ID)
	s.Require().NoError(err)

	_, err = s.svc.Accept("bob", req.ID)
	s.ErrorIs(err, common.ErrAlreadyProcessed)
	s.ErrorIs(s.svc.Reject("bob", req.ID), common.ErrAlreadyProcessed)
}

func (s *FriendServiceSuite) TestAcceptClearsReverseRequest() {
	forward, err := s.svc.Request("alice", "BOB00002")
	s.Require().NoError(err)
	_, err = s.svc.Request("bob", "ALICE001")
	s.Require().NoError(err)

	_, err = s.svc.Accept("bob", forward.ID)
	s.Require().NoError(err)

	pending, err := s.svc.ListReceived("alice")
	s.Require().NoError(err)
	s.Empty(pending)

	friends, err := s.svc.ListFriends("alice")
	s.Require().NoError(err)
	s.Len(friends, 1)
}

func (s *FriendServiceSuite) TestRejectDeletesRequest() {
	req, err := s.svc.Request("alice", "BOB00002")
	s.Require().NoError(err)

	s.ErrorIs(s.svc.Reject("carol", req.ID), common.ErrFriendForbidden)
	s.Require().NoError(s.svc.Reject("bob", req.ID))

	_, err = s.env.friends.FindByID(req.ID)
	s.Error(err)

	// 거절 후 다시 요청할 수 있다
	_, err = s.svc.Request("alice", "BOB00002")
	s.NoError(err)
}

func (s *FriendServiceSuite) TestRemove() {
	s.env.makeFriends(s.T(), "alice", "bob")

	s.ErrorIs(s.svc.Remove("alice", "carol"), common.ErrFriendNotFound)
	s.Require().NoError(s.svc.Remove("bob", "alice"))

	friends, err := s.svc.ListFriends("alice")
	s.Require().NoError(err)
	s.Empty(friends)
}

func (s *FriendServiceSuite) TestFeed() {
	s.env.makeFriends(s.T(), "alice", "bob")
	coinID, keywordIDs := s.env.selection(s.T(), "관리와 성장", "끈기")
	cards := NewCardService(s.env.cards, s.env.stories, s.env.friends, s.env.members, s.env.catalog,
		NewCardSearchService(nil, s.env.cards, s.env.members, s.env.catalog), NewNotificationService(nil))

	bobStory := s.env.addDiary(s.T(), "bob", "밥의 일기")
	carolStory := s.env.addDiary(s.T(), "carol", "캐롤의 일기")
	public := true
	_, err := cards.Create(s.T().Context(), "bob", &domain.CreateCardRequest{StoryID: bobStory.ID, CoinID: coinID, KeywordIDs: keywordIDs, IsPublic: &public})
	s.Require().NoError(err)
	_, err = cards.Create(s.T().Context(), "bob", &domain.CreateCardRequest{StoryID: bobStory.ID, CoinID: coinID, KeywordIDs: keywordIDs})
	s.Require().NoError(err)
	_, err = cards.Create(s.T().Context(), "carol", &domain.CreateCardRequest{StoryID: carolStory.ID, CoinID: coinID, KeywordIDs: keywordIDs, IsPublic: &public})
	s.Require().NoError(err)

	feed, err := s.svc.Feed("alice")
	s.Require().NoError(err)
	s.Require().Len(feed, 1)
	s.Equal("bob", feed[0].Owner.ID)

	empty, err := s.svc.Feed("carol")
	s.Require().NoError(err)
	s.Empty(empty)
}

func TestNotificationService_NilPublisher(t *testing.T) {
	svc := NewNotificationService(nil)
	assert.NotPanics(t, func() {
		svc.NotifyFriendRequest("m1", "보인")
		svc.NotifyFriendAccepted("m1", "보인")
		svc.NotifyCardReceived("m1", "보인")
	})
}

func TestNotificationService_SkipsEmptyRecipient(t *testing.T) {
	publisher := &recordingPublisher{}
	NewNotificationService(publisher).NotifyCardReceived("", "보인")
	require.Empty(t, publisher.all())
}

func (s *FriendServiceSuite) newCardService() CardService {
	return NewCardService(s.env.cards, s.env.stories, s.env.friends, s.env.members, s.env.catalog,
		NewCardSearchService(nil, s.env.cards, s.env.members, s.env.catalog), NewNotificationService(nil))
}

func (s *FriendServiceSuite) mintPublic(cards CardService, ownerID string, n int) {
	coinID, keywordIDs := s.env.selection(s.T(), "관리와 성장", "끈기")
	story := s.env.addDiary(s.T(), ownerID, ownerID+"의 일기")
	public := true
	for i := 0; i < n; i++ {
		_, err := cards.Create(s.T().Context(), ownerID, &domain.CreateCardRequest{StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs, IsPublic: &public})
		s.Require().NoError(err)
	}
}

func (s *FriendServiceSuite) TestFeedSymmetry() {
	cards := s.newCardService()
	s.mintPublic(cards, "alice", 1)
	s.mintPublic(cards, "bob", 1)

	req, err := s.svc.Request("alice", "BOB00002")
	s.Require().NoError(err)

	for _, id := range []string{"alice", "bob"} {
		feed, err := s.svc.Feed(id)
		s.Require().NoError(err)
		s.Empty(feed, "pending request must not expose cards to %s", id)
	}

	_, err = s.svc.Accept("bob", req.ID)
	s.Require().NoError(err)

	aliceFeed, err := s.svc.Feed("alice")
	s.Require().NoError(err)
	s.Require().Len(aliceFeed, 1)
	s.Equal("bob", aliceFeed[0].Owner.ID)

	bobFeed, err := s.svc.Feed("bob")
	s.Require().NoError(err)
	s.Require().Len(bobFeed, 1)
	s.Equal("alice", bobFeed[0].Owner.ID)
}

func (s *FriendServiceSuite) TestFeedReturnsEveryPublicCard() {
	s.env.makeFriends(s.T(), "alice", "bob")
	s.mintPublic(s.newCardService(), "alice", 61)

	feed, err := s.svc.Feed("bob")
	s.Require().NoError(err)
	s.Len(feed, 61)
	for i := 1; i < len(feed); i++ {
		s.False(feed[i].CreatedAt.After(feed[i-1].CreatedAt))
	}
}
