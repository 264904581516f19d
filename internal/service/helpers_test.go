package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/voin/voin-backend/internal/catalog"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/migration"
	"github.com/voin/voin-backend/internal/repository"
	"github.com/voin/voin-backend/pkg/jwt"
	"github.com/voin/voin-backend/pkg/kakao"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv 시드된 in-memory DB 와 저장소 묶음
type testEnv struct {
	db          *gorm.DB
	catalog     *catalog.Catalog
	members     repository.MemberRepository
	stories     repository.StoryRepository
	cards       repository.CardRepository
	friends     repository.FriendRepository
	memberCoins repository.MemberCoinRepository
	jwt         *jwt.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migration.Run(db))

	cat, err := catalog.Load(db)
	require.NoError(t, err)

	return &testEnv{
		db:          db,
		catalog:     cat,
		members:     repository.NewMemberRepository(db),
		stories:     repository.NewStoryRepository(db),
		cards:       repository.NewCardRepository(db),
		friends:     repository.NewFriendRepository(db),
		memberCoins: repository.NewMemberCoinRepository(db),
		jwt:         jwt.NewManager("test-secret", 60, 1440),
	}
}

// addMember 활성 회원을 직접 저장
func (e *testEnv) addMember(t *testing.T, id, nickname, friendCode string) *domain.Member {
	t.Helper()
	m := &domain.Member{
		ID:         id,
		KakaoID:    "kakao-" + id,
		Nickname:   nickname,
		FriendCode: friendCode,
		IsActive:   true,
	}
	require.NoError(t, e.members.Create(m))
	return m
}

// makeFriends 수락된 친구 관계를 만든다
func (e *testEnv) makeFriends(t *testing.T, requesterID, receiverID string) *domain.Friend {
	t.Helper()
	edge := &domain.Friend{RequesterID: requesterID, ReceiverID: receiverID, Status: domain.FriendStatusPending}
	require.NoError(t, e.friends.Create(edge))
	require.NoError(t, e.friends.Accept(edge.ID))
	return edge
}

func (e *testEnv) addDiary(t *testing.T, memberID, content string) *domain.Story {
	t.Helper()
	s := &domain.Story{
		MemberID:  memberID,
		Title:     domain.StoryTypeDailyDiary.StoryTitle(),
		Content:   content,
		StoryType: domain.StoryTypeDailyDiary,
	}
	require.NoError(t, e.stories.Create(s))
	return s
}

// selection 코인 이름과 키워드 이름으로 id 를 찾는다
func (e *testEnv) selection(t *testing.T, coinName string, keywordNames ...string) (uint, []uint) {
	t.Helper()
	coin, err := e.catalog.CoinByName(coinName)
	require.NoError(t, err)
	ids := make([]uint, 0, len(keywordNames))
	for _, name := range keywordNames {
		k, err := e.catalog.KeywordByName(name)
		require.NoError(t, err)
		ids = append(ids, k.ID)
	}
	return coin.ID, ids
}

// --- mocks ---

type mockProfileFetcher struct {
	mock.Mock
}

func (m *mockProfileFetcher) GetProfile(ctx context.Context, accessToken string) (*kakao.Profile, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kakao.Profile), args.Error(1)
}

type mockKakaoOAuth struct {
	mock.Mock
}

func (m *mockKakaoOAuth) AuthURL(state string, forceConsent bool) string {
	return m.Called(state, forceConsent).String(0)
}

func (m *mockKakaoOAuth) ExchangeCode(ctx context.Context, code string) (*kakao.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kakao.Token), args.Error(1)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Save(ctx context.Context, data []byte, ext string) (string, error) {
	args := m.Called(ctx, data, ext)
	return args.String(0), args.Error(1)
}

type mockCardIndex struct {
	mock.Mock
}

func (m *mockCardIndex) Put(ctx context.Context, cardID uint, doc interface{}) error {
	return m.Called(ctx, cardID, doc).Error(0)
}

func (m *mockCardIndex) Remove(ctx context.Context, cardID uint) error {
	return m.Called(ctx, cardID).Error(0)
}

func (m *mockCardIndex) PutAll(ctx context.Context, docs map[uint]interface{}) error {
	return m.Called(ctx, docs).Error(0)
}

func (m *mockCardIndex) Search(ctx context.Context, keyword string, page, size int) ([]uint, int64, error) {
	args := m.Called(ctx, keyword, page, size)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Get(1).(int64), args.Error(2)
}

// sentNotification 기록된 알림
type sentNotification struct {
	memberID string
	n        *domain.Notification
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (p *recordingPublisher) SendToMember(memberID string, n *domain.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, sentNotification{memberID: memberID, n: n})
}

func (p *recordingPublisher) all() []sentNotification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]sentNotification(nil), p.sent...)
}

// fixedCodes 정해진 순서로 친구 코드를 돌려준다
type fixedCodes struct {
	codes []string
	i     int
}

func (f *fixedCodes) Generate() (string, error) {
	code := f.codes[f.i%len(f.codes)]
	f.i++
	return code, nil
}
