package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
)

func newCardService(env *testEnv, index CardIndex, publisher Publisher) CardService {
	search := NewCardSearchService(index, env.cards, env.members, env.catalog)
	return NewCardService(env.cards, env.stories, env.friends, env.members, env.catalog, search, NewNotificationService(publisher))
}

func boolPtr(v bool) *bool { return &v }

func TestCardCreate_SelfCard(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	story := env.addDiary(t, "m1", "매일 아침 운동을 했다")
	coinID, keywordIDs := env.selection(t, "관리와 성장", "끈기", "성실함", "끈기")

	resp, err := newCardService(env, nil, nil).Create(t.Context(), "m1", &domain.CreateCardRequest{
		StoryID:    story.ID,
		CoinID:     coinID,
		KeywordIDs: keywordIDs,
	})
	require.NoError(t, err)
	assert.Equal(t, "관리와 성장", resp.Coin.Name)
	assert.Len(t, resp.Keywords, 2)
	assert.Equal(t, "매일 아침 운동을 했다", resp.Content)
	assert.False(t, resp.IsPublic)
	assert.False(t, resp.IsGift)
	assert.Equal(t, "보인", resp.Owner.Nickname)

	tally, err := env.memberCoins.FindTop("m1")
	require.NoError(t, err)
	assert.Equal(t, coinID, tally.CoinID)
	assert.Equal(t, 1, tally.Count)
}

func TestCardCreate_SummaryTruncated(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	story := env.addDiary(t, "m1", "본문")
	coinID, keywordIDs := env.selection(t, "감정과 태도", "열정")

	resp, err := newCardService(env, nil, nil).Create(t.Context(), "m1", &domain.CreateCardRequest{
		StoryID:    story.ID,
		CoinID:     coinID,
		KeywordIDs: keywordIDs,
		Content:    strings.Repeat("가", domain.MaxCardContentLength+20),
		IsPublic:   boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxCardContentLength, len([]rune(resp.Content)))
	assert.True(t, resp.IsPublic)
}

func TestCardCreate_ReflectionContent(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	story := &domain.Story{
		MemberID:           "m1",
		Title:              domain.StoryTypeExperienceReflection.StoryTitle(),
		Content:            "상황",
		StoryType:          domain.StoryTypeExperienceReflection,
		SituationContextID: intPtr(4),
		Answer1:            "상황",
		Answer2:            "생각",
	}
	require.NoError(t, env.stories.Create(story))
	coinID, keywordIDs := env.selection(t, "신념과 실행", "용기")

	resp, err := newCardService(env, nil, nil).Create(t.Context(), "m1", &domain.CreateCardRequest{
		StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs,
	})
	require.NoError(t, err)
	assert.Equal(t, "상황\n생각", resp.Content)
	require.NotNil(t, resp.SituationContext)
	assert.Equal(t, 4, resp.SituationContext.ID)
}

func TestCardCreate_SelectionErrors(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	story := env.addDiary(t, "m1", "본문")
	coinID, _ := env.selection(t, "관리와 성장")
	_, foreign := env.selection(t, "감정과 태도", "열정")
	svc := newCardService(env, nil, nil)

	_, err := svc.Create(t.Context(), "m1", &domain.CreateCardRequest{StoryID: story.ID, CoinID: coinID, KeywordIDs: foreign})
	assert.ErrorIs(t, err, common.ErrKeywordCoinMismatch)

	_, err = svc.Create(t.Context(), "m1", &domain.CreateCardRequest{StoryID: story.ID, CoinID: 999, KeywordIDs: foreign})
	assert.ErrorIs(t, err, common.ErrCoinNotFound)

	_, err = svc.Create(t.Context(), "m1", &domain.CreateCardRequest{StoryID: story.ID, CoinID: coinID})
	assert.ErrorIs(t, err, common.ErrKeywordRequired)

	_, err = svc.Create(t.Context(), "m2", &domain.CreateCardRequest{StoryID: story.ID, CoinID: coinID, KeywordIDs: foreign})
	assert.ErrorIs(t, err, common.ErrStoryForbidden)

	_, err = svc.Create(t.Context(), "m1", &domain.CreateCardRequest{StoryID: 9999, CoinID: coinID, KeywordIDs: foreign})
	assert.ErrorIs(t, err, common.ErrStoryNotFound)

	var count int64
	env.db.Model(&domain.Card{}).Count(&count)
	assert.Zero(t, count)
}

func TestCardCreate_GiftRequiresFriendship(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	env.addMember(t, "m2", "친구", "BBBB2222")
	story := env.addDiary(t, "m1", "친구가 나를 도와줬다")
	coinID, keywordIDs := env.selection(t, "관계와 공감", "배려심")
	target := "m2"

	_, err := newCardService(env, nil, nil).Create(t.Context(), "m1", &domain.CreateCardRequest{
		StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs, TargetMemberID: &target,
	})
	assert.ErrorIs(t, err, common.ErrNotFriends)
}

func TestCardCreate_GiftToFriend(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	env.addMember(t, "m2", "친구", "BBBB2222")
	edge := env.makeFriends(t, "m2", "m1")
	story := env.addDiary(t, "m1", "친구가 나를 도와줬다")
	coinID, keywordIDs := env.selection(t, "관계와 공감", "배려심")
	target := "m2"
	publisher := &recordingPublisher{}

	resp, err := newCardService(env, nil, publisher).Create(t.Context(), "m1", &domain.CreateCardRequest{
		StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs, TargetMemberID: &target,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsGift)
	assert.Equal(t, "친구", resp.Target.Nickname)

	stored, err := env.friends.FindByID(edge.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CoinShareCount)

	tally, err := env.memberCoins.FindTop("m2")
	require.NoError(t, err)
	assert.Equal(t, coinID, tally.CoinID)
	_, err = env.memberCoins.FindTop("m1")
	assert.Error(t, err)

	sent := publisher.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "m2", sent[0].memberID)
	assert.Equal(t, domain.NotificationCardReceived, sent[0].n.Type)
	assert.Equal(t, "보인님이 장점 카드를 보냈습니다.", sent[0].n.Message)

	received, err := newCardService(env, nil, nil).ListReceived("m2")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, resp.ID, received[0].ID)
}

func TestCardGet_Visibility(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	env.addMember(t, "m2", "남남", "BBBB2222")
	story := env.addDiary(t, "m1", "본문")
	coinID, keywordIDs := env.selection(t, "창의와 몰입", "호기심")
	svc := newCardService(env, nil, nil)

	card, err := svc.Create(t.Context(), "m1", &domain.CreateCardRequest{StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs})
	require.NoError(t, err)

	_, err = svc.Get("m2", card.ID)
	assert.ErrorIs(t, err, common.ErrCardForbidden)

	_, err = svc.UpdateVisibility(t.Context(), "m2", card.ID, true)
	assert.ErrorIs(t, err, common.ErrCardForbidden)

	updated, err := svc.UpdateVisibility(t.Context(), "m1", card.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)

	// 같은 값으로 다시 바꿔도 성공
	_, err = svc.UpdateVisibility(t.Context(), "m1", card.ID, true)
	require.NoError(t, err)

	got, err := svc.Get("m2", card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)

	page, err := svc.ListPublic(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = svc.Get("m1", 9999)
	assert.ErrorIs(t, err, common.ErrCardNotFound)
}

func TestCardDelete(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	story := env.addDiary(t, "m1", "본문")
	coinID, keywordIDs := env.selection(t, "사고와 해결", "판단력")
	svc := newCardService(env, nil, nil)

	card, err := svc.Create(t.Context(), "m1", &domain.CreateCardRequest{StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(t.Context(), "m2", card.ID), common.ErrCardForbidden)
	require.NoError(t, svc.Delete(t.Context(), "m1", card.ID))

	mine, err := svc.ListMine("m1")
	require.NoError(t, err)
	assert.Empty(t, mine)

	// 코인 집계는 유지
	tally, err := env.memberCoins.FindTop("m1")
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Count)
}

func TestCardStoryDeleteKeepsSnapshot(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	story := env.addDiary(t, "m1", "지워질 일기")
	coinID, keywordIDs := env.selection(t, "사고와 해결", "판단력")
	svc := newCardService(env, nil, nil)

	card, err := svc.Create(t.Context(), "m1", &domain.CreateCardRequest{StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs})
	require.NoError(t, err)
	require.NoError(t, NewStoryService(env.stories).Delete("m1", story.ID))

	got, err := svc.Get("m1", card.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StoryID)
	assert.Equal(t, "지워질 일기", got.Content)
}

func TestCardSearch_IndexSyncAndFallback(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	story := env.addDiary(t, "m1", "끝까지 마라톤을 완주했다")
	coinID, keywordIDs := env.selection(t, "관리와 성장", "끈기")

	index := new(mockCardIndex)
	index.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	index.On("Remove", mock.Anything, mock.Anything).Return(nil)
	svc := newCardService(env, index, nil)

	card, err := svc.Create(t.Context(), "m1", &domain.CreateCardRequest{
		StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs, IsPublic: boolPtr(true),
	})
	require.NoError(t, err)
	index.AssertCalled(t, "Put", mock.Anything, card.ID, mock.Anything)

	_, err = svc.UpdateVisibility(t.Context(), "m1", card.ID, false)
	require.NoError(t, err)
	index.AssertCalled(t, "Remove", mock.Anything, card.ID)

	_, err = svc.UpdateVisibility(t.Context(), "m1", card.ID, true)
	require.NoError(t, err)

	search := NewCardSearchService(index, env.cards, env.members, env.catalog)

	index.On("Search", mock.Anything, "마라톤", 1, 20).Return([]uint{card.ID}, int64(1), nil).Once()
	page, err := search.Search(t.Context(), "마라톤", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Items, 1)

	// 색인이 실패하면 DB 검색
	index.On("Search", mock.Anything, "끈기", 1, 20).Return(nil, int64(0), assert.AnError).Once()
	page, err = search.Search(t.Context(), "끈기", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = search.Search(t.Context(), "", 1, 20)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestCardSearch_DatabaseOnly(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	story := env.addDiary(t, "m1", "새로운 레시피를 만들었다")
	coinID, keywordIDs := env.selection(t, "창의와 몰입", "창의력")
	svc := newCardService(env, nil, nil)

	_, err := svc.Create(t.Context(), "m1", &domain.CreateCardRequest{StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs, IsPublic: boolPtr(true)})
	require.NoError(t, err)
	_, err = svc.Create(t.Context(), "m1", &domain.CreateCardRequest{StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs})
	require.NoError(t, err)

	search := NewCardSearchService(nil, env.cards, env.members, env.catalog)
	page, err := search.Search(t.Context(), "레시피", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = search.Search(t.Context(), "창의력", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	require.NoError(t, search.Reindex(t.Context()))
}

func TestCardSearch_DatabaseLikeIsLiteralAndCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	coinID, keywordIDs := env.selection(t, "창의와 몰입", "창의력")
	svc := newCardService(env, nil, nil)
	for _, content := range []string{"목표 100% 달성", "Marathon 완주", "snake_case 정리"} {
		story := env.addDiary(t, "m1", content)
		_, err := svc.Create(t.Context(), "m1", &domain.CreateCardRequest{StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs, IsPublic: boolPtr(true)})
		require.NoError(t, err)
	}

	search := NewCardSearchService(nil, env.cards, env.members, env.catalog)
	cases := []struct {
		keyword string
		want    int64
	}{
		{"%", 1},
		{"_", 1},
		{"100%", 1},
		{"0%달", 0},
		{"marathon", 1},
		{"MARATHON", 1},
		{"창의", 3},
	}
	for _, tc := range cases {
		t.Run(tc.keyword, func(t *testing.T) {
			page, err := search.Search(t.Context(), tc.keyword, 1, 20)
			require.NoError(t, err)
			assert.Equal(t, tc.want, page.Total)
		})
	}
}

func TestCardSearch_Reindex(t *testing.T) {
	env := newTestEnv(t)
	env.addMember(t, "m1", "보인", "AAAA1111")
	story := env.addDiary(t, "m1", "본문")
	coinID, keywordIDs := env.selection(t, "창의와 몰입", "창의력")
	svc := newCardService(env, nil, nil)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(t.Context(), "m1", &domain.CreateCardRequest{StoryID: story.ID, CoinID: coinID, KeywordIDs: keywordIDs, IsPublic: boolPtr(i != 1)})
		require.NoError(t, err)
	}

	index := new(mockCardIndex)
	index.On("PutAll", mock.Anything, mock.MatchedBy(func(docs map[uint]interface{}) bool {
		if len(docs) != 2 {
			return false
		}
		for _, d := range docs {
			doc := d.(*domain.CardSearchDocument)
			if doc.Nickname != "보인" || doc.CoinName != "창의와 몰입" {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	require.NoError(t, NewCardSearchService(index, env.cards, env.members, env.catalog).Reindex(t.Context()))
	index.AssertExpectations(t)
}
