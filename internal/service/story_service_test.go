package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestStoryCreate_DailyDiary(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStoryService(env.stories)

	resp, err := svc.Create("m1", &domain.CreateStoryRequest{
		StoryType: domain.StoryTypeDailyDiary,
		Content:   "  오늘 동생 숙제를 도와줬다  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "오늘의 일기", resp.Title)
	assert.Equal(t, "오늘 동생 숙제를 도와줬다", resp.Content)
	assert.Nil(t, resp.SituationContext)
	assert.Empty(t, resp.Answer1)
}

func TestStoryCreate_Reflection(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStoryService(env.stories)

	resp, err := svc.Create("m1", &domain.CreateStoryRequest{
		StoryType:          domain.StoryTypeExperienceReflection,
		Content:            "팀플에서 발표를 맡았다",
		SituationContextID: intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "사례 돌아보기", resp.Title)
	assert.Equal(t, "팀플에서 발표를 맡았다", resp.Answer1)
	require.NotNil(t, resp.SituationContext)
	assert.Equal(t, "업무/과제/팀플", resp.SituationContext.Title)
}

func TestStoryCreate_Errors(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStoryService(env.stories)

	cases := []struct {
		name string
		req  domain.CreateStoryRequest
		want error
	}{
		{"unknown type", domain.CreateStoryRequest{StoryType: "POEM", Content: "x"}, common.ErrInvalidStoryType},
		{"empty diary", domain.CreateStoryRequest{StoryType: domain.StoryTypeDailyDiary, Content: "   "}, common.ErrStoryContentMissing},
		{"missing situation", domain.CreateStoryRequest{StoryType: domain.StoryTypeExperienceReflection, Content: "x"}, common.ErrSituationMissing},
		{"unknown situation", domain.CreateStoryRequest{StoryType: domain.StoryTypeExperienceReflection, Content: "x", SituationContextID: intPtr(7)}, common.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create("m1", &tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStoryCreate_UnknownSituationNamesID(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewStoryService(env.stories).Create("m1", &domain.CreateStoryRequest{
		StoryType:          domain.StoryTypeExperienceReflection,
		Content:            "x",
		SituationContextID: intPtr(42),
	})
	require.Error(t, err)
	assert.Contains(t, common.MessageOf(err), "42")
}

func TestStoryAddReflection(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStoryService(env.stories)

	created, err := svc.Create("m1", &domain.CreateStoryRequest{
		StoryType:          domain.StoryTypeExperienceReflection,
		Content:            "처음 보는 사람에게 길을 알려줬다",
		SituationContextID: intPtr(2),
	})
	require.NoError(t, err)

	_, err = svc.AddReflection("m2", created.ID, "뿌듯했다")
	assert.ErrorIs(t, err, common.ErrStoryForbidden)

	_, err = svc.AddReflection("m1", created.ID, " ")
	assert.ErrorIs(t, err, common.ErrStoryContentMissing)

	_, err = svc.AddReflection("m1", 9999, "뿌듯했다")
	assert.ErrorIs(t, err, common.ErrStoryNotFound)

	updated, err := svc.AddReflection("m1", created.ID, "뿌듯했다")
	require.NoError(t, err)
	assert.Equal(t, "뿌듯했다", updated.Answer2)

	got, err := svc.Get("m1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "뿌듯했다", got.Answer2)
}

func TestStoryAddReflection_DiaryRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStoryService(env.stories)
	diary := env.addDiary(t, "m1", "일기")

	_, err := svc.AddReflection("m1", diary.ID, "추가")
	assert.ErrorIs(t, err, common.ErrStoryNotReflection)
}

func TestStoryListAndDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStoryService(env.stories)
	first := env.addDiary(t, "m1", "첫 번째")
	second := env.addDiary(t, "m1", "두 번째")
	env.addDiary(t, "m2", "남의 일기")

	list, err := svc.ListMine("m1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	assert.ErrorIs(t, svc.Delete("m2", first.ID), common.ErrStoryForbidden)
	require.NoError(t, svc.Delete("m1", first.ID))

	_, err = svc.Get("m1", first.ID)
	assert.ErrorIs(t, err, common.ErrStoryNotFound)
}
