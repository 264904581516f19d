package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voin/voin-backend/internal/common"
)

func fakeCompletions(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model    string              `json:"model"`
			Messages []map[string]string `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-test", body.Model)
		if assert.Len(t, body.Messages, 2) {
			assert.Contains(t, body.Messages[0]["content"], "- 끈기: ")
		}

		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClassify_Success(t *testing.T) {
	env := newTestEnv(t)
	srv := fakeCompletions(t, http.StatusOK, "장점 카테고리: [관리와 성장]\n키워드: [끈기]\n요약 내용: 매일 달리기를 빠지지 않고 해내며 스스로와의 약속을 지켰어요")
	svc := NewClassifyService(ClassifyConfig{APIKey: "sk-test", Model: "gpt-test", BaseURL: srv.URL + "/"}, env.catalog)

	resp, err := svc.Classify(t.Context(), "매일 아침 달리기를 했다")
	require.NoError(t, err)
	assert.Equal(t, "관리와 성장", resp.Coin.Name)
	assert.Equal(t, "끈기", resp.Keyword.Name)
	assert.Equal(t, "매일 달리기를 빠지지 않고 해내며 스스로와의 약속을 지켰어요", resp.Summary)
}

func TestClassify_CategoryFollowsKeyword(t *testing.T) {
	env := newTestEnv(t)
	srv := fakeCompletions(t, http.StatusOK, "장점 카테고리: 감정과 태도\n키워드: 끈기\n요약 내용: 요약")
	svc := NewClassifyService(ClassifyConfig{APIKey: "sk-test", Model: "gpt-test", BaseURL: srv.URL}, env.catalog)

	resp, err := svc.Classify(t.Context(), "글")
	require.NoError(t, err)
	assert.Equal(t, "관리와 성장", resp.Coin.Name)
	assert.True(t, env.catalog.KeywordBelongsTo(resp.Keyword.ID, resp.Coin.ID))
}

func TestClassify_Failures(t *testing.T) {
	env := newTestEnv(t)

	_, err := NewClassifyService(ClassifyConfig{}, env.catalog).Classify(t.Context(), "글")
	assert.ErrorIs(t, err, common.ErrClassifyDisabled)
	assert.Equal(t, http.StatusBadGateway, common.StatusOf(err))

	unknown := fakeCompletions(t, http.StatusOK, "장점 카테고리: 관리와 성장\n키워드: 없는키워드\n요약 내용: 요약")
	_, err = NewClassifyService(ClassifyConfig{APIKey: "sk-test", Model: "gpt-test", BaseURL: unknown.URL}, env.catalog).Classify(t.Context(), "글")
	assert.ErrorIs(t, err, common.ErrClassifyFailure)

	broken := fakeCompletions(t, http.StatusInternalServerError, "")
	_, err = NewClassifyService(ClassifyConfig{APIKey: "sk-test", Model: "gpt-test", BaseURL: broken.URL}, env.catalog).Classify(t.Context(), "글")
	assert.ErrorIs(t, err, common.ErrClassifyFailure)

	_, err = NewClassifyService(ClassifyConfig{APIKey: "sk-test", Model: "gpt-test", BaseURL: broken.URL}, env.catalog).Classify(t.Context(), "   ")
	assert.ErrorIs(t, err, common.ErrStoryContentMissing)
}

func TestParseClassification(t *testing.T) {
	got := parseClassification("  장점 카테고리:  [창의와 몰입]\n\n키워드:호기심\n기타 줄\n요약 내용: 새 악기를 배우기 시작했어요 ")
	assert.Equal(t, classification{Category: "창의와 몰입", Keyword: "호기심", Summary: "새 악기를 배우기 시작했어요"}, got)
}
