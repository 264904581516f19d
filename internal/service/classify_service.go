package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voin/voin-backend/internal/catalog"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
)

const (
	classifyCategoryPrefix = "장점 카테고리:"
	classifyKeywordPrefix  = "키워드:"
	classifySummaryPrefix  = "요약 내용:"
)

// ClassifyService 작성한 글에서 장점 코인과 키워드를 분류
type ClassifyService interface {
	Classify(ctx context.Context, text string) (*domain.ClassifyResponse, error)
}

// ClassifyConfig OpenAI 호환 chat completions 설정
type ClassifyConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type classifyService struct {
	cfg          ClassifyConfig
	catalog      *catalog.Catalog
	systemPrompt string
	httpClient   *http.Client
}

// NewClassifyService creates a new ClassifyService
func NewClassifyService(cfg ClassifyConfig, cat *catalog.Catalog) ClassifyService {
	return &classifyService{
		cfg:          cfg,
		catalog:      cat,
		systemPrompt: buildClassifyPrompt(cat),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *classifyService) Classify(ctx context.Context, text string) (*domain.ClassifyResponse, error) {
	if s.cfg.APIKey == "" {
		return nil, common.ErrClassifyDisabled
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.ErrStoryContentMissing
	}

	raw, err := s.callProvider(ctx, text)
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("classify provider call failed")
		return nil, common.ErrClassifyFailure.Wrap(err)
	}

	result, err := s.resolve(parseClassification(raw))
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("raw", truncateRunes(raw, 200)).Msg("classify response unresolved")
		return nil, err
	}
	return result, nil
}

// callProvider OpenAI 포맷 호출
func (s *classifyService) callProvider(ctx context.Context, userMessage string) (string, error) {
	reqBody := map[string]interface{}{
		"model":       s.cfg.Model,
		"temperature": 0,
		"messages": []map[string]string{
			{"role": "system", "content": s.systemPrompt},
			{"role": "user", "content": userMessage},
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("응답 읽기 실패: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API 오류 (%d): %s", resp.StatusCode, truncateRunes(string(respBody), 200))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("응답 JSON 파싱 실패: %w", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("AI 응답에서 텍스트를 찾을 수 없습니다")
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

type classification struct {
	Category string
	Keyword  string
	Summary  string
}

// parseClassification 출력 형식의 세 줄을 읽는다. 값의 대괄호는 벗긴다.
func parseClassification(raw string) classification {
	var out classification
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, classifyCategoryPrefix):
			out.Category = cleanClassifyValue(strings.TrimPrefix(line, classifyCategoryPrefix))
		case strings.HasPrefix(line, classifyKeywordPrefix):
			out.Keyword = cleanClassifyValue(strings.TrimPrefix(line, classifyKeywordPrefix))
		case strings.HasPrefix(line, classifySummaryPrefix):
			out.Summary = cleanClassifyValue(strings.TrimPrefix(line, classifySummaryPrefix))
		}
	}
	return out
}

func cleanClassifyValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "[")
	v = strings.TrimSuffix(v, "]")
	return strings.TrimSpace(v)
}

// resolve 키워드는 반드시 카탈로그에 있어야 한다. 카테고리가 키워드의 코인과 다르면 키워드 쪽을 따른다.
func (s *classifyService) resolve(c classification) (*domain.ClassifyResponse, error) {
	if c.Keyword == "" || c.Summary == "" {
		return nil, common.ErrClassifyFailure
	}
	keyword, err := s.catalog.KeywordByName(c.Keyword)
	if err != nil {
		return nil, common.ErrClassifyFailure.Wrap(err)
	}

	coinID := keyword.CoinID
	if coin, err := s.catalog.CoinByName(c.Category); err == nil && !s.catalog.KeywordBelongsTo(keyword.ID, coin.ID) {
		pkglogger.GetLogger().Warn().
			Str("category", c.Category).
			Str("keyword", c.Keyword).
			Msg("classified category does not own keyword")
	}
	coin, err := s.catalog.CoinSummary(coinID)
	if err != nil {
		return nil, common.ErrClassifyFailure.Wrap(err)
	}
	return &domain.ClassifyResponse{Coin: coin, Keyword: keyword, Summary: c.Summary}, nil
}

func buildClassifyPrompt(cat *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString(`너는 사용자가 작성한 글(일상 기록, 자신의 사례 회고, 친구의 사례 회고)에서 장점 카테고리와 키워드를 분류하고, 50~60자 분량의 존댓말로 요약하는 AI야. 입력이 동일하면 항상 동일한 결과를 내야 해.

### 절차
1. 사용자의 문단에서 가장 중심이 되는 가치, 신념, 행동의 동기를 파악합니다.
2. 아래 정의 중 가장 적절한 카테고리 1개, 키워드 1개를 선택합니다.
3. 반드시 정의된 목록 안에서만 선택하고, 키워드는 선택한 카테고리에 속해야 합니다.
4. 사용자의 문단을 50~60자 사이의 한 문장으로 요약합니다.

### 요약 작성 지침
- "~했어요" 어미를 사용하고 높임 표현과 감탄형 표현은 쓰지 않습니다.
- 사실 중심으로 따뜻하게 표현하고 부정적 어휘는 쓰지 않습니다.

### 출력 형식
`)
	b.WriteString(classifyCategoryPrefix + " [카테고리명]\n")
	b.WriteString(classifyKeywordPrefix + " [키워드명]\n")
	b.WriteString(classifySummaryPrefix + " [요약]\n\n")
	b.WriteString("### 장점 카테고리와 키워드 정의\n")
	for _, coin := range cat.Coins() {
		b.WriteString("\n" + coin.Name + "\n")
		for _, k := range coin.Keywords {
			b.WriteString("- " + k.Name + ": " + k.Description + "\n")
		}
	}
	return b.String()
}
