package elasticsearch

import (
	"context"
	"strconv"
)

// CardIndexMapping 공개 카드 색인 매핑
var CardIndexMapping = map[string]interface{}{
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"id":         map[string]string{"type": "long"},
			"member_id":  map[string]string{"type": "keyword"},
			"nickname":   map[string]string{"type": "keyword"},
			"coin_id":    map[string]string{"type": "integer"},
			"coin_name":  map[string]string{"type": "keyword"},
			"keywords":   map[string]string{"type": "text"},
			"content":    map[string]string{"type": "text"},
			"created_at": map[string]string{"type": "date"},
		},
	},
}

// CardIndex 카드 검색 색인
type CardIndex struct {
	client *Client
	index  string
}

// NewCardIndex creates the index if missing
func NewCardIndex(ctx context.Context, client *Client, index string) (*CardIndex, error) {
	if err := client.CreateIndex(ctx, index, CardIndexMapping); err != nil {
		return nil, err
	}
	return &CardIndex{client: client, index: index}, nil
}

// Put 카드 문서 색인 (같은 ID 는 덮어쓴다)
func (ci *CardIndex) Put(ctx context.Context, cardID uint, doc interface{}) error {
	return ci.client.IndexDocument(ctx, ci.index, strconv.FormatUint(uint64(cardID), 10), doc)
}

// Remove 카드 문서 삭제
func (ci *CardIndex) Remove(ctx context.Context, cardID uint) error {
	return ci.client.DeleteDocument(ctx, ci.index, strconv.FormatUint(uint64(cardID), 10))
}

// PutAll 여러 카드를 한 번에 색인
func (ci *CardIndex) PutAll(ctx context.Context, docs map[uint]interface{}) error {
	byID := make(map[string]interface{}, len(docs))
	for id, doc := range docs {
		byID[strconv.FormatUint(uint64(id), 10)] = doc
	}
	return ci.client.BulkIndex(ctx, ci.index, byID)
}

// Search 본문/키워드/코인명으로 검색해 카드 ID 를 점수 순으로 반환
func (ci *CardIndex) Search(ctx context.Context, keyword string, page, size int) ([]uint, int64, error) {
	from := (page - 1) * size
	if from < 0 {
		from = 0
	}
	res, err := ci.client.Search(ctx, ci.index, CardQuery(keyword), from, size)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(res.Hits))
	for _, h := range res.Hits {
		id, err := strconv.ParseUint(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, res.Total, nil
}

// CardQuery 검색 쿼리 본문
func CardQuery(keyword string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keyword,
				"fields": []string{"content", "keywords^2", "coin_name^2", "nickname"},
			},
		},
		"sort": []interface{}{
			"_score",
			map[string]string{"created_at": "desc"},
		},
	}
}
