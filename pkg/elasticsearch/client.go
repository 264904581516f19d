package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
)

// Client wraps the Elasticsearch client with convenience methods
type Client struct {
	es *elasticsearch.Client
}

// NewClient creates a new Elasticsearch client and pings the cluster
func NewClient(addresses []string, username, password string) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addresses,
	}
	if username != "" {
		cfg.Username = username
		cfg.Password = password
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client creation failed: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch connection failed: %w", err)
	}
	if err := checkResponse(res, "info"); err != nil {
		return nil, err
	}

	pkglogger.GetLogger().Info().Strs("addresses", addresses).Msg("connected to Elasticsearch")
	return &Client{es: es}, nil
}

// checkResponse closes the body on error and turns non-2xx into an error
func checkResponse(res *esapi.Response, op string) error {
	if !res.IsError() {
		return nil
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%s error [%s]: failed to read response body: %w", op, res.Status(), err)
	}
	return fmt.Errorf("%s error [%s]: %s", op, res.Status(), string(body))
}

// IndexDocument indexes a single document
func (c *Client) IndexDocument(ctx context.Context, index, docID string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	res, err := esapi.IndexRequest{
		Index:      index,
		DocumentID: docID,
		Body:       bytes.NewReader(data),
		Refresh:    "false",
	}.Do(ctx, c.es)
	if err != nil {
		return err
	}
	if err := checkResponse(res, "index"); err != nil {
		return err
	}
	return res.Body.Close()
}

// DeleteDocument removes a document. 404 is ok (already gone)
func (c *Client) DeleteDocument(ctx context.Context, index, docID string) error {
	res, err := esapi.DeleteRequest{Index: index, DocumentID: docID}.Do(ctx, c.es)
	if err != nil {
		return err
	}
	if res.StatusCode == http.StatusNotFound {
		return res.Body.Close()
	}
	if err := checkResponse(res, "delete"); err != nil {
		return err
	}
	return res.Body.Close()
}

// BulkIndex indexes multiple documents in a single request
func (c *Client) BulkIndex(ctx context.Context, index string, docs map[string]interface{}) error {
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for id, doc := range docs {
		meta := map[string]interface{}{"index": map[string]string{"_index": index, "_id": id}}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode bulk meta for id %s: %w", id, err)
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode bulk doc for id %s: %w", id, err)
		}
	}

	res, err := c.es.Bulk(&buf, c.es.Bulk.WithContext(ctx), c.es.Bulk.WithRefresh("false"))
	if err != nil {
		return err
	}
	if err := checkResponse(res, "bulk"); err != nil {
		return err
	}
	return res.Body.Close()
}

// Hit 검색 결과 한 건
type Hit struct {
	ID     string          `json:"_id"`
	Score  float64         `json:"_score"`
	Source json.RawMessage `json:"_source"`
}

// SearchResponse holds search results
type SearchResponse struct {
	Total int64
	Hits  []Hit
}

type rawSearchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []Hit `json:"hits"`
	} `json:"hits"`
}

// Search performs a search query
func (c *Client) Search(ctx context.Context, index string, query map[string]interface{}, from, size int) (*SearchResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(&buf),
		c.es.Search.WithFrom(from),
		c.es.Search.WithSize(size),
		c.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(res, "search"); err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var raw rawSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &SearchResponse{Total: raw.Hits.Total.Value, Hits: raw.Hits.Hits}, nil
}

// CreateIndex creates an index with the given mapping when it does not exist
func (c *Client) CreateIndex(ctx context.Context, index string, mapping map[string]interface{}) error {
	res, err := c.es.Indices.Exists([]string{index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(mapping); err != nil {
		return fmt.Errorf("failed to encode index mapping: %w", err)
	}

	res, err = c.es.Indices.Create(index, c.es.Indices.Create.WithBody(&buf), c.es.Indices.Create.WithContext(ctx))
	if err != nil {
		return err
	}
	if err := checkResponse(res, "create index"); err != nil {
		// 동시에 생성된 경우
		if strings.Contains(err.Error(), "resource_already_exists_exception") {
			return nil
		}
		return err
	}
	return res.Body.Close()
}
