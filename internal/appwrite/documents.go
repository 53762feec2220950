package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/agentstation/menuseed/internal/transport"
	"github.com/agentstation/menuseed/pkg/backend"
	"github.com/agentstation/menuseed/pkg/errors"
)

type documentList struct {
	Total     int              `json:"total"`
	Documents []map[string]any `json:"documents"`
}

type createDocumentRequest struct {
	DocumentID string         `json:"documentId"`
	Data       map[string]any `json:"data"`
}

// ListDocuments implements backend.Documents.
func (c *Client) ListDocuments(ctx context.Context, collectionID string, limit int) ([]backend.Document, error) {
	u, err := withQueries(c.documentsURL(collectionID), limitQuery(limit))
	if err != nil {
		return nil, errors.WrapResource("list", "documents", collectionID, err)
	}

	resp, err := c.transport.Get(ctx, u)
	if err != nil {
		return nil, errors.WrapResource("list", "documents", collectionID, err)
	}

	var list documentList
	if err := transport.DecodeResponse(resp, &list); err != nil {
		return nil, errors.WrapResource("list", "documents", collectionID, err)
	}

	docs := make([]backend.Document, 0, len(list.Documents))
	for _, raw := range list.Documents {
		docs = append(docs, toDocument(collectionID, raw))
	}
	return docs, nil
}

// DeleteDocument implements backend.Documents.
func (c *Client) DeleteDocument(ctx context.Context, collectionID, documentID string) error {
	resp, err := c.transport.Delete(ctx, c.documentsURL(collectionID)+"/"+url.PathEscape(documentID))
	if err != nil {
		return errors.WrapResource("delete", "document", documentID, err)
	}
	if err := transport.DecodeResponse(resp, nil); err != nil {
		return errors.WrapResource("delete", "document", documentID, err)
	}
	return nil
}

// CreateDocument implements backend.Documents.
func (c *Client) CreateDocument(ctx context.Context, collectionID, documentID string, data map[string]any) (*backend.Document, error) {
	body, err := json.Marshal(createDocumentRequest{DocumentID: documentID, Data: data})
	if err != nil {
		return nil, errors.WrapResource("create", "document", documentID, err)
	}

	resp, err := c.transport.Request(ctx, http.MethodPost, c.documentsURL(collectionID), bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, errors.WrapResource("create", "document", documentID, err)
	}

	var raw map[string]any
	if err := transport.DecodeResponse(resp, &raw); err != nil {
		return nil, errors.WrapResource("create", "document", documentID, err)
	}

	doc := toDocument(collectionID, raw)
	if doc.ID == "" {
		doc.ID = documentID
	}
	return &doc, nil
}

// toDocument splits Appwrite's $-prefixed system attributes from user fields.
func toDocument(collectionID string, raw map[string]any) backend.Document {
	doc := backend.Document{CollectionID: collectionID, Data: make(map[string]any, len(raw))}
	for k, v := range raw {
		switch k {
		case "$id":
			doc.ID, _ = v.(string)
		case "$collectionId":
			if s, ok := v.(string); ok && s != "" {
				doc.CollectionID = s
			}
		default:
			if !strings.HasPrefix(k, "$") {
				doc.Data[k] = v
			}
		}
	}
	return doc
}
