package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DatabaseService covers document create and list endpoints. Documents are
// schema-flexible; callers supply the concrete struct to decode into.
type DatabaseService struct {
	client *Client
}

type createDocumentRequest struct {
	DocumentID string `json:"documentId"`
	Data       any    `json:"data"`
}

// CreateDocument writes a new document with a fresh id and decodes the stored
// row (including server-set timestamps) into out.
func (s *DatabaseService) CreateDocument(ctx context.Context, databaseID, collectionID string, data, out any) error {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents", databaseID, collectionID)
	req := createDocumentRequest{DocumentID: UniqueID(), Data: data}

	if err := s.client.do(ctx, http.MethodPost, path, req, out); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// ListDocuments queries a collection. queries holds encoded modifiers from
// Equal/Search/OrderDesc/Limit; nil means the collection's default listing.
// out receives the {total, documents} envelope.
func (s *DatabaseService) ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string, out any) error {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents", databaseID, collectionID)
	if len(queries) > 0 {
		params := url.Values{}
		for _, q := range queries {
			params.Add("queries[]", q)
		}
		path += "?" + params.Encode()
	}

	if err := s.client.do(ctx, http.MethodGet, path, nil, out); err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	return nil
}
