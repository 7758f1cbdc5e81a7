package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gestpornub/client-go/internal/httputil"
)

type createDocumentRequest struct {
	DocumentID string         `json:"documentId"`
	Data       map[string]any `json:"data"`
}

// queryExpr mirrors the wire form of one query modifier.
type queryExpr struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute"`
	Values    []any  `json:"values"`
}

func newID() string {
	return uuid.NewString()
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	databaseID := chi.URLParam(r, "databaseID")
	collectionID := chi.URLParam(r, "collectionID")

	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.TypeBadRequest, "invalid request body")
		return
	}
	if req.DocumentID == "" {
		req.DocumentID = newID()
	}

	s.mu.Lock()
	if s.failDocumentWrites {
		s.mu.Unlock()
		httputil.WriteError(w, http.StatusInternalServerError, httputil.TypeInternal, "document write failed")
		return
	}
	now := time.Now().UTC()
	doc := &document{
		ID:        req.DocumentID,
		CreatedAt: now,
		UpdatedAt: now,
		Fields:    req.Data,
	}
	key := collectionKey(databaseID, collectionID)
	s.collections[key] = append(s.collections[key], doc)
	s.mu.Unlock()

	httputil.WriteJSON(w, http.StatusCreated, documentJSON(doc))
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	databaseID := chi.URLParam(r, "databaseID")
	collectionID := chi.URLParam(r, "collectionID")

	queries, err := parseQueries(r.URL.Query()["queries[]"])
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.TypeBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	docs := make([]*document, len(s.collections[collectionKey(databaseID, collectionID)]))
	copy(docs, s.collections[collectionKey(databaseID, collectionID)])
	s.mu.Unlock()

	docs = applyQueries(docs, queries)

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, documentJSON(doc))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"total":     len(out),
		"documents": out,
	})
}

func parseQueries(raw []string) ([]queryExpr, error) {
	queries := make([]queryExpr, 0, len(raw))
	for _, encoded := range raw {
		var q queryExpr
		if err := json.Unmarshal([]byte(encoded), &q); err != nil {
			return nil, fmt.Errorf("invalid query expression: %s", encoded)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// applyQueries evaluates modifiers in the platform's order: filters first,
// then ordering, then the limit.
func applyQueries(docs []*document, queries []queryExpr) []*document {
	for _, q := range queries {
		switch q.Method {
		case "equal":
			docs = filterDocs(docs, func(d *document) bool {
				return len(q.Values) > 0 && attrString(d, q.Attribute) == fmt.Sprint(q.Values[0])
			})
		case "search":
			docs = filterDocs(docs, func(d *document) bool {
				if len(q.Values) == 0 {
					return true
				}
				haystack := strings.ToLower(attrString(d, q.Attribute))
				needle := strings.ToLower(fmt.Sprint(q.Values[0]))
				return strings.Contains(haystack, needle)
			})
		}
	}

	for _, q := range queries {
		if q.Method == "orderDesc" {
			attribute := q.Attribute
			sort.SliceStable(docs, func(i, j int) bool {
				if attribute == "createdAt" {
					return docs[i].CreatedAt.After(docs[j].CreatedAt)
				}
				return attrString(docs[i], attribute) > attrString(docs[j], attribute)
			})
		}
	}

	for _, q := range queries {
		if q.Method == "limit" && len(q.Values) > 0 {
			if n, ok := asInt(q.Values[0]); ok && n < len(docs) {
				docs = docs[:n]
			}
		}
	}

	return docs
}

func filterDocs(docs []*document, keep func(*document) bool) []*document {
	filtered := docs[:0:0]
	for _, d := range docs {
		if keep(d) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func attrString(d *document, attribute string) string {
	value, ok := d.Fields[attribute]
	if !ok {
		return ""
	}
	return fmt.Sprint(value)
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

// documentJSON flattens a document the way the platform does: caller fields
// at the top level alongside the server-set id and timestamps.
func documentJSON(doc *document) map[string]any {
	out := make(map[string]any, len(doc.Fields)+3)
	for k, v := range doc.Fields {
		out[k] = v
	}
	out["id"] = doc.ID
	out["createdAt"] = doc.CreatedAt
	out["updatedAt"] = doc.UpdatedAt
	return out
}
