package backendtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDocs(base time.Time) []*document {
	mk := func(id, title, owner string, age time.Duration) *document {
		return &document{
			ID:        id,
			CreatedAt: base.Add(-age),
			UpdatedAt: base.Add(-age),
			Fields:    map[string]any{"title": title, "owner": owner},
		}
	}
	return []*document{
		mk("d1", "sunrise surfing", "u1", 3*time.Minute),
		mk("d2", "City Sunrise", "u2", 2*time.Minute),
		mk("d3", "night drive", "u1", 1*time.Minute),
	}
}

func TestApplyQueries(t *testing.T) {
	base := time.Now()

	t.Run("equal", func(t *testing.T) {
		got := applyQueries(seedDocs(base), []queryExpr{
			{Method: "equal", Attribute: "owner", Values: []any{"u1"}},
		})
		require.Len(t, got, 2)
		assert.Equal(t, "d1", got[0].ID)
		assert.Equal(t, "d3", got[1].ID)
	})

	t.Run("search is case-insensitive substring", func(t *testing.T) {
		got := applyQueries(seedDocs(base), []queryExpr{
			{Method: "search", Attribute: "title", Values: []any{"sunrise"}},
		})
		assert.Len(t, got, 2)
	})

	t.Run("search empty terms matches all", func(t *testing.T) {
		got := applyQueries(seedDocs(base), []queryExpr{
			{Method: "search", Attribute: "title", Values: []any{""}},
		})
		assert.Len(t, got, 3)
	})

	t.Run("order desc by createdAt then limit", func(t *testing.T) {
		got := applyQueries(seedDocs(base), []queryExpr{
			{Method: "orderDesc", Attribute: "createdAt"},
			{Method: "limit", Values: []any{float64(2)}},
		})
		require.Len(t, got, 2)
		assert.Equal(t, "d3", got[0].ID)
		assert.Equal(t, "d2", got[1].ID)
	})
}
