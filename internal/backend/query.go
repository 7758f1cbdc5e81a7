package backend

import "encoding/json"

// queryExpr is the wire form of one query modifier. List endpoints accept a
// set of them as repeated `queries[]` parameters.
type queryExpr struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

func (q queryExpr) encode() string {
	// Marshal cannot fail for these field types.
	b, _ := json.Marshal(q)
	return string(b)
}

// Equal matches documents whose attribute equals value.
func Equal(attribute string, value any) string {
	return queryExpr{Method: "equal", Attribute: attribute, Values: []any{value}}.encode()
}

// Search full-text matches terms against a string attribute. An empty terms
// string matches everything; the platform treats it as an unconstrained scan.
func Search(attribute, terms string) string {
	return queryExpr{Method: "search", Attribute: attribute, Values: []any{terms}}.encode()
}

// OrderDesc sorts results by attribute, newest-style values first.
func OrderDesc(attribute string) string {
	return queryExpr{Method: "orderDesc", Attribute: attribute}.encode()
}

// Limit caps the number of returned documents.
func Limit(n int) string {
	return queryExpr{Method: "limit", Values: []any{n}}.encode()
}
