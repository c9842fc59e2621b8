package rdfio

import (
	"io"
	"strings"

	"github.com/david4096/compliance-ontology/graph"
)

// ntriplesTerm renders a term in N-Triples syntax: full IRIs, no prefixes.
func ntriplesTerm(t graph.Term) string {
	switch t.Kind {
	case graph.KindIRI:
		return "<" + t.Value + ">"
	case graph.KindBlank:
		return "_:" + t.Value
	default:
		lit := `"` + escapeLiteral(t.Value) + `"`
		if t.Lang != "" {
			return lit + "@" + t.Lang
		}
		if t.Datatype != "" && t.Datatype != graph.XSDString {
			return lit + "^^<" + t.Datatype + ">"
		}
		return lit
	}
}

// encodeNTriples writes one statement per line in full-IRI form.
func encodeNTriples(w io.Writer, st *graph.Store) error {
	var sb strings.Builder
	for s := range st.Statements() {
		sb.WriteString(ntriplesTerm(s.Subject))
		sb.WriteString(" ")
		sb.WriteString(ntriplesTerm(s.Predicate))
		sb.WriteString(" ")
		sb.WriteString(ntriplesTerm(s.Object))
		sb.WriteString(" .\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
