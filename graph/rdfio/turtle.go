package rdfio

import (
	"fmt"
	"io"
	"strings"

	"github.com/david4096/compliance-ontology/graph"
	"github.com/david4096/compliance-ontology/vocab"
)

// namespacePrefix pairs a Turtle prefix with its namespace IRI. Order
// matters: writers try prefixes in declaration order.
type namespacePrefix struct {
	prefix string
	ns     string
}

func defaultPrefixes() []namespacePrefix {
	return []namespacePrefix{
		{vocab.Prefix, vocab.Namespace},
		{"rdf", graph.RDFNamespace},
		{"rdfs", graph.RDFSNamespace},
		{"owl", graph.OWLNamespace},
		{"xsd", graph.XSDNamespace},
	}
}

// qname compacts an IRI to prefix:local when the local part is safe to
// round-trip; otherwise the IRI is written in full.
func qname(iri string, prefixes []namespacePrefix) (string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(iri, p.ns) {
			local := strings.TrimPrefix(iri, p.ns)
			if safeLocalName(local) {
				return p.prefix + ":" + local, true
			}
		}
	}
	return "", false
}

func safeLocalName(local string) bool {
	if local == "" {
		return false
	}
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

// escapeLiteral escapes a literal lexical form for Turtle and N-Triples.
func escapeLiteral(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// turtleTerm renders a term in Turtle syntax with prefix compaction.
func turtleTerm(t graph.Term, prefixes []namespacePrefix) string {
	switch t.Kind {
	case graph.KindIRI:
		if q, ok := qname(t.Value, prefixes); ok {
			return q
		}
		return "<" + t.Value + ">"
	case graph.KindBlank:
		return "_:" + t.Value
	default:
		lit := `"` + escapeLiteral(t.Value) + `"`
		if t.Lang != "" {
			return lit + "@" + t.Lang
		}
		if t.Datatype != "" && t.Datatype != graph.XSDString {
			if q, ok := qname(t.Datatype, prefixes); ok {
				return lit + "^^" + q
			}
			return lit + "^^<" + t.Datatype + ">"
		}
		return lit
	}
}

// encodeTurtle writes the store as Turtle (or TriG when wrapped: same
// statement syntax inside a default graph block).
func encodeTurtle(w io.Writer, st *graph.Store, trig bool) error {
	prefixes := defaultPrefixes()
	var sb strings.Builder

	for _, p := range prefixes {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", p.prefix, p.ns)
	}
	sb.WriteString("\n")

	indent := "    "
	if trig {
		sb.WriteString("{\n")
	}

	// Group statements by subject, keeping first-appearance order.
	var order []graph.Term
	bySubject := make(map[graph.Term][]graph.Statement)
	for s := range st.Statements() {
		if _, seen := bySubject[s.Subject]; !seen {
			order = append(order, s.Subject)
		}
		bySubject[s.Subject] = append(bySubject[s.Subject], s)
	}

	for _, subj := range order {
		stmts := bySubject[subj]
		sb.WriteString(turtleTerm(subj, prefixes))
		sb.WriteString("\n")
		for i, s := range stmts {
			pred := turtleTerm(s.Predicate, prefixes)
			if s.Predicate.Value == graph.RDFType {
				pred = "a"
			}
			sb.WriteString(indent)
			sb.WriteString(pred)
			sb.WriteString(" ")
			sb.WriteString(turtleTerm(s.Object, prefixes))
			if i < len(stmts)-1 {
				sb.WriteString(" ;\n")
			} else {
				sb.WriteString(" .\n")
			}
		}
		sb.WriteString("\n")
	}

	if trig {
		sb.WriteString("}\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
