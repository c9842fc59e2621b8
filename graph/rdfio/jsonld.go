package rdfio

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/david4096/compliance-ontology/errors"
	"github.com/david4096/compliance-ontology/graph"
)

// compactIRI shortens an IRI against the default prefixes for JSON-LD keys
// and @id values.
func compactIRI(iri string, prefixes []namespacePrefix) string {
	if q, ok := qname(iri, prefixes); ok {
		return q
	}
	return iri
}

func jsonldID(t graph.Term, prefixes []namespacePrefix) string {
	if t.IsBlank() {
		return "_:" + t.Value
	}
	return compactIRI(t.Value, prefixes)
}

// encodeJSONLD writes a @context of the default prefixes and a @graph of
// one node object per subject.
func encodeJSONLD(w io.Writer, st *graph.Store) error {
	prefixes := defaultPrefixes()

	context := make(map[string]string, len(prefixes))
	for _, p := range prefixes {
		context[p.prefix] = p.ns
	}

	var order []graph.Term
	bySubject := make(map[graph.Term][]graph.Statement)
	for s := range st.Statements() {
		if _, seen := bySubject[s.Subject]; !seen {
			order = append(order, s.Subject)
		}
		bySubject[s.Subject] = append(bySubject[s.Subject], s)
	}

	nodes := make([]map[string]interface{}, 0, len(order))
	for _, subj := range order {
		node := map[string]interface{}{
			"@id": jsonldID(subj, prefixes),
		}
		var types []string
		for _, s := range bySubject[subj] {
			if s.Predicate.Value == graph.RDFType && s.Object.IsIRI() {
				types = append(types, compactIRI(s.Object.Value, prefixes))
				continue
			}
			key := compactIRI(s.Predicate.Value, prefixes)
			var value interface{}
			o := s.Object
			switch {
			case o.IsIRI(), o.IsBlank():
				value = map[string]interface{}{"@id": jsonldID(o, prefixes)}
			case o.Lang != "":
				value = map[string]interface{}{"@value": o.Value, "@language": o.Lang}
			case o.Datatype != "" && o.Datatype != graph.XSDString:
				value = map[string]interface{}{
					"@value": o.Value,
					"@type":  compactIRI(o.Datatype, prefixes),
				}
			default:
				value = map[string]interface{}{"@value": o.Value}
			}
			existing, _ := node[key].([]interface{})
			node[key] = append(existing, value)
		}
		if len(types) > 0 {
			node["@type"] = types
		}
		nodes = append(nodes, node)
	}

	doc := map[string]interface{}{
		"@context": context,
		"@graph":   nodes,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// decodeJSONLD reads the flattened node-object form the encoder emits,
// plus the common shorthand variants: bare string/number/boolean values and
// single (non-array) values.
func decodeJSONLD(r io.Reader) (*graph.Store, error) {
	var doc map[string]interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Parsef("malformed JSON-LD: %v", err)
	}

	ctx := make(map[string]string)
	if raw, ok := doc["@context"].(map[string]interface{}); ok {
		for k, v := range raw {
			if ns, ok := v.(string); ok {
				ctx[k] = ns
			}
		}
	}

	var nodes []interface{}
	switch {
	case doc["@graph"] != nil:
		g, ok := doc["@graph"].([]interface{})
		if !ok {
			return nil, errors.Parsef("@graph must be an array")
		}
		nodes = g
	case doc["@id"] != nil:
		nodes = []interface{}{doc}
	default:
		return nil, errors.Parsef("JSON-LD document has no @graph")
	}

	st := graph.New()
	for _, raw := range nodes {
		node, ok := raw.(map[string]interface{})
		if !ok {
			return nil, errors.Parsef("@graph entries must be node objects")
		}
		if err := decodeNode(st, node, ctx); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func decodeNode(st *graph.Store, node map[string]interface{}, ctx map[string]string) error {
	subj := subjectTerm(node, ctx)

	for key, raw := range node {
		switch key {
		case "@id", "@context":
			continue
		case "@type":
			for _, v := range asList(raw) {
				name, ok := v.(string)
				if !ok {
					return errors.Parsef("@type values must be strings")
				}
				st.Add(graph.NewStatement(subj, graph.IRI(graph.RDFType), expandTerm(name, ctx)))
			}
			continue
		}

		pred := expandTerm(key, ctx)
		if !pred.IsIRI() {
			return errors.Parsef("predicate %q does not expand to an IRI", key)
		}
		for _, v := range asList(raw) {
			obj, err := objectTerm(v, ctx)
			if err != nil {
				return err
			}
			st.Add(graph.NewStatement(subj, pred, obj))
		}
	}
	return nil
}

func subjectTerm(node map[string]interface{}, ctx map[string]string) graph.Term {
	id, _ := node["@id"].(string)
	if id == "" {
		// Anonymous node objects get a fresh blank label.
		return graph.Blank("b" + uuid.NewString())
	}
	return expandTerm(id, ctx)
}

func asList(v interface{}) []interface{} {
	if list, ok := v.([]interface{}); ok {
		return list
	}
	return []interface{}{v}
}

// expandTerm resolves a compact IRI or blank node identifier.
func expandTerm(s string, ctx map[string]string) graph.Term {
	if strings.HasPrefix(s, "_:") {
		return graph.Blank(strings.TrimPrefix(s, "_:"))
	}
	if idx := strings.Index(s, ":"); idx > 0 && !strings.Contains(s, "://") {
		if ns, ok := ctx[s[:idx]]; ok {
			return graph.IRI(ns + s[idx+1:])
		}
	}
	return graph.IRI(s)
}

func objectTerm(v interface{}, ctx map[string]string) (graph.Term, error) {
	switch val := v.(type) {
	case string:
		return graph.StringLiteral(val), nil
	case bool:
		return graph.BooleanLiteral(val), nil
	case float64:
		if val == math.Trunc(val) {
			return graph.IntegerLiteral(int64(val)), nil
		}
		return graph.Literal(strconv.FormatFloat(val, 'f', -1, 64), graph.XSDDecimal), nil
	case map[string]interface{}:
		if id, ok := val["@id"].(string); ok {
			return expandTerm(id, ctx), nil
		}
		if raw, ok := val["@value"]; ok {
			lex, ok := raw.(string)
			if !ok {
				// Non-string @value: render through the scalar rules.
				return objectTerm(raw, ctx)
			}
			if lang, ok := val["@language"].(string); ok {
				return graph.LangLiteral(lex, lang), nil
			}
			if dt, ok := val["@type"].(string); ok {
				return graph.Literal(lex, expandTerm(dt, ctx).Value), nil
			}
			return graph.StringLiteral(lex), nil
		}
		return graph.Term{}, errors.Parsef("value object needs @id or @value")
	}
	return graph.Term{}, errors.Parsef("unsupported JSON-LD value of type %T", v)
}
