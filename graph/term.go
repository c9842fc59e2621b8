// Package graph implements the statement store for the compliance ontology:
// an in-memory, identifier-indexed set of (subject, predicate, object)
// statements with wildcard lookup. The store is format-agnostic; reading and
// writing serialized graphs lives in graph/rdfio.
package graph

import (
	"fmt"
	"strconv"
	"time"
)

// Core RDF and XSD terms used across the store and serializers.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"

	RDFType     = RDFNamespace + "type"
	RDFSLabel   = RDFSNamespace + "label"
	RDFSComment = RDFSNamespace + "comment"

	XSDString   = XSDNamespace + "string"
	XSDInteger  = XSDNamespace + "integer"
	XSDDecimal  = XSDNamespace + "decimal"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDDate     = XSDNamespace + "date"
	XSDDateTime = XSDNamespace + "dateTime"
)

// Layouts for xsd:date and xsd:dateTime lexical forms.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// TermKind discriminates the three statement term kinds.
type TermKind uint8

const (
	// KindIRI is a resource identifier.
	KindIRI TermKind = iota
	// KindLiteral is a datatyped or language-tagged value.
	KindLiteral
	// KindBlank is an anonymous node; produced only by deserialization.
	KindBlank
)

// Term is one position of a statement. Terms are comparable values; two
// terms are the same node iff they are ==.
type Term struct {
	Kind     TermKind
	Value    string // IRI, literal lexical form, or blank node label
	Datatype string // literal datatype IRI; empty for IRI and blank terms
	Lang     string // language tag; only on literals, excludes Datatype
}

// IRI returns an IRI term.
func IRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

// Blank returns a blank node term with the given label.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// Literal returns a literal term with an explicit datatype.
func Literal(lexical, datatype string) Term {
	return Term{Kind: KindLiteral, Value: lexical, Datatype: datatype}
}

// LangLiteral returns a language-tagged string literal.
func LangLiteral(lexical, lang string) Term {
	return Term{Kind: KindLiteral, Value: lexical, Lang: lang}
}

// StringLiteral returns an xsd:string literal.
func StringLiteral(s string) Term {
	return Literal(s, XSDString)
}

// IntegerLiteral returns an xsd:integer literal.
func IntegerLiteral(i int64) Term {
	return Literal(strconv.FormatInt(i, 10), XSDInteger)
}

// BooleanLiteral returns an xsd:boolean literal.
func BooleanLiteral(b bool) Term {
	return Literal(strconv.FormatBool(b), XSDBoolean)
}

// DateLiteral returns an xsd:date literal for t's calendar date.
func DateLiteral(t time.Time) Term {
	return Literal(t.Format(DateLayout), XSDDate)
}

// DateTimeLiteral returns an xsd:dateTime literal.
func DateTimeLiteral(t time.Time) Term {
	return Literal(t.Format(DateTimeLayout), XSDDateTime)
}

// IsIRI reports whether the term is an IRI.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// Date parses the term as an xsd:date or xsd:dateTime literal and returns
// its calendar date.
func (t Term) Date() (time.Time, error) {
	if !t.IsLiteral() {
		return time.Time{}, fmt.Errorf("term %s is not a literal", t)
	}
	if d, err := time.Parse(DateLayout, t.Value); err == nil {
		return d, nil
	}
	d, err := time.Parse(DateTimeLayout, t.Value)
	if err != nil {
		return time.Time{}, fmt.Errorf("literal %q is not a date: %w", t.Value, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Time parses the term as an xsd:dateTime or xsd:date literal,
// preserving the time of day.
func (t Term) Time() (time.Time, error) {
	if !t.IsLiteral() {
		return time.Time{}, fmt.Errorf("term %s is not a literal", t)
	}
	if d, err := time.Parse(DateTimeLayout, t.Value); err == nil {
		return d, nil
	}
	d, err := time.Parse(DateLayout, t.Value)
	if err != nil {
		return time.Time{}, fmt.Errorf("literal %q is not a timestamp: %w", t.Value, err)
	}
	return d, nil
}

// String renders the term in N-Triples style for logs and errors.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	default:
		if t.Lang != "" {
			return strconv.Quote(t.Value) + "@" + t.Lang
		}
		if t.Datatype != "" && t.Datatype != XSDString {
			return strconv.Quote(t.Value) + "^^<" + t.Datatype + ">"
		}
		return strconv.Quote(t.Value)
	}
}
