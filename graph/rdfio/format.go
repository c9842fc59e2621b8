// Package rdfio reads and writes graph.Store statement sets in the RDF
// serialization formats the ontology ships in: Turtle (canonical),
// N-Triples, RDF/XML, JSON-LD, Notation3 and TriG. Every format represents
// the identical statement set; loading a saved graph reproduces it
// statement-for-statement regardless of format.
//
// The four text formats (Turtle, N-Triples, N3, TriG) share one reader,
// since N-Triples is a subset of Turtle and N3/TriG extend it; the reader
// accepts the common subset those formats use for plain triple data.
package rdfio

import (
	"path/filepath"
	"strings"

	"github.com/david4096/compliance-ontology/errors"
)

// Format identifies a serialization format.
type Format string

const (
	// Turtle is the canonical format used by default Load and Save.
	Turtle Format = "turtle"
	// NTriples is the line-based plain text format.
	NTriples Format = "ntriples"
	// RDFXML is the W3C XML serialization.
	RDFXML Format = "rdfxml"
	// JSONLD is the JSON-based linked data format.
	JSONLD Format = "jsonld"
	// N3 is Notation3, a Turtle superset.
	N3 Format = "n3"
	// TriG is Turtle extended for named graphs.
	TriG Format = "trig"
)

// Formats lists every supported format.
var Formats = []Format{Turtle, NTriples, RDFXML, JSONLD, N3, TriG}

// Valid reports whether the format is supported.
func (f Format) Valid() bool {
	switch f {
	case Turtle, NTriples, RDFXML, JSONLD, N3, TriG:
		return true
	}
	return false
}

// Extension returns the conventional file extension, without the dot.
func (f Format) Extension() string {
	switch f {
	case Turtle:
		return "ttl"
	case NTriples:
		return "nt"
	case RDFXML:
		return "rdf"
	case JSONLD:
		return "jsonld"
	case N3:
		return "n3"
	case TriG:
		return "trig"
	}
	return ""
}

// ParseFormat resolves a format name, accepting common aliases
// (turtle/ttl, xml/rdf, json-ld, nt, n3, trig).
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "turtle", "ttl":
		return Turtle, nil
	case "ntriples", "nt", "n-triples":
		return NTriples, nil
	case "rdfxml", "rdf", "xml", "rdf/xml":
		return RDFXML, nil
	case "jsonld", "json-ld":
		return JSONLD, nil
	case "n3", "notation3":
		return N3, nil
	case "trig":
		return TriG, nil
	}
	return "", errors.Formatf("unsupported format %q", name)
}

// FormatForExtension resolves the format from a file path's extension.
func FormatForExtension(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.Formatf("path %q has no extension to infer a format from", path)
	}
	return ParseFormat(ext)
}
