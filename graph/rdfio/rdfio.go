package rdfio

import (
	"bytes"
	"io"
	"os"

	"github.com/david4096/compliance-ontology/errors"
	"github.com/david4096/compliance-ontology/graph"
	"github.com/david4096/compliance-ontology/logger"
)

// Encode writes the store to w in the given format.
func Encode(w io.Writer, st *graph.Store, f Format) error {
	switch f {
	case Turtle, N3:
		return encodeTurtle(w, st, false)
	case TriG:
		return encodeTurtle(w, st, true)
	case NTriples:
		return encodeNTriples(w, st)
	case RDFXML:
		return encodeRDFXML(w, st)
	case JSONLD:
		return encodeJSONLD(w, st)
	}
	return errors.Formatf("unsupported format %q", f)
}

// Decode reads a statement set from r in the given format. Malformed input
// yields a ParseError.
func Decode(r io.Reader, f Format) (*graph.Store, error) {
	switch f {
	case Turtle, NTriples, N3, TriG:
		return decodeTurtle(r)
	case RDFXML:
		return decodeRDFXML(r)
	case JSONLD:
		return decodeJSONLD(r)
	}
	return nil, errors.Formatf("unsupported format %q", f)
}

// Load reads a store from a Turtle file, the canonical on-disk format.
func Load(path string) (*graph.Store, error) {
	return LoadFormat(path, Turtle)
}

// LoadFormat reads a store from a file in an explicit format.
func LoadFormat(path string, f Format) (*graph.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(err, "read "+path)
	}
	st, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	logger.Debugw("ontology loaded",
		logger.FieldPath, path,
		logger.FieldFormat, string(f),
		logger.FieldStatements, st.Len())
	return st, nil
}

// Save writes the store to a Turtle file.
func Save(st *graph.Store, path string) error {
	return SaveFormat(st, path, Turtle)
}

// SaveFormat writes the store to a file in an explicit format.
func SaveFormat(st *graph.Store, path string, f Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, st, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.IO(err, "write "+path)
	}
	logger.Debugw("ontology saved",
		logger.FieldPath, path,
		logger.FieldFormat, string(f),
		logger.FieldStatements, st.Len())
	return nil
}

// Convert transcodes between serialization formats without interpreting
// the statements. Malformed source content is a FormatError here, since
// the caller asked for a conversion rather than a load.
func Convert(r io.Reader, w io.Writer, from, to Format) error {
	st, err := Decode(r, from)
	if err != nil {
		if errors.Is(err, errors.FormatError) {
			return err
		}
		return errors.Mark(err, errors.FormatError)
	}
	return Encode(w, st, to)
}
