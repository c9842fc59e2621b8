package rdfio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david4096/compliance-ontology/errors"
	"github.com/david4096/compliance-ontology/graph"
	"github.com/david4096/compliance-ontology/vocab"
)

// testStore builds a store exercising every term shape the encoders
// handle: the seeded catalog, runtime entities, blank nodes, language
// tags and literals needing escapes.
func testStore(t *testing.T) *graph.Store {
	t.Helper()
	st := graph.New()
	vocab.Seed(st)

	myApp := vocab.Resource("MyApp")
	att := vocab.Resource("attestation_001")
	auditor := vocab.Resource("AuditFirm")
	rdfType := graph.IRI(graph.RDFType)

	st.Add(graph.NewStatement(myApp, rdfType, vocab.ClassSystem))
	st.Add(graph.NewStatement(myApp, vocab.PropSystemName, graph.StringLiteral("My Application")))
	st.Add(graph.NewStatement(myApp, vocab.PropSystemDescription,
		graph.StringLiteral("Line one\nline \"two\" with\ttabs and \\slashes")))
	st.Add(graph.NewStatement(myApp, vocab.PropHasAttestation, att))

	st.Add(graph.NewStatement(auditor, rdfType, vocab.ClassAttester))
	st.Add(graph.NewStatement(auditor, vocab.PropAttesterName, graph.LangLiteral("Audit Firm", "en")))

	st.Add(graph.NewStatement(att, rdfType, vocab.ClassAttestation))
	st.Add(graph.NewStatement(att, vocab.PropAttestsCompliance, vocab.Resource("SOC2")))
	st.Add(graph.NewStatement(att, vocab.PropHasComplianceStatus, vocab.StatusCompliant.Term()))
	st.Add(graph.NewStatement(att, vocab.PropAttestationDate,
		graph.Literal("2025-06-01T09:15:00", graph.XSDDateTime)))
	st.Add(graph.NewStatement(att, vocab.PropExpirationDate,
		graph.Literal("2026-12-31", graph.XSDDate)))

	// Terms outside the compliance namespace and blank nodes
	ext := graph.IRI("http://other.example.com/registry?id=1&scope=all")
	st.Add(graph.NewStatement(myApp, graph.IRI("http://purl.org/dc/terms/source"), ext))
	st.Add(graph.NewStatement(graph.Blank("obs1"), rdfType, vocab.ClassAttestation))
	st.Add(graph.NewStatement(myApp, vocab.PropHasAttestation, graph.Blank("obs1")))

	return st
}

func TestRoundTripAllFormats(t *testing.T) {
	st := testStore(t)

	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, st, f))

			got, err := Decode(bytes.NewReader(buf.Bytes()), f)
			require.NoError(t, err, "decode %s:\n%s", f, buf.String())

			assert.Equal(t, st.Len(), got.Len(), "statement count after %s round-trip", f)
			if !st.Equal(got) {
				for s := range st.Statements() {
					if !got.Contains(s) {
						t.Errorf("%s round-trip lost %s", f, s)
					}
				}
				for s := range got.Statements() {
					if !st.Contains(s) {
						t.Errorf("%s round-trip invented %s", f, s)
					}
				}
			}
		})
	}
}

func TestCrossFormatConversion(t *testing.T) {
	st := testStore(t)

	// turtle -> rdfxml -> jsonld -> ntriples -> store
	var ttl bytes.Buffer
	require.NoError(t, Encode(&ttl, st, Turtle))

	var xml bytes.Buffer
	require.NoError(t, Convert(&ttl, &xml, Turtle, RDFXML))
	var jsonld bytes.Buffer
	require.NoError(t, Convert(&xml, &jsonld, RDFXML, JSONLD))
	var nt bytes.Buffer
	require.NoError(t, Convert(&jsonld, &nt, JSONLD, NTriples))

	got, err := Decode(&nt, NTriples)
	require.NoError(t, err)
	assert.True(t, st.Equal(got), "statement set changed across conversions")
}

func TestConvertMalformedSourceIsFormatError(t *testing.T) {
	var out bytes.Buffer
	err := Convert(strings.NewReader("@prefix broken"), &out, Turtle, NTriples)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.FormatError))
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, graph.New(), Format("rdfa"))
	assert.True(t, errors.Is(err, errors.FormatError))

	_, err = Decode(strings.NewReader(""), Format("rdfa"))
	assert.True(t, errors.Is(err, errors.FormatError))
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"turtle": Turtle, "ttl": Turtle,
		"xml": RDFXML, "rdf": RDFXML, "rdfxml": RDFXML,
		"json-ld": JSONLD, "jsonld": JSONLD,
		"nt": NTriples, "ntriples": NTriples,
		"n3": N3, "trig": TriG,
		"TTL": Turtle,
	}
	for name, want := range cases {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("owx")
	assert.True(t, errors.Is(err, errors.FormatError))
}

func TestFormatForExtension(t *testing.T) {
	f, err := FormatForExtension("docs/compliance-ontology.jsonld")
	require.NoError(t, err)
	assert.Equal(t, JSONLD, f)

	_, err = FormatForExtension("no-extension")
	assert.True(t, errors.Is(err, errors.FormatError))
}

func TestSaveAndLoad(t *testing.T) {
	st := testStore(t)
	dir := t.TempDir()

	for _, f := range Formats {
		path := filepath.Join(dir, "graph."+f.Extension())
		require.NoError(t, SaveFormat(st, path, f))

		got, err := LoadFormat(path, f)
		require.NoError(t, err)
		assert.True(t, st.Equal(got), "load after save differs for %s", f)
	}
}

func TestDefaultLoadSaveIsTurtle(t *testing.T) {
	st := testStore(t)
	path := filepath.Join(t.TempDir(), "compliance-ontology.ttl")

	require.NoError(t, Save(st, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@prefix "+vocab.Prefix+":")

	got, err := Load(path)
	require.NoError(t, err)
	assert.True(t, st.Equal(got))
}

func TestLoadMissingFileIsIOError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.ttl"))
	assert.True(t, errors.Is(err, errors.IOError))
}

func TestLoadMalformedIsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttl")
	require.NoError(t, os.WriteFile(path, []byte("compliance:System a ."), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ParseError))
}

func TestSaveToUnwritablePathIsIOError(t *testing.T) {
	err := Save(graph.New(), filepath.Join(t.TempDir(), "no", "such", "dir", "out.ttl"))
	assert.True(t, errors.Is(err, errors.IOError))
}
