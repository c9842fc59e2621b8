package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNS = "http://example.org/compliance#"

func stmt(s, p, o string) Statement {
	return NewStatement(IRI(testNS+s), IRI(testNS+p), IRI(testNS+o))
}

func TestAddIsIdempotent(t *testing.T) {
	st := New()
	s := stmt("MyApp", "hasAttestation", "attestation_001")

	st.Add(s)
	st.Add(s)

	assert.Equal(t, 1, st.Len())
	assert.True(t, st.Contains(s))
}

func TestFindWildcards(t *testing.T) {
	st := New()
	st.Add(stmt("MyApp", "hasAttestation", "a1"))
	st.Add(stmt("MyApp", "hasAttestation", "a2"))
	st.Add(stmt("OtherApp", "hasAttestation", "a3"))
	st.Add(NewStatement(IRI(testNS+"MyApp"), IRI(RDFType), IRI(testNS+"System")))

	subj := IRI(testNS + "MyApp")
	pred := IRI(testNS + "hasAttestation")
	obj := IRI(testNS + "a2")

	count := func(s, p, o *Term) int {
		n := 0
		for range st.Find(s, p, o) {
			n++
		}
		return n
	}

	assert.Equal(t, 3, count(&subj, nil, nil))
	assert.Equal(t, 3, count(nil, &pred, nil))
	assert.Equal(t, 2, count(&subj, &pred, nil))
	assert.Equal(t, 1, count(&subj, &pred, &obj))
	assert.Equal(t, 4, count(nil, nil, nil))

	missing := IRI(testNS + "missing")
	assert.Equal(t, 0, count(nil, &pred, &missing))
}

func TestFindIsRestartable(t *testing.T) {
	st := New()
	st.Add(stmt("A", "p", "x"))
	st.Add(stmt("B", "p", "y"))

	pred := IRI(testNS + "p")
	seq := st.Find(nil, &pred, nil)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, first, second)
	assert.Equal(t, 2, first)
}

func TestFindEarlyStop(t *testing.T) {
	st := New()
	for _, s := range []string{"A", "B", "C"} {
		st.Add(stmt(s, "p", "x"))
	}

	seen := 0
	for range st.Statements() {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestRemoveAndReAdd(t *testing.T) {
	st := New()
	s := stmt("MyApp", "hasAttestation", "a1")
	st.Add(s)

	require.True(t, st.Remove(s))
	assert.False(t, st.Contains(s))
	assert.Equal(t, 0, st.Len())
	assert.False(t, st.Remove(s))

	// Removed statements stay gone from indexed lookups
	subj := IRI(testNS + "MyApp")
	_, found := st.FindOne(&subj, nil, nil)
	assert.False(t, found)

	st.Add(s)
	assert.True(t, st.Contains(s))
	_, found = st.FindOne(&subj, nil, nil)
	assert.True(t, found)
	assert.Equal(t, 1, st.Len())
}

func TestInsertionOrderPreserved(t *testing.T) {
	st := New()
	subjects := []string{"S3", "S1", "S2"}
	for _, s := range subjects {
		st.Add(stmt(s, "p", "x"))
	}

	var got []string
	pred := IRI(testNS + "p")
	for s := range st.Find(nil, &pred, nil) {
		got = append(got, s.Subject.Value)
	}
	assert.Equal(t, []string{testNS + "S3", testNS + "S1", testNS + "S2"}, got)
}

func TestObjectsAndSubjects(t *testing.T) {
	st := New()
	st.Add(stmt("MyApp", "hasAttestation", "a1"))
	st.Add(stmt("MyApp", "hasAttestation", "a2"))
	st.Add(stmt("OtherApp", "hasAttestation", "a1"))

	objs := st.Objects(IRI(testNS+"MyApp"), IRI(testNS+"hasAttestation"))
	require.Len(t, objs, 2)
	assert.Equal(t, testNS+"a1", objs[0].Value)

	subjs := st.Subjects(IRI(testNS+"hasAttestation"), IRI(testNS+"a1"))
	require.Len(t, subjs, 2)
}

func TestHasTypeAndTypeOf(t *testing.T) {
	st := New()
	st.Add(NewStatement(IRI(testNS+"MyApp"), IRI(RDFType), IRI(testNS+"System")))

	assert.True(t, st.HasType(IRI(testNS+"MyApp"), IRI(testNS+"System")))
	assert.False(t, st.HasType(IRI(testNS+"MyApp"), IRI(testNS+"Attester")))

	typ, ok := st.TypeOf(IRI(testNS + "MyApp"))
	require.True(t, ok)
	assert.Equal(t, testNS+"System", typ.Value)

	_, ok = st.TypeOf(IRI(testNS + "Ghost"))
	assert.False(t, ok)
}

func TestApplyDelta(t *testing.T) {
	st := New()
	delta := []Statement{
		stmt("MyApp", "hasAttestation", "a1"),
		NewStatement(IRI(testNS+"a1"), IRI(RDFType), IRI(testNS+"Attestation")),
	}
	st.ApplyDelta(delta)
	assert.Equal(t, 2, st.Len())
}

func TestEqualIgnoresOrder(t *testing.T) {
	a := New()
	b := New()
	a.Add(stmt("X", "p", "1"))
	a.Add(stmt("Y", "p", "2"))
	b.Add(stmt("Y", "p", "2"))
	b.Add(stmt("X", "p", "1"))

	assert.True(t, a.Equal(b))

	b.Add(stmt("Z", "p", "3"))
	assert.False(t, a.Equal(b))
}

func TestClone(t *testing.T) {
	a := New()
	a.Add(stmt("X", "p", "1"))

	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Add(stmt("Y", "p", "2"))
	assert.False(t, a.Equal(b))
	assert.Equal(t, 1, a.Len())
}

func TestLiteralTerms(t *testing.T) {
	lit := StringLiteral("My Application")
	assert.True(t, lit.IsLiteral())
	assert.Equal(t, XSDString, lit.Datatype)

	date := DateLiteral(time.Date(2026, 12, 31, 10, 30, 0, 0, time.UTC))
	assert.Equal(t, "2026-12-31", date.Value)

	parsed, err := date.Date()
	require.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())

	dt := DateTimeLiteral(time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC))
	assert.Equal(t, "2025-06-01T09:15:00", dt.Value)
	day, err := dt.Date()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), day)

	_, err = IRI("x").Date()
	assert.Error(t, err)
	_, err = StringLiteral("not a date").Date()
	assert.Error(t, err)
}

func TestTermString(t *testing.T) {
	assert.Equal(t, "<http://example.org/x>", IRI("http://example.org/x").String())
	assert.Equal(t, "_:b0", Blank("b0").String())
	assert.Equal(t, `"hi"`, StringLiteral("hi").String())
	assert.Equal(t, `"5"^^<`+XSDInteger+`>`, IntegerLiteral(5).String())
	assert.Equal(t, `"hola"@es`, LangLiteral("hola", "es").String())
}
