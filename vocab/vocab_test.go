package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david4096/compliance-ontology/errors"
	"github.com/david4096/compliance-ontology/graph"
)

func TestCatalogHasThirtyFrameworks(t *testing.T) {
	assert.Equal(t, 30, FrameworkCount())
	assert.Len(t, Frameworks(), 30)
}

func TestCatalogOrderIsStable(t *testing.T) {
	fws := Frameworks()
	require.NotEmpty(t, fws)
	assert.Equal(t, "ISO27001", fws[0].ID)
	assert.Equal(t, "EU_NIS2", fws[len(fws)-1].ID)

	again := Frameworks()
	for i := range fws {
		assert.Equal(t, fws[i].ID, again[i].ID)
	}
}

func TestFrameworkByID(t *testing.T) {
	fw, ok := FrameworkByID("SOC2")
	require.True(t, ok)
	assert.Equal(t, "SOC 2", fw.Label)
	assert.NotEmpty(t, fw.Version)
	assert.NotEmpty(t, fw.DocumentationURL)
	assert.NotEmpty(t, fw.PublicationDate)

	_, err := fw.PublicationTime()
	assert.NoError(t, err)

	_, ok = FrameworkByID("ISO99999")
	assert.False(t, ok)
	assert.False(t, IsFramework("ISO99999"))
	assert.True(t, IsFramework("GDPR"))
}

func TestEveryFrameworkIsComplete(t *testing.T) {
	for _, fw := range Frameworks() {
		assert.NotEmpty(t, fw.Label, "framework %s missing label", fw.ID)
		assert.NotEmpty(t, fw.Version, "framework %s missing version", fw.ID)
		assert.NotEmpty(t, fw.DocumentationURL, "framework %s missing url", fw.ID)
		_, err := fw.PublicationTime()
		assert.NoError(t, err, "framework %s has bad publication date", fw.ID)
	}
}

func TestBaselines(t *testing.T) {
	b, ok := BaselineOf("FedRAMP", "Moderate")
	require.True(t, ok)
	assert.Greater(t, b.Controls, 0)
	assert.Equal(t, "FedRAMPModerate", BaselineID("FedRAMP", b.Name))

	_, ok = BaselineOf("FedRAMP", "Extreme")
	assert.False(t, ok)
	_, ok = BaselineOf("SOC2", "Moderate")
	assert.False(t, ok)

	_, ok = BaselineOf("CMMC", "Level2")
	assert.True(t, ok)
}

func TestComplianceStatus(t *testing.T) {
	for _, s := range ComplianceStatuses {
		assert.True(t, s.Valid())
		assert.Equal(t, Namespace+string(s), s.Term().Value)
	}
	assert.False(t, ComplianceStatus("Audited").Valid())

	s, err := ParseComplianceStatus("Compliant")
	require.NoError(t, err)
	assert.Equal(t, StatusCompliant, s)

	_, err = ParseComplianceStatus("Sorta")
	assert.True(t, errors.Is(err, errors.UnknownReference))
}

func TestAttestationType(t *testing.T) {
	for _, a := range AttestationTypes {
		assert.True(t, a.Valid())
	}
	assert.False(t, AttestationType("Guessed").Valid())

	a, err := ParseAttestationType("AuditorVerified")
	require.NoError(t, err)
	assert.Equal(t, TypeAuditorVerified, a)

	_, err = ParseAttestationType("Vibes")
	assert.Error(t, err)
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "SOC2", LocalName(Resource("SOC2")))
	assert.True(t, InNamespace(Resource("SOC2")))

	foreign := graph.IRI("http://other.org/x")
	assert.Equal(t, "http://other.org/x", LocalName(foreign))
	assert.False(t, InNamespace(foreign))
	assert.False(t, InNamespace(graph.StringLiteral("SOC2")))
}

func TestSeed(t *testing.T) {
	st := graph.New()
	Seed(st)

	require.Greater(t, st.Len(), 0)

	// Every framework individual is typed as ComplianceFramework
	frameworks := st.Subjects(graph.IRI(graph.RDFType), ClassComplianceFramework)
	assert.Len(t, frameworks, 30)

	// Catalog order is preserved by the store's insertion order
	assert.Equal(t, Resource("ISO27001"), frameworks[0])

	// FedRAMP baselines are linked
	baselines := st.Objects(Resource("FedRAMP"), PropHasBaseline)
	assert.Len(t, baselines, 3)
	assert.True(t, st.HasType(Resource("FedRAMPHigh"), ClassBaseline))

	// Status and type individuals are present
	assert.True(t, st.HasType(StatusCompliant.Term(), ClassComplianceStatus))
	assert.True(t, st.HasType(TypeAuditorVerified.Term(), ClassAttestationType))

	// Seeding twice is a no-op
	before := st.Len()
	Seed(st)
	assert.Equal(t, before, st.Len())
}
