package sqlstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/david4096/compliance-ontology/compliance"
	"github.com/david4096/compliance-ontology/vocab"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(":memory:", zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := New(db, zap.NewNop().Sugar())
	require.NoError(t, s.Migrate())
	return s
}

func buildOntology(t *testing.T) *compliance.Ontology {
	t.Helper()
	o := compliance.NewSeeded()
	require.NoError(t, o.CreateSystem("MyApp", "My Application", ""))
	require.NoError(t, o.CreateSystem("OtherApp", "Other Application", ""))
	require.NoError(t, o.CreateAttester("AuditFirm", "Audit Firm LLC", "CPA"))

	_, err := o.CreateAttestation(compliance.AttestationInput{
		ID:              "att_soc2",
		SystemID:        "MyApp",
		Framework:       "SOC2",
		Status:          vocab.StatusCompliant,
		Type:            vocab.TypeAuditorVerified,
		AttesterID:      "AuditFirm",
		AttestationDate: time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC),
		ExpirationDate:  time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		Evidence:        "SOC 2 Type II report",
	})
	require.NoError(t, err)

	_, err = o.CreateAttestation(compliance.AttestationInput{
		ID:              "att_gdpr",
		SystemID:        "MyApp",
		Framework:       "GDPR",
		Status:          vocab.StatusInProgress,
		Type:            vocab.TypeSelfAttested,
		AttesterID:      "AuditFirm",
		AttestationDate: time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = o.CreateAttestation(compliance.AttestationInput{
		ID:              "att_other",
		SystemID:        "OtherApp",
		Framework:       "HIPAA",
		Status:          vocab.StatusCompliant,
		Type:            vocab.TypeCertifiedCompliant,
		AttesterID:      "AuditFirm",
		AttestationDate: time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return o
}

func TestSyncProjectsAllAttestations(t *testing.T) {
	s := newTestStore(t)
	o := buildOntology(t)

	written, err := s.Sync(o)
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSyncIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	o := buildOntology(t)

	_, err := s.Sync(o)
	require.NoError(t, err)
	_, err = s.Sync(o)
	require.NoError(t, err)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestBySystem(t *testing.T) {
	s := newTestStore(t)
	o := buildOntology(t)
	_, err := s.Sync(o)
	require.NoError(t, err)

	rows, err := s.BySystem("MyApp")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by attestation date.
	soc2, gdpr := rows[0], rows[1]
	assert.Equal(t, "att_soc2", soc2.ID)
	assert.Equal(t, "SOC2", soc2.Framework)
	assert.Equal(t, vocab.StatusCompliant, soc2.Status)
	assert.Equal(t, vocab.TypeAuditorVerified, soc2.Type)
	assert.Equal(t, "AuditFirm", soc2.Attester)
	assert.Equal(t, "SOC 2 Type II report", soc2.Evidence)
	assert.True(t, soc2.AttestedAt.Equal(time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)))
	require.NotNil(t, soc2.ExpiresAt)
	assert.True(t, soc2.ExpiresAt.Equal(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, "att_gdpr", gdpr.ID)
	assert.Nil(t, gdpr.ExpiresAt)
	assert.Empty(t, gdpr.Evidence)
}

func TestBySystemUnknownIsEmpty(t *testing.T) {
	s := newTestStore(t)
	o := buildOntology(t)
	_, err := s.Sync(o)
	require.NoError(t, err)

	rows, err := s.BySystem("Ghost")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSyncPicksUpNewAttestations(t *testing.T) {
	s := newTestStore(t)
	o := buildOntology(t)
	_, err := s.Sync(o)
	require.NoError(t, err)

	_, err = o.CreateAttestation(compliance.AttestationInput{
		ID:              "att_late",
		SystemID:        "OtherApp",
		Framework:       "PCIDSS",
		Status:          vocab.StatusPartiallyCompliant,
		Type:            vocab.TypeThirdPartyAttested,
		AttesterID:      "AuditFirm",
		AttestationDate: time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	written, err := s.Sync(o)
	require.NoError(t, err)
	assert.Equal(t, 4, written)

	rows, err := s.BySystem("OtherApp")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
