package compliance

import (
	"time"

	"github.com/david4096/compliance-ontology/graph"
	"github.com/david4096/compliance-ontology/vocab"
)

// FrameworkRecord is the queryable view of a seeded framework
// individual.
type FrameworkRecord struct {
	ID               string
	Label            string
	Description      string
	Version          string
	DocumentationURL string
	PublicationDate  time.Time
}

// AttestationRecord is the queryable view of one attestation. A zero
// Expiration means the attestation never expires.
type AttestationRecord struct {
	Attestation string
	Framework   string
	Status      vocab.ComplianceStatus
	Type        vocab.AttestationType
	Date        time.Time
	Expiration  time.Time
	Evidence    string
	Attester    string
}

// SystemComplianceRecord names a system holding at least one
// attestation matching a framework and status filter.
type SystemComplianceRecord struct {
	SystemID string
	Name     string
	Status   vocab.ComplianceStatus
}

// firstObject returns the first object of (subject, predicate), if any.
func (o *Ontology) firstObject(subject, predicate graph.Term) (graph.Term, bool) {
	stmt, ok := o.store.FindOne(&subject, &predicate, nil)
	if !ok {
		return graph.Term{}, false
	}
	return stmt.Object, true
}

// literalValue returns the lexical form of the first literal object of
// (subject, predicate), or "" when absent.
func (o *Ontology) literalValue(subject, predicate graph.Term) string {
	obj, ok := o.firstObject(subject, predicate)
	if !ok || !obj.IsLiteral() {
		return ""
	}
	return obj.Value
}
