// Package compliance provides the mutation and query API over the
// attestation knowledge graph: typed entity creation with referential
// and temporal validation, framework and attestation lookups, and
// expiration checks.
package compliance

import (
	"time"

	"github.com/david4096/compliance-ontology/errors"
	"github.com/david4096/compliance-ontology/graph"
	"github.com/david4096/compliance-ontology/logger"
	"github.com/david4096/compliance-ontology/vocab"
)

// Ontology wraps a statement store with the attestation schema. All
// mutations validate their full statement set before touching the
// store, so a failed call leaves query results unchanged.
type Ontology struct {
	store *graph.Store
}

// New returns an Ontology over an empty store. Frameworks are not
// seeded; attestation creation will reject every framework reference
// until Seed runs or a seeded graph is loaded.
func New() *Ontology {
	return &Ontology{store: graph.New()}
}

// NewSeeded returns an Ontology with the framework catalog, baselines,
// status and type individuals already asserted.
func NewSeeded() *Ontology {
	o := New()
	vocab.Seed(o.store)
	return o
}

// FromStore wraps an existing store, typically one decoded from a
// serialized graph.
func FromStore(st *graph.Store) *Ontology {
	return &Ontology{store: st}
}

// Store exposes the underlying statement store for serialization and
// raw pattern queries.
func (o *Ontology) Store() *graph.Store {
	return o.store
}

// CreateSystem asserts a System individual with its name and optional
// description.
func (o *Ontology) CreateSystem(id, name, description string) error {
	subject := vocab.Resource(id)
	if _, ok := o.store.TypeOf(subject); ok {
		return errors.Duplicatef("identifier %q is already in use", id)
	}

	delta := []graph.Statement{
		graph.NewStatement(subject, graph.IRI(graph.RDFType), vocab.ClassSystem),
		graph.NewStatement(subject, vocab.PropSystemName, graph.StringLiteral(name)),
	}
	if description != "" {
		delta = append(delta, graph.NewStatement(subject, vocab.PropSystemDescription, graph.StringLiteral(description)))
	}
	o.store.ApplyDelta(delta)

	logger.Debugw("system created",
		logger.FieldComponent, "compliance",
		logger.FieldSystemID, id,
		logger.FieldStatements, len(delta))
	return nil
}

// CreateAttester asserts an Attester individual with its name and
// optional credentials.
func (o *Ontology) CreateAttester(id, name, credentials string) error {
	subject := vocab.Resource(id)
	if _, ok := o.store.TypeOf(subject); ok {
		return errors.Duplicatef("identifier %q is already in use", id)
	}

	delta := []graph.Statement{
		graph.NewStatement(subject, graph.IRI(graph.RDFType), vocab.ClassAttester),
		graph.NewStatement(subject, vocab.PropAttesterName, graph.StringLiteral(name)),
	}
	if credentials != "" {
		delta = append(delta, graph.NewStatement(subject, vocab.PropAttesterCredentials, graph.StringLiteral(credentials)))
	}
	o.store.ApplyDelta(delta)

	logger.Debugw("attester created",
		logger.FieldComponent, "compliance",
		logger.FieldAttesterID, id,
		logger.FieldStatements, len(delta))
	return nil
}

// AttestationInput carries the fields of a new attestation. ID,
// SystemID, Framework, Status, Type and AttesterID are required.
// A zero AttestationDate means the current time; a zero ExpirationDate
// means the attestation never expires.
type AttestationInput struct {
	ID               string
	SystemID         string
	Framework        string
	Status           vocab.ComplianceStatus
	Type             vocab.AttestationType
	AttesterID       string
	AttestationDate  time.Time
	ExpirationDate   time.Time
	Evidence         string
	FrameworkVersion string
	Baseline         string
}

// CreateAttestation validates the input against the current graph and,
// if everything checks out, inserts the attestation node with its
// required edges and data properties in one atomic delta. It returns
// the new attestation's resource term.
func (o *Ontology) CreateAttestation(in AttestationInput) (graph.Term, error) {
	subject := vocab.Resource(in.ID)
	if _, ok := o.store.TypeOf(subject); ok {
		return graph.Term{}, errors.Duplicatef("identifier %q is already in use", in.ID)
	}
	if !in.Status.Valid() {
		return graph.Term{}, errors.Unknownf("unknown compliance status %q", string(in.Status))
	}
	if !in.Type.Valid() {
		return graph.Term{}, errors.Unknownf("unknown attestation type %q", string(in.Type))
	}

	system := vocab.Resource(in.SystemID)
	if !o.store.HasType(system, vocab.ClassSystem) {
		return graph.Term{}, errors.Unknownf("system %q does not exist", in.SystemID)
	}
	attester := vocab.Resource(in.AttesterID)
	if !o.store.HasType(attester, vocab.ClassAttester) {
		return graph.Term{}, errors.Unknownf("attester %q does not exist", in.AttesterID)
	}
	framework := vocab.Resource(in.Framework)
	if !o.store.HasType(framework, vocab.ClassComplianceFramework) {
		return graph.Term{}, errors.Unknownf("framework %q is not in the framework set", in.Framework)
	}

	var baseline graph.Term
	if in.Baseline != "" {
		if _, ok := vocab.BaselineOf(in.Framework, in.Baseline); !ok {
			return graph.Term{}, errors.Unknownf("framework %q has no baseline %q", in.Framework, in.Baseline)
		}
		baseline = vocab.Resource(vocab.BaselineID(in.Framework, in.Baseline))
		if !o.store.HasType(baseline, vocab.ClassBaseline) {
			return graph.Term{}, errors.Unknownf("baseline %q is not in the graph", in.Baseline)
		}
	}

	attestedAt := in.AttestationDate
	if attestedAt.IsZero() {
		attestedAt = time.Now().UTC()
	}
	if !in.ExpirationDate.IsZero() {
		// The attestation timestamp is compared at day granularity,
		// matching the date-typed expiration.
		day := time.Date(attestedAt.Year(), attestedAt.Month(), attestedAt.Day(), 0, 0, 0, 0, time.UTC)
		if in.ExpirationDate.Before(day) {
			return graph.Term{}, errors.Temporalf(
				"expiration date %s precedes attestation date %s",
				in.ExpirationDate.Format(graph.DateLayout), attestedAt.Format(graph.DateLayout))
		}
	}

	delta := []graph.Statement{
		graph.NewStatement(subject, graph.IRI(graph.RDFType), vocab.ClassAttestation),
		graph.NewStatement(system, vocab.PropHasAttestation, subject),
		graph.NewStatement(subject, vocab.PropAttestsCompliance, framework),
		graph.NewStatement(subject, vocab.PropHasComplianceStatus, in.Status.Term()),
		graph.NewStatement(subject, vocab.PropHasAttestationType, in.Type.Term()),
		graph.NewStatement(subject, vocab.PropAttestedBy, attester),
		graph.NewStatement(subject, vocab.PropAttestationDate, graph.DateTimeLiteral(attestedAt)),
	}
	if !in.ExpirationDate.IsZero() {
		delta = append(delta, graph.NewStatement(subject, vocab.PropExpirationDate, graph.DateLiteral(in.ExpirationDate)))
	}
	if in.Evidence != "" {
		delta = append(delta, graph.NewStatement(subject, vocab.PropAttestationEvidence, graph.StringLiteral(in.Evidence)))
	}
	if in.FrameworkVersion != "" {
		delta = append(delta, graph.NewStatement(subject, vocab.PropAttestedFrameworkVersion, graph.StringLiteral(in.FrameworkVersion)))
	}
	if in.Baseline != "" {
		delta = append(delta, graph.NewStatement(subject, vocab.PropAttestsCompliance, baseline))
	}
	o.store.ApplyDelta(delta)

	logger.Debugw("attestation created",
		logger.FieldComponent, "compliance",
		logger.FieldAttestationID, in.ID,
		logger.FieldSystemID, in.SystemID,
		logger.FieldFramework, in.Framework,
		logger.FieldStatus, string(in.Status),
		logger.FieldStatements, len(delta))
	return subject, nil
}
