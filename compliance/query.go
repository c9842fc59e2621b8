package compliance

import (
	"sort"
	"time"

	"github.com/david4096/compliance-ontology/errors"
	"github.com/david4096/compliance-ontology/graph"
	"github.com/david4096/compliance-ontology/vocab"
)

// FrameworkInfo reads a framework's metadata from the graph.
func (o *Ontology) FrameworkInfo(id string) (FrameworkRecord, error) {
	subject := vocab.Resource(id)
	if !o.store.HasType(subject, vocab.ClassComplianceFramework) {
		return FrameworkRecord{}, errors.Unknownf("framework %q is not in the framework set", id)
	}

	rec := FrameworkRecord{
		ID:               id,
		Label:            o.literalValue(subject, graph.IRI(graph.RDFSLabel)),
		Description:      o.literalValue(subject, graph.IRI(graph.RDFSComment)),
		Version:          o.literalValue(subject, vocab.PropFrameworkVersion),
		DocumentationURL: o.literalValue(subject, vocab.PropDocumentationURL),
	}
	if obj, ok := o.firstObject(subject, vocab.PropPublicationDate); ok {
		published, err := obj.Date()
		if err != nil {
			return FrameworkRecord{}, errors.Wrapf(err, "framework %q publication date", id)
		}
		rec.PublicationDate = published
	}
	return rec, nil
}

// Frameworks returns every framework asserted in the graph, in catalog
// order. On a seeded graph this is the full closed set.
func (o *Ontology) Frameworks() ([]FrameworkRecord, error) {
	records := make([]FrameworkRecord, 0, vocab.FrameworkCount())
	for _, f := range vocab.Frameworks() {
		if !o.store.HasType(vocab.Resource(f.ID), vocab.ClassComplianceFramework) {
			continue
		}
		rec, err := o.FrameworkInfo(f.ID)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// SystemAttestations returns the attestation records hanging off a
// system, in creation order. A system with no attestations yields an
// empty slice.
func (o *Ontology) SystemAttestations(systemID string) ([]AttestationRecord, error) {
	system := vocab.Resource(systemID)
	if !o.store.HasType(system, vocab.ClassSystem) {
		return nil, errors.Unknownf("system %q does not exist", systemID)
	}

	records := []AttestationRecord{}
	for _, att := range o.store.Objects(system, vocab.PropHasAttestation) {
		rec, err := o.attestationRecord(att)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (o *Ontology) attestationRecord(att graph.Term) (AttestationRecord, error) {
	rec := AttestationRecord{Attestation: vocab.LocalName(att)}

	// attestsCompliance also carries baseline edges; the framework is
	// the object belonging to the closed framework set.
	for _, obj := range o.store.Objects(att, vocab.PropAttestsCompliance) {
		if vocab.IsFramework(vocab.LocalName(obj)) {
			rec.Framework = vocab.LocalName(obj)
			break
		}
	}
	if obj, ok := o.firstObject(att, vocab.PropHasComplianceStatus); ok {
		rec.Status = vocab.ComplianceStatus(vocab.LocalName(obj))
	}
	if obj, ok := o.firstObject(att, vocab.PropHasAttestationType); ok {
		rec.Type = vocab.AttestationType(vocab.LocalName(obj))
	}
	if obj, ok := o.firstObject(att, vocab.PropAttestedBy); ok {
		rec.Attester = vocab.LocalName(obj)
	}
	rec.Evidence = o.literalValue(att, vocab.PropAttestationEvidence)

	if obj, ok := o.firstObject(att, vocab.PropAttestationDate); ok {
		date, err := obj.Time()
		if err != nil {
			return AttestationRecord{}, errors.Wrapf(err, "attestation %q date", rec.Attestation)
		}
		rec.Date = date
	}
	if obj, ok := o.firstObject(att, vocab.PropExpirationDate); ok {
		exp, err := obj.Date()
		if err != nil {
			return AttestationRecord{}, errors.Wrapf(err, "attestation %q expiration date", rec.Attestation)
		}
		rec.Expiration = exp
	}
	return rec, nil
}

// SystemsByCompliance returns the systems holding at least one
// attestation for the framework at the given status, each system once,
// ordered by system name.
func (o *Ontology) SystemsByCompliance(framework string, status vocab.ComplianceStatus) ([]SystemComplianceRecord, error) {
	if !status.Valid() {
		return nil, errors.Unknownf("unknown compliance status %q", string(status))
	}
	frameworkTerm := vocab.Resource(framework)

	seen := make(map[string]bool)
	records := []SystemComplianceRecord{}
	for _, att := range o.store.Subjects(vocab.PropHasComplianceStatus, status.Term()) {
		if !o.store.Contains(graph.NewStatement(att, vocab.PropAttestsCompliance, frameworkTerm)) {
			continue
		}
		for _, system := range o.store.Subjects(vocab.PropHasAttestation, att) {
			id := vocab.LocalName(system)
			if seen[id] {
				continue
			}
			seen[id] = true
			records = append(records, SystemComplianceRecord{
				SystemID: id,
				Name:     o.literalValue(system, vocab.PropSystemName),
				Status:   status,
			})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Name != records[j].Name {
			return records[i].Name < records[j].Name
		}
		return records[i].SystemID < records[j].SystemID
	})
	return records, nil
}

// AttestationExpired reports whether an attestation is past its
// expiration date as of the given day. The expiration day itself still
// counts as valid, and an attestation without an expiration date never
// expires. A zero asOf means today.
func (o *Ontology) AttestationExpired(id string, asOf time.Time) (bool, error) {
	subject := vocab.Resource(id)
	if !o.store.HasType(subject, vocab.ClassAttestation) {
		return false, errors.Unknownf("attestation %q does not exist", id)
	}

	obj, ok := o.firstObject(subject, vocab.PropExpirationDate)
	if !ok {
		return false, nil
	}
	expiration, err := obj.Date()
	if err != nil {
		return false, errors.Wrapf(err, "attestation %q expiration date", id)
	}

	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	return day.After(expiration), nil
}
