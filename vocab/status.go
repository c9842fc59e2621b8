package vocab

import (
	"github.com/david4096/compliance-ontology/errors"
	"github.com/david4096/compliance-ontology/graph"
)

// ComplianceStatus is the closed enumeration of attestation statuses.
type ComplianceStatus string

const (
	StatusCompliant          ComplianceStatus = "Compliant"
	StatusInProgress         ComplianceStatus = "InProgress"
	StatusNonCompliant       ComplianceStatus = "NonCompliant"
	StatusPartiallyCompliant ComplianceStatus = "PartiallyCompliant"
)

// ComplianceStatuses lists every status in declaration order.
var ComplianceStatuses = []ComplianceStatus{
	StatusCompliant,
	StatusInProgress,
	StatusNonCompliant,
	StatusPartiallyCompliant,
}

// Valid reports whether the status is one of the enumerated values.
func (s ComplianceStatus) Valid() bool {
	switch s {
	case StatusCompliant, StatusInProgress, StatusNonCompliant, StatusPartiallyCompliant:
		return true
	}
	return false
}

// Term returns the status individual's IRI term.
func (s ComplianceStatus) Term() graph.Term {
	return Resource(string(s))
}

// ParseComplianceStatus converts a local name into a ComplianceStatus.
func ParseComplianceStatus(name string) (ComplianceStatus, error) {
	s := ComplianceStatus(name)
	if !s.Valid() {
		return "", errors.Unknownf("unknown compliance status %q", name)
	}
	return s, nil
}

// AttestationType is the closed enumeration of attestation provenance kinds.
type AttestationType string

const (
	TypeSelfAttested       AttestationType = "SelfAttested"
	TypeThirdPartyAttested AttestationType = "ThirdPartyAttested"
	TypeCertifiedCompliant AttestationType = "CertifiedCompliant"
	TypeAuditorVerified    AttestationType = "AuditorVerified"
)

// AttestationTypes lists every type in declaration order.
var AttestationTypes = []AttestationType{
	TypeSelfAttested,
	TypeThirdPartyAttested,
	TypeCertifiedCompliant,
	TypeAuditorVerified,
}

// Valid reports whether the type is one of the enumerated values.
func (a AttestationType) Valid() bool {
	switch a {
	case TypeSelfAttested, TypeThirdPartyAttested, TypeCertifiedCompliant, TypeAuditorVerified:
		return true
	}
	return false
}

// Term returns the type individual's IRI term.
func (a AttestationType) Term() graph.Term {
	return Resource(string(a))
}

// ParseAttestationType converts a local name into an AttestationType.
func ParseAttestationType(name string) (AttestationType, error) {
	a := AttestationType(name)
	if !a.Valid() {
		return "", errors.Unknownf("unknown attestation type %q", name)
	}
	return a, nil
}
