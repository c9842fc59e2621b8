// Package vocab is the schema registry for the compliance ontology: the
// namespace, the fixed class and property vocabulary, the closed
// ComplianceStatus and AttestationType enumerations, and the seeded
// framework catalog. Everything here is read-only reference data; runtime
// entity creation lives in the compliance package.
package vocab

import (
	"strings"

	"github.com/david4096/compliance-ontology/graph"
)

// Namespace is the ontology namespace; all identifiers resolve inside it.
const Namespace = "http://example.org/compliance#"

// Prefix is the conventional Turtle prefix for Namespace.
const Prefix = "compliance"

// Entity classes.
var (
	ClassSystem              = graph.IRI(Namespace + "System")
	ClassAttester            = graph.IRI(Namespace + "Attester")
	ClassAttestation         = graph.IRI(Namespace + "Attestation")
	ClassComplianceFramework = graph.IRI(Namespace + "ComplianceFramework")
	ClassBaseline            = graph.IRI(Namespace + "Baseline")
	ClassComplianceStatus    = graph.IRI(Namespace + "ComplianceStatus")
	ClassAttestationType     = graph.IRI(Namespace + "AttestationType")
)

// Object properties (the relationship schema).
var (
	PropHasAttestation      = graph.IRI(Namespace + "hasAttestation")
	PropAttestsCompliance   = graph.IRI(Namespace + "attestsCompliance")
	PropHasComplianceStatus = graph.IRI(Namespace + "hasComplianceStatus")
	PropHasAttestationType  = graph.IRI(Namespace + "hasAttestationType")
	PropAttestedBy          = graph.IRI(Namespace + "attestedBy")
	PropHasBaseline         = graph.IRI(Namespace + "hasBaseline")
)

// Data properties.
var (
	PropSystemName               = graph.IRI(Namespace + "systemName")
	PropSystemDescription        = graph.IRI(Namespace + "systemDescription")
	PropAttesterName             = graph.IRI(Namespace + "attesterName")
	PropAttesterCredentials      = graph.IRI(Namespace + "attesterCredentials")
	PropAttestationDate          = graph.IRI(Namespace + "attestationDate")
	PropExpirationDate           = graph.IRI(Namespace + "expirationDate")
	PropAttestationEvidence      = graph.IRI(Namespace + "attestationEvidence")
	PropAttestedFrameworkVersion = graph.IRI(Namespace + "attestedFrameworkVersion")
	PropFrameworkVersion         = graph.IRI(Namespace + "frameworkVersion")
	PropDocumentationURL         = graph.IRI(Namespace + "documentationURL")
	PropPublicationDate          = graph.IRI(Namespace + "publicationDate")
	PropBaselineName             = graph.IRI(Namespace + "baselineName")
	PropControlCount             = graph.IRI(Namespace + "controlCount")
)

// Resource returns the IRI term for a local name inside the namespace.
func Resource(local string) graph.Term {
	return graph.IRI(Namespace + local)
}

// LocalName strips the namespace from an IRI term, returning the bare
// identifier. Terms outside the namespace are returned whole.
func LocalName(t graph.Term) string {
	return strings.TrimPrefix(t.Value, Namespace)
}

// InNamespace reports whether the term is an IRI inside the ontology
// namespace.
func InNamespace(t graph.Term) bool {
	return t.IsIRI() && strings.HasPrefix(t.Value, Namespace)
}
