package vocab

import (
	"time"

	"github.com/david4096/compliance-ontology/graph"
)

var owlClass = graph.IRI(graph.OWLNamespace + "Class")

// Seed loads the schema and the framework catalog into the store. It is
// idempotent; the statements it adds are the read-only reference portion of
// every graph.
func Seed(st *graph.Store) {
	st.ApplyDelta(SeedStatements())
}

// SeedStatements returns the full reference statement set: class
// declarations, status and type individuals, and the 30 framework
// individuals with their baselines, in catalog order.
func SeedStatements() []graph.Statement {
	rdfType := graph.IRI(graph.RDFType)
	label := graph.IRI(graph.RDFSLabel)
	comment := graph.IRI(graph.RDFSComment)

	var out []graph.Statement
	add := func(s, p, o graph.Term) {
		out = append(out, graph.NewStatement(s, p, o))
	}

	for _, class := range []graph.Term{
		ClassSystem,
		ClassAttester,
		ClassAttestation,
		ClassComplianceFramework,
		ClassBaseline,
		ClassComplianceStatus,
		ClassAttestationType,
	} {
		add(class, rdfType, owlClass)
	}

	for _, s := range ComplianceStatuses {
		add(s.Term(), rdfType, ClassComplianceStatus)
		add(s.Term(), label, graph.StringLiteral(string(s)))
	}
	for _, a := range AttestationTypes {
		add(a.Term(), rdfType, ClassAttestationType)
		add(a.Term(), label, graph.StringLiteral(string(a)))
	}

	for _, fw := range catalog {
		fwTerm := Resource(fw.ID)
		add(fwTerm, rdfType, ClassComplianceFramework)
		add(fwTerm, label, graph.StringLiteral(fw.Label))
		if fw.Description != "" {
			add(fwTerm, comment, graph.StringLiteral(fw.Description))
		}
		if fw.Version != "" {
			add(fwTerm, PropFrameworkVersion, graph.StringLiteral(fw.Version))
		}
		if fw.DocumentationURL != "" {
			add(fwTerm, PropDocumentationURL, graph.StringLiteral(fw.DocumentationURL))
		}
		if fw.PublicationDate != "" {
			add(fwTerm, PropPublicationDate, graph.Literal(fw.PublicationDate, graph.XSDDate))
		}

		for _, b := range fw.Baselines {
			bTerm := Resource(BaselineID(fw.ID, b.Name))
			add(bTerm, rdfType, ClassBaseline)
			add(bTerm, PropBaselineName, graph.StringLiteral(b.Name))
			add(bTerm, PropControlCount, graph.IntegerLiteral(int64(b.Controls)))
			add(fwTerm, PropHasBaseline, bTerm)
		}
	}

	return out
}

// PublicationTime parses the framework's publication date.
func (f Framework) PublicationTime() (time.Time, error) {
	return time.Parse(graph.DateLayout, f.PublicationDate)
}
