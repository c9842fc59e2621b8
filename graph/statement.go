package graph

// Statement is an atomic (subject, predicate, object) fact. Statements are
// comparable values; the store treats them with set semantics.
type Statement struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewStatement builds a statement from its three terms.
func NewStatement(s, p, o Term) Statement {
	return Statement{Subject: s, Predicate: p, Object: o}
}

// String renders the statement in N-Triples style.
func (s Statement) String() string {
	return s.Subject.String() + " " + s.Predicate.String() + " " + s.Object.String() + " ."
}
