package graph

import (
	"iter"
)

// Store holds the statement set with subject and predicate indices, so
// wildcard lookups touch candidates proportional to the result rather than
// scanning the whole graph. Statements keep insertion order for
// deterministic iteration. Store is not safe for concurrent use.
type Store struct {
	stmts     []Statement       // insertion-ordered; entries may be superseded
	index     map[Statement]int // live statement -> position in stmts
	bySubject map[Term][]int
	byPred    map[Term][]int
}

// New returns an empty store.
func New() *Store {
	return &Store{
		index:     make(map[Statement]int),
		bySubject: make(map[Term][]int),
		byPred:    make(map[Term][]int),
	}
}

// Len returns the number of distinct statements.
func (st *Store) Len() int {
	return len(st.index)
}

// Add inserts a statement. Re-adding an existing statement is a no-op.
func (st *Store) Add(s Statement) {
	if _, ok := st.index[s]; ok {
		return
	}
	pos := len(st.stmts)
	st.stmts = append(st.stmts, s)
	st.index[s] = pos
	st.bySubject[s.Subject] = append(st.bySubject[s.Subject], pos)
	st.byPred[s.Predicate] = append(st.byPred[s.Predicate], pos)
}

// ApplyDelta inserts a batch of statements as one unit. Callers validate
// the full batch before applying; Add itself cannot fail, which keeps
// multi-statement entity creation atomic.
func (st *Store) ApplyDelta(stmts []Statement) {
	for _, s := range stmts {
		st.Add(s)
	}
}

// Remove deletes a statement, reporting whether it was present. Index
// entries for removed statements are skipped during iteration.
func (st *Store) Remove(s Statement) bool {
	if _, ok := st.index[s]; !ok {
		return false
	}
	delete(st.index, s)
	return true
}

// Contains reports whether the statement is in the store.
func (st *Store) Contains(s Statement) bool {
	_, ok := st.index[s]
	return ok
}

// live reports whether position pos still carries an active statement.
func (st *Store) live(pos int) bool {
	cur, ok := st.index[st.stmts[pos]]
	return ok && cur == pos
}

// Find returns the statements matching the pattern. A nil term is a
// wildcard. The sequence is lazy, finite and restartable; it reflects
// the store state at each iteration.
func (st *Store) Find(s, p, o *Term) iter.Seq[Statement] {
	return func(yield func(Statement) bool) {
		positions := st.candidates(s, p)
		for _, pos := range positions {
			if !st.live(pos) {
				continue
			}
			stmt := st.stmts[pos]
			if s != nil && stmt.Subject != *s {
				continue
			}
			if p != nil && stmt.Predicate != *p {
				continue
			}
			if o != nil && stmt.Object != *o {
				continue
			}
			if !yield(stmt) {
				return
			}
		}
	}
}

// candidates picks the narrowest index for the bound pattern terms.
func (st *Store) candidates(s, p *Term) []int {
	switch {
	case s != nil:
		return st.bySubject[*s]
	case p != nil:
		return st.byPred[*p]
	default:
		all := make([]int, 0, len(st.stmts))
		for i := range st.stmts {
			all = append(all, i)
		}
		return all
	}
}

// FindOne returns the first statement matching the pattern, if any.
func (st *Store) FindOne(s, p, o *Term) (Statement, bool) {
	for stmt := range st.Find(s, p, o) {
		return stmt, true
	}
	return Statement{}, false
}

// Objects returns the objects of all (s, p, ?) statements in insertion order.
func (st *Store) Objects(s, p Term) []Term {
	var out []Term
	for stmt := range st.Find(&s, &p, nil) {
		out = append(out, stmt.Object)
	}
	return out
}

// Subjects returns the subjects of all (?, p, o) statements in insertion order.
func (st *Store) Subjects(p, o Term) []Term {
	var out []Term
	for stmt := range st.Find(nil, &p, &o) {
		out = append(out, stmt.Subject)
	}
	return out
}

// HasType reports whether subject carries an rdf:type assertion to class.
func (st *Store) HasType(subject, class Term) bool {
	return st.Contains(Statement{Subject: subject, Predicate: IRI(RDFType), Object: class})
}

// TypeOf returns the first rdf:type object of subject, if any.
func (st *Store) TypeOf(subject Term) (Term, bool) {
	p := IRI(RDFType)
	stmt, ok := st.FindOne(&subject, &p, nil)
	if !ok {
		return Term{}, false
	}
	return stmt.Object, true
}

// Statements iterates every live statement in insertion order.
func (st *Store) Statements() iter.Seq[Statement] {
	return st.Find(nil, nil, nil)
}

// Equal reports statement-set equality with other, ignoring order.
func (st *Store) Equal(other *Store) bool {
	if st.Len() != other.Len() {
		return false
	}
	for s := range st.index {
		if !other.Contains(s) {
			return false
		}
	}
	return true
}

// Clone returns a store with the same statement set.
func (st *Store) Clone() *Store {
	out := New()
	for s := range st.Statements() {
		out.Add(s)
	}
	return out
}
