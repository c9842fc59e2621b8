package rdfio

import (
	"io"
	"strconv"
	"strings"

	"github.com/david4096/compliance-ontology/errors"
	"github.com/david4096/compliance-ontology/graph"
)

// The text-format reader covers Turtle, N-Triples, Notation3 and TriG:
// N-Triples is a Turtle subset, plain-triple N3 is Turtle-compatible, and
// TriG adds graph blocks, which the parser accepts and flattens into the
// default graph. Constructs outside what the encoders emit (collections,
// anonymous bracket nodes, N3 rules) are rejected with a ParseError.

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRI
	tokPName
	tokBlank
	tokString
	tokLangTag
	tokHatHat
	tokDot
	tokSemi
	tokComma
	tokLBrace
	tokRBrace
	tokLBracket
	tokDirective // @prefix or @base; value is the directive name
	tokNumber
	tokIdent // bare word: a, true, false, PREFIX, BASE, GRAPH
)

type token struct {
	kind  tokenKind
	value string
	line  int
}

type lexer struct {
	input []rune
	pos   int
	line  int
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input), line: 1}
}

func (l *lexer) errf(format string, args ...interface{}) error {
	return errors.Parsef("line %d: "+format, append([]interface{}{l.line}, args...)...)
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *lexer) readRune() (rune, bool) {
	r, ok := l.peekRune()
	if ok {
		l.pos++
		if r == '\n' {
			l.line++
		}
	}
	return r, ok
}

func (l *lexer) skipSpace() {
	for {
		r, ok := l.peekRune()
		if !ok {
			return
		}
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.readRune()
		case r == '#':
			for {
				c, ok := l.readRune()
				if !ok || c == '\n' {
					break
				}
			}
		default:
			return
		}
	}
}

func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-' || r == ':' || r == '.' || r == '%':
		return true
	}
	return false
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	line := l.line
	r, ok := l.peekRune()
	if !ok {
		return token{kind: tokEOF, line: line}, nil
	}

	switch r {
	case '<':
		return l.lexIRI(line)
	case '"':
		return l.lexString(line)
	case '@':
		l.readRune()
		word := l.lexWord()
		if word == "prefix" || word == "base" {
			return token{kind: tokDirective, value: word, line: line}, nil
		}
		if word == "" {
			return token{}, l.errf("dangling '@'")
		}
		return token{kind: tokLangTag, value: word, line: line}, nil
	case '^':
		l.readRune()
		if r2, _ := l.peekRune(); r2 != '^' {
			return token{}, l.errf("expected '^^'")
		}
		l.readRune()
		return token{kind: tokHatHat, line: line}, nil
	case '.':
		// Lone dot is a statement terminator; dot followed by a digit
		// starts a decimal.
		if l.pos+1 < len(l.input) && l.input[l.pos+1] >= '0' && l.input[l.pos+1] <= '9' {
			return l.lexNumber(line)
		}
		l.readRune()
		return token{kind: tokDot, line: line}, nil
	case ';':
		l.readRune()
		return token{kind: tokSemi, line: line}, nil
	case ',':
		l.readRune()
		return token{kind: tokComma, line: line}, nil
	case '{':
		l.readRune()
		return token{kind: tokLBrace, line: line}, nil
	case '}':
		l.readRune()
		return token{kind: tokRBrace, line: line}, nil
	case '[':
		l.readRune()
		return token{kind: tokLBracket, line: line}, nil
	case '_':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == ':' {
			l.readRune()
			l.readRune()
			label := l.lexWord()
			for strings.HasSuffix(label, ".") {
				label = label[:len(label)-1]
				l.pos--
			}
			if label == "" {
				return token{}, l.errf("blank node with empty label")
			}
			return token{kind: tokBlank, value: label, line: line}, nil
		}
	}

	if r == '+' || r == '-' || (r >= '0' && r <= '9') {
		return l.lexNumber(line)
	}

	word := l.lexWord()
	if word == "" {
		return token{}, l.errf("unexpected character %q", string(r))
	}
	// Trailing dots belong to the statement terminator, not the name.
	for strings.HasSuffix(word, ".") {
		word = word[:len(word)-1]
		l.pos--
	}
	if strings.Contains(word, ":") {
		return token{kind: tokPName, value: word, line: line}, nil
	}
	return token{kind: tokIdent, value: word, line: line}, nil
}

func (l *lexer) lexWord() string {
	var sb strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok || !isIdentRune(r) {
			break
		}
		sb.WriteRune(r)
		l.readRune()
	}
	return sb.String()
}

func (l *lexer) lexIRI(line int) (token, error) {
	l.readRune() // consume '<'
	var sb strings.Builder
	for {
		r, ok := l.readRune()
		if !ok {
			return token{}, l.errf("unterminated IRI")
		}
		if r == '>' {
			return token{kind: tokIRI, value: sb.String(), line: line}, nil
		}
		if r == '\\' {
			esc, err := l.readEscape()
			if err != nil {
				return token{}, err
			}
			sb.WriteRune(esc)
			continue
		}
		sb.WriteRune(r)
	}
}

func (l *lexer) lexString(line int) (token, error) {
	l.readRune() // consume opening quote
	long := false
	if r, ok := l.peekRune(); ok && r == '"' {
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '"' {
			// Three quotes open a long string.
			l.readRune()
			l.readRune()
			long = true
		} else {
			// Two quotes are the empty string.
			l.readRune()
			return token{kind: tokString, value: "", line: line}, nil
		}
	}

	var sb strings.Builder
	for {
		r, ok := l.readRune()
		if !ok {
			return token{}, l.errf("unterminated string literal")
		}
		if r == '"' {
			if !long {
				return token{kind: tokString, value: sb.String(), line: line}, nil
			}
			if l.matchRunes(`""`) {
				return token{kind: tokString, value: sb.String(), line: line}, nil
			}
			sb.WriteRune(r)
			continue
		}
		if r == '\\' {
			esc, err := l.readEscape()
			if err != nil {
				return token{}, err
			}
			sb.WriteRune(esc)
			continue
		}
		sb.WriteRune(r)
	}
}

// matchRunes consumes s if the input starts with it.
func (l *lexer) matchRunes(s string) bool {
	runes := []rune(s)
	if l.pos+len(runes) > len(l.input) {
		return false
	}
	for i, r := range runes {
		if l.input[l.pos+i] != r {
			return false
		}
	}
	for range runes {
		l.readRune()
	}
	return true
}

func (l *lexer) readEscape() (rune, error) {
	r, ok := l.readRune()
	if !ok {
		return 0, l.errf("unterminated escape sequence")
	}
	switch r {
	case 't':
		return '\t', nil
	case 'b':
		return '\b', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 'f':
		return '\f', nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	case '\\':
		return '\\', nil
	case 'u':
		return l.readHexEscape(4)
	case 'U':
		return l.readHexEscape(8)
	}
	return 0, l.errf("unknown escape sequence \\%c", r)
}

func (l *lexer) readHexEscape(n int) (rune, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r, ok := l.readRune()
		if !ok {
			return 0, l.errf("unterminated unicode escape")
		}
		sb.WriteRune(r)
	}
	v, err := strconv.ParseUint(sb.String(), 16, 32)
	if err != nil {
		return 0, l.errf("bad unicode escape %q", sb.String())
	}
	return rune(v), nil
}

func (l *lexer) lexNumber(line int) (token, error) {
	var sb strings.Builder
	if r, _ := l.peekRune(); r == '+' || r == '-' {
		sb.WriteRune(r)
		l.readRune()
	}
	sawDigit := false
	for {
		r, ok := l.peekRune()
		if !ok {
			break
		}
		if r >= '0' && r <= '9' {
			sawDigit = true
			sb.WriteRune(r)
			l.readRune()
			continue
		}
		if r == '.' {
			// A dot not followed by a digit terminates the statement.
			if l.pos+1 < len(l.input) && l.input[l.pos+1] >= '0' && l.input[l.pos+1] <= '9' {
				sb.WriteRune(r)
				l.readRune()
				continue
			}
			break
		}
		if r == 'e' || r == 'E' {
			sb.WriteRune(r)
			l.readRune()
			continue
		}
		break
	}
	if !sawDigit {
		return token{}, l.errf("malformed number")
	}
	return token{kind: tokNumber, value: sb.String(), line: line}, nil
}

// ttlParser consumes the token stream into a store.
type ttlParser struct {
	lx       *lexer
	prefixes map[string]string
	base     string
	store    *graph.Store
	peeked   *token
}

func decodeTurtle(r io.Reader) (*graph.Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.IO(err, "read source graph")
	}
	p := &ttlParser{
		lx:       newLexer(string(data)),
		prefixes: make(map[string]string),
		store:    graph.New(),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.store, nil
}

func (p *ttlParser) peek() (token, error) {
	if p.peeked != nil {
		return *p.peeked, nil
	}
	tok, err := p.lx.next()
	if err != nil {
		return token{}, err
	}
	p.peeked = &tok
	return tok, nil
}

func (p *ttlParser) next() (token, error) {
	tok, err := p.peek()
	if err != nil {
		return token{}, err
	}
	p.peeked = nil
	return tok, nil
}

func (p *ttlParser) expect(kind tokenKind, what string) (token, error) {
	tok, err := p.next()
	if err != nil {
		return token{}, err
	}
	if tok.kind != kind {
		return token{}, errors.Parsef("line %d: expected %s", tok.line, what)
	}
	return tok, nil
}

func (p *ttlParser) run() error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokEOF:
			return nil
		case tokDirective:
			if err := p.directive(); err != nil {
				return err
			}
		case tokLBrace, tokRBrace:
			// TriG graph blocks flatten into the default graph.
			p.peeked = nil
		case tokIdent:
			lower := strings.ToLower(tok.value)
			if lower == "prefix" || lower == "base" {
				if err := p.sparqlDirective(lower); err != nil {
					return err
				}
				continue
			}
			if lower == "graph" {
				// TriG: GRAPH <label> { ... }; label and braces are
				// consumed here, contents flatten into the default graph.
				p.peeked = nil
				if err := p.skipGraphLabel(); err != nil {
					return err
				}
				continue
			}
			return errors.Parsef("line %d: unexpected token %q", tok.line, tok.value)
		default:
			if err := p.triples(); err != nil {
				return err
			}
		}
	}
}

func (p *ttlParser) directive() error {
	tok, err := p.next() // @prefix or @base
	if err != nil {
		return err
	}
	switch tok.value {
	case "prefix":
		name, err := p.expect(tokPName, "prefix name")
		if err != nil {
			return err
		}
		if !strings.HasSuffix(name.value, ":") {
			return errors.Parsef("line %d: prefix name must end with ':'", name.line)
		}
		iri, err := p.expect(tokIRI, "namespace IRI")
		if err != nil {
			return err
		}
		p.prefixes[strings.TrimSuffix(name.value, ":")] = p.resolve(iri.value)
		_, err = p.expect(tokDot, "'.' after @prefix")
		return err
	case "base":
		iri, err := p.expect(tokIRI, "base IRI")
		if err != nil {
			return err
		}
		p.base = iri.value
		_, err = p.expect(tokDot, "'.' after @base")
		return err
	}
	return errors.Parsef("line %d: unknown directive @%s", tok.line, tok.value)
}

// sparqlDirective handles the SPARQL-style PREFIX and BASE forms, which
// take no trailing dot.
func (p *ttlParser) sparqlDirective(kind string) error {
	p.peeked = nil // consume the keyword
	if kind == "prefix" {
		name, err := p.expect(tokPName, "prefix name")
		if err != nil {
			return err
		}
		iri, err := p.expect(tokIRI, "namespace IRI")
		if err != nil {
			return err
		}
		p.prefixes[strings.TrimSuffix(name.value, ":")] = p.resolve(iri.value)
		return nil
	}
	iri, err := p.expect(tokIRI, "base IRI")
	if err != nil {
		return err
	}
	p.base = iri.value
	return nil
}

func (p *ttlParser) skipGraphLabel() error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.kind != tokIRI && tok.kind != tokPName && tok.kind != tokBlank {
		return errors.Parsef("line %d: expected graph label", tok.line)
	}
	_, err = p.expect(tokLBrace, "'{' after graph label")
	return err
}

// resolve applies the base IRI to relative references.
func (p *ttlParser) resolve(iri string) string {
	if p.base == "" || strings.Contains(iri, "://") || strings.HasPrefix(iri, "urn:") {
		return iri
	}
	return p.base + iri
}

func (p *ttlParser) expandPName(tok token) (graph.Term, error) {
	idx := strings.Index(tok.value, ":")
	prefix, local := tok.value[:idx], tok.value[idx+1:]
	ns, ok := p.prefixes[prefix]
	if !ok {
		return graph.Term{}, errors.Parsef("line %d: unknown prefix %q", tok.line, prefix)
	}
	return graph.IRI(ns + local), nil
}

func (p *ttlParser) triples() error {
	subj, err := p.resourceTerm("subject")
	if err != nil {
		return err
	}

	// A term followed by '{' is a TriG graph label, not a subject.
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.kind == tokLBrace {
		p.peeked = nil
		return nil
	}

	if err := p.predicateObjectList(subj); err != nil {
		return err
	}

	tok, err = p.peek()
	if err != nil {
		return err
	}
	if tok.kind == tokDot {
		p.peeked = nil
		return nil
	}
	// The final triple inside a TriG graph block may omit its dot.
	if tok.kind == tokRBrace || tok.kind == tokEOF {
		return nil
	}
	return errors.Parsef("line %d: expected '.' after triple", tok.line)
}

func (p *ttlParser) resourceTerm(what string) (graph.Term, error) {
	tok, err := p.next()
	if err != nil {
		return graph.Term{}, err
	}
	switch tok.kind {
	case tokIRI:
		return graph.IRI(p.resolve(tok.value)), nil
	case tokPName:
		return p.expandPName(tok)
	case tokBlank:
		return graph.Blank(tok.value), nil
	case tokLBracket:
		return graph.Term{}, errors.Parsef("line %d: anonymous blank nodes are not supported", tok.line)
	}
	return graph.Term{}, errors.Parsef("line %d: expected %s", tok.line, what)
}

func (p *ttlParser) predicateObjectList(subj graph.Term) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		var pred graph.Term
		switch {
		case tok.kind == tokIdent && tok.value == "a":
			pred = graph.IRI(graph.RDFType)
		case tok.kind == tokIRI:
			pred = graph.IRI(p.resolve(tok.value))
		case tok.kind == tokPName:
			pred, err = p.expandPName(tok)
			if err != nil {
				return err
			}
		default:
			return errors.Parsef("line %d: expected predicate", tok.line)
		}

		for {
			obj, err := p.object()
			if err != nil {
				return err
			}
			p.store.Add(graph.NewStatement(subj, pred, obj))

			tok, err := p.peek()
			if err != nil {
				return err
			}
			if tok.kind != tokComma {
				break
			}
			p.peeked = nil
		}

		tok, err = p.peek()
		if err != nil {
			return err
		}
		if tok.kind != tokSemi {
			return nil
		}
		for tok.kind == tokSemi {
			p.peeked = nil
			if tok, err = p.peek(); err != nil {
				return err
			}
		}
		// A dangling ';' before the terminator is legal Turtle.
		if tok.kind == tokDot || tok.kind == tokRBrace || tok.kind == tokEOF {
			return nil
		}
	}
}

func (p *ttlParser) object() (graph.Term, error) {
	tok, err := p.next()
	if err != nil {
		return graph.Term{}, err
	}
	switch tok.kind {
	case tokIRI:
		return graph.IRI(p.resolve(tok.value)), nil
	case tokPName:
		return p.expandPName(tok)
	case tokBlank:
		return graph.Blank(tok.value), nil
	case tokString:
		return p.literalTail(tok.value)
	case tokNumber:
		if strings.ContainsAny(tok.value, ".eE") {
			return graph.Literal(tok.value, graph.XSDDecimal), nil
		}
		return graph.Literal(tok.value, graph.XSDInteger), nil
	case tokIdent:
		if tok.value == "true" || tok.value == "false" {
			return graph.Literal(tok.value, graph.XSDBoolean), nil
		}
	case tokLBracket:
		return graph.Term{}, errors.Parsef("line %d: anonymous blank nodes are not supported", tok.line)
	}
	return graph.Term{}, errors.Parsef("line %d: expected object term", tok.line)
}

// literalTail reads an optional language tag or datatype after a string.
func (p *ttlParser) literalTail(lexical string) (graph.Term, error) {
	tok, err := p.peek()
	if err != nil {
		return graph.Term{}, err
	}
	switch tok.kind {
	case tokLangTag:
		p.peeked = nil
		return graph.LangLiteral(lexical, tok.value), nil
	case tokHatHat:
		p.peeked = nil
		dt, err := p.resourceTerm("datatype IRI")
		if err != nil {
			return graph.Term{}, err
		}
		if !dt.IsIRI() {
			return graph.Term{}, errors.Parsef("line %d: datatype must be an IRI", tok.line)
		}
		return graph.Literal(lexical, dt.Value), nil
	}
	return graph.StringLiteral(lexical), nil
}
