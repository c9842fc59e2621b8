package rdfio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/david4096/compliance-ontology/errors"
	"github.com/david4096/compliance-ontology/graph"
)

// splitIRI separates an IRI into namespace and local name at the last '#'
// or '/', the split RDF/XML element names require.
func splitIRI(iri string) (ns, local string, ok bool) {
	idx := strings.LastIndexAny(iri, "#/")
	if idx < 0 || idx == len(iri)-1 {
		return "", "", false
	}
	ns, local = iri[:idx+1], iri[idx+1:]
	if !safeLocalName(local) {
		return "", "", false
	}
	return ns, local, true
}

// xmlAttr escapes a value for use inside a double-quoted XML attribute.
func xmlAttr(v string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(v))
	return `"` + buf.String() + `"`
}

// encodeRDFXML writes the store as rdf:Description elements grouped by
// subject. Predicates outside the declared prefixes get generated nsN
// declarations.
func encodeRDFXML(w io.Writer, st *graph.Store) error {
	prefixes := defaultPrefixes()
	nsToPrefix := make(map[string]string, len(prefixes))
	var nsOrder []string
	for _, p := range prefixes {
		nsToPrefix[p.ns] = p.prefix
		nsOrder = append(nsOrder, p.ns)
	}
	generated := 0

	// Predicates must be prefix-qualified element names; collect any
	// namespaces the defaults do not cover before writing the header.
	for s := range st.Statements() {
		ns, _, ok := splitIRI(s.Predicate.Value)
		if !ok {
			return errors.Formatf("predicate %s cannot be written as an XML element", s.Predicate)
		}
		if _, known := nsToPrefix[ns]; !known {
			generated++
			nsToPrefix[ns] = fmt.Sprintf("ns%d", generated)
			nsOrder = append(nsOrder, ns)
		}
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	sb.WriteString("<rdf:RDF")
	for _, ns := range nsOrder {
		fmt.Fprintf(&sb, "\n    xmlns:%s=%s", nsToPrefix[ns], xmlAttr(ns))
	}
	sb.WriteString(">\n")

	var order []graph.Term
	bySubject := make(map[graph.Term][]graph.Statement)
	for s := range st.Statements() {
		if _, seen := bySubject[s.Subject]; !seen {
			order = append(order, s.Subject)
		}
		bySubject[s.Subject] = append(bySubject[s.Subject], s)
	}

	for _, subj := range order {
		switch subj.Kind {
		case graph.KindIRI:
			fmt.Fprintf(&sb, "  <rdf:Description rdf:about=%s>\n", xmlAttr(subj.Value))
		case graph.KindBlank:
			fmt.Fprintf(&sb, "  <rdf:Description rdf:nodeID=%s>\n", xmlAttr(subj.Value))
		default:
			return errors.Formatf("literal subject %s is not valid RDF", subj)
		}

		for _, s := range bySubject[subj] {
			ns, local, _ := splitIRI(s.Predicate.Value)
			name := nsToPrefix[ns] + ":" + local
			o := s.Object
			switch o.Kind {
			case graph.KindIRI:
				fmt.Fprintf(&sb, "    <%s rdf:resource=%s/>\n", name, xmlAttr(o.Value))
			case graph.KindBlank:
				fmt.Fprintf(&sb, "    <%s rdf:nodeID=%s/>\n", name, xmlAttr(o.Value))
			default:
				var text bytes.Buffer
				if err := xml.EscapeText(&text, []byte(o.Value)); err != nil {
					return errors.IO(err, "escape literal")
				}
				switch {
				case o.Lang != "":
					fmt.Fprintf(&sb, "    <%s xml:lang=%s>%s</%s>\n", name, xmlAttr(o.Lang), text.String(), name)
				case o.Datatype != "" && o.Datatype != graph.XSDString:
					fmt.Fprintf(&sb, "    <%s rdf:datatype=%s>%s</%s>\n", name, xmlAttr(o.Datatype), text.String(), name)
				default:
					fmt.Fprintf(&sb, "    <%s>%s</%s>\n", name, text.String(), name)
				}
			}
		}
		sb.WriteString("  </rdf:Description>\n")
	}
	sb.WriteString("</rdf:RDF>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// decodeRDFXML reads rdf:Description (or typed node) elements. Nested node
// elements are not supported; the encoder never emits them.
func decodeRDFXML(r io.Reader) (*graph.Store, error) {
	st := graph.New()
	dec := xml.NewDecoder(r)

	root, err := nextStart(dec)
	if err != nil {
		return nil, errors.Parsef("malformed RDF/XML: %v", err)
	}
	if root == nil || root.Name.Space != graph.RDFNamespace || root.Name.Local != "RDF" {
		return nil, errors.Parsef("RDF/XML document must be rooted at rdf:RDF")
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, errors.Parsef("RDF/XML document ended before </rdf:RDF>")
		}
		if err != nil {
			return nil, errors.Parsef("malformed RDF/XML: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := parseNodeElement(dec, st, t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return st, nil
		}
	}
}

func nextStart(dec *xml.Decoder) (*xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return &start, nil
		}
	}
}

func parseNodeElement(dec *xml.Decoder, st *graph.Store, start xml.StartElement) error {
	subj, err := subjectFromAttrs(start)
	if err != nil {
		return err
	}

	// A typed node element (anything but rdf:Description) carries its own
	// rdf:type assertion.
	if start.Name.Space != graph.RDFNamespace || start.Name.Local != "Description" {
		st.Add(graph.NewStatement(subj, graph.IRI(graph.RDFType),
			graph.IRI(start.Name.Space+start.Name.Local)))
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return errors.Parsef("malformed RDF/XML: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := parsePropertyElement(dec, st, subj, t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func subjectFromAttrs(start xml.StartElement) (graph.Term, error) {
	for _, attr := range start.Attr {
		if attr.Name.Space != graph.RDFNamespace {
			continue
		}
		switch attr.Name.Local {
		case "about":
			return graph.IRI(attr.Value), nil
		case "nodeID":
			return graph.Blank(attr.Value), nil
		case "ID":
			return graph.IRI("#" + attr.Value), nil
		}
	}
	return graph.Term{}, errors.Parsef("node element %s has no rdf:about or rdf:nodeID", start.Name.Local)
}

func parsePropertyElement(dec *xml.Decoder, st *graph.Store, subj graph.Term, start xml.StartElement) error {
	pred := graph.IRI(start.Name.Space + start.Name.Local)

	var datatype, lang string
	for _, attr := range start.Attr {
		switch {
		case attr.Name.Space == graph.RDFNamespace && attr.Name.Local == "resource":
			st.Add(graph.NewStatement(subj, pred, graph.IRI(attr.Value)))
			return dec.Skip()
		case attr.Name.Space == graph.RDFNamespace && attr.Name.Local == "nodeID":
			st.Add(graph.NewStatement(subj, pred, graph.Blank(attr.Value)))
			return dec.Skip()
		case attr.Name.Space == graph.RDFNamespace && attr.Name.Local == "datatype":
			datatype = attr.Value
		case attr.Name.Local == "lang":
			lang = attr.Value
		}
	}

	// Literal property: collect character data until the end element.
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return errors.Parsef("malformed RDF/XML: %v", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			return errors.Parsef("nested node elements under %s are not supported", start.Name.Local)
		case xml.EndElement:
			var obj graph.Term
			switch {
			case lang != "":
				obj = graph.LangLiteral(text.String(), lang)
			case datatype != "":
				obj = graph.Literal(text.String(), datatype)
			default:
				obj = graph.StringLiteral(text.String())
			}
			st.Add(graph.NewStatement(subj, pred, obj))
			return nil
		}
	}
}
