package variables

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// rootElement is the document root wrapping all serialized variables.
const rootElement = "model"

// pathSeparator splits a variable name into its XML element path.
const pathSeparator = ":"

// WriteXMLFile serializes the list to path, creating parent-element nesting
// from the colon-separated variable names. An optional translator renames
// variables on the way out.
func (l *VariableList) WriteXMLFile(path string, tr *Translator) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create variable file %s: %w", path, err)
	}
	defer f.Close()
	return l.WriteXML(f, tr)
}

// WriteXML serializes the list to w. Variables are emitted in lexical name
// order so output is reproducible.
func (l *VariableList) WriteXML(w io.Writer, tr *Translator) error {
	root := newTreeNode()
	for _, name := range l.SortedNames() {
		v := l.byName[name]
		outName := name
		if tr != nil {
			outName = tr.ToPath(name)
		}
		root.insert(strings.Split(outName, pathSeparator), v)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := root.encode(enc, rootElement); err != nil {
		return fmt.Errorf("cannot encode variable tree: %w", err)
	}
	return enc.Flush()
}

// ReadXMLFile parses a variable file written by WriteXML (or by hand) into
// a new VariableList. An optional translator maps legacy element paths back
// to current variable names.
func ReadXMLFile(path string, tr *Translator) (*VariableList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open variable file %s: %w", path, err)
	}
	defer f.Close()
	return ReadXML(f, tr)
}

// ReadXML parses variables from r. Every leaf element whose text parses as
// a number becomes one variable named by the colon-joined element path
// below the document root. Non-numeric leaves are skipped.
func ReadXML(r io.Reader, tr *Translator) (*VariableList, error) {
	dec := xml.NewDecoder(r)
	list := NewList()

	var path []string
	var units []string
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed variable XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			units = append(units, attrValue(t, "units"))
			text.Reset()
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			// Only elements below the root count toward the name.
			if len(path) > 1 {
				raw := strings.TrimSpace(text.String())
				if value, convErr := strconv.ParseFloat(raw, 64); convErr == nil && raw != "" {
					name := strings.Join(path[1:], pathSeparator)
					if tr != nil {
						name = tr.FromPath(name)
					}
					v := New(name, value, units[len(units)-1])
					list.Set(v)
				}
			}
			path = path[:len(path)-1]
			units = units[:len(units)-1]
			text.Reset()
		}
	}

	return list, nil
}

func attrValue(el xml.StartElement, name string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// treeNode is one element of the nested output tree built from variable
// name paths.
type treeNode struct {
	children map[string]*treeNode
	order    []string
	leaf     *Variable
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[string]*treeNode)}
}

func (n *treeNode) insert(path []string, v Variable) {
	if len(path) == 0 {
		leaf := v
		n.leaf = &leaf
		return
	}
	child, ok := n.children[path[0]]
	if !ok {
		child = newTreeNode()
		n.children[path[0]] = child
		n.order = append(n.order, path[0])
	}
	child.insert(path[1:], v)
}

func (n *treeNode) encode(enc *xml.Encoder, name string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if n.leaf != nil && n.leaf.Units != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "units"}, Value: n.leaf.Units})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if n.leaf != nil {
		value := strconv.FormatFloat(n.leaf.Value, 'g', -1, 64)
		if err := enc.EncodeToken(xml.CharData(value)); err != nil {
			return err
		}
	}

	for _, childName := range n.order {
		if err := n.children[childName].encode(enc, childName); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
