package variables

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Translator maps variable names to alternate XML element paths. It lets
// current variable names round-trip through data files laid out with legacy
// naming.
type Translator struct {
	nameToPath map[string]string
	pathToName map[string]string
}

// NewTranslator creates an empty Translator.
func NewTranslator() *Translator {
	return &Translator{
		nameToPath: make(map[string]string),
		pathToName: make(map[string]string),
	}
}

// Add records one name/path pair. Later pairs win over earlier ones.
func (t *Translator) Add(name, path string) {
	t.nameToPath[name] = path
	t.pathToName[path] = name
}

// ToPath returns the XML path for a variable name, or the name itself when
// no translation is recorded.
func (t *Translator) ToPath(name string) string {
	if path, ok := t.nameToPath[name]; ok {
		return path
	}
	return name
}

// FromPath returns the variable name for an XML path, or the path itself
// when no translation is recorded.
func (t *Translator) FromPath(path string) string {
	if name, ok := t.pathToName[path]; ok {
		return name
	}
	return path
}

// LoadTranslatorFile reads name/path pairs from a side file, one
// "variable_name||xml:element:path" pair per line. Blank lines and lines
// starting with '#' are ignored.
func LoadTranslatorFile(path string) (*Translator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open translation file %s: %w", path, err)
	}
	defer f.Close()

	tr := NewTranslator()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, xmlPath, found := strings.Cut(line, "||")
		if !found {
			return nil, fmt.Errorf("translation file %s line %d: expected 'name||path'", path, lineNo)
		}
		tr.Add(strings.TrimSpace(name), strings.TrimSpace(xmlPath))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read translation file %s: %w", path, err)
	}

	return tr, nil
}
