package sgml

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/beevik/etree"
	"github.com/clbanning/mxj/v2"
)

// Pretty re-emits the repaired body with indentation. This is cosmetic only:
// element order and content are preserved.
func (d Document) Pretty() (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(d.Body); err != nil {
		return "", fmt.Errorf("cannot parse repaired body: %w", err)
	}
	doc.Indent(2)
	return doc.WriteToString()
}

// Map converts the repaired body into a nested map, one key per aggregate,
// the way xmltodict-style consumers expect it.
func (d Document) Map() (map[string]any, error) {
	m, err := mxj.NewMapXml([]byte(d.Body))
	if err != nil {
		return nil, fmt.Errorf("cannot convert repaired body: %w", err)
	}
	return map[string]any(m), nil
}

// JSON renders the repaired body as indented JSON. Object keys are sorted,
// so the output is deterministic; element order within a repeated aggregate
// is preserved as a JSON array.
func (d Document) JSON() (string, error) {
	m, err := d.Map()
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Extract applies a JSONPath expression to the converted body, e.g.
// "$.OFX.INVSTMTMSGSRSV1.INVSTMTTRNRS.INVSTMTRS.INVTRANLIST".
func (d Document) Extract(path string) (any, error) {
	m, err := d.Map()
	if err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get(path, any(m))
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		jval = jlist[0]
	}
	return jval, nil
}
