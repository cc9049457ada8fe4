// Package sgml repairs the tag-unbalanced SGML dialect that financial
// institutions produce for OFX downloads, turning it into well-formed XML.
//
// OFX 1.x files open leaf value tags without ever closing them
// (e.g. "<BALAMT>150.65" with no "</BALAMT>"). The repair scans the whole
// input for tag names that are explicitly closed somewhere, and treats every
// other opening tag as a leaf to be closed right before the next tag begins.
//
// The classification is document-global: a tag name that is closed anywhere
// in the input is assumed to be a container everywhere in the input. A
// dialect that reuses the same name both as a closed container and as an
// unclosed leaf will be over- or under-closed. This imprecision is inherited
// from the format and kept on purpose; downstream consumers may rely on it.
package sgml

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// ErrMalformedInput is returned when the input cannot be repaired at all:
// non-empty input with no tag boundary, or a closing tag that was never
// opened at any depth.
var ErrMalformedInput = errors.New("malformed OFX input")

var (
	tagRe   = regexp.MustCompile(`(?i)</?[a-z0-9_.]+>`)
	openRe  = regexp.MustCompile(`(?i)<([a-z0-9_.]+)>`)
	closeRe = regexp.MustCompile(`(?i)</([a-z0-9_.]+)>`)
)

// Document is the result of a repair: the flat key:value preamble of the
// statement and a well-formed XML body.
type Document struct {
	Header string
	Body   string
}

// Repair splits raw OFX text into its preamble and a repaired, well-formed
// XML body. On error no partial document is returned.
func Repair(raw string) (Document, error) {
	tags := tagRe.FindAllStringIndex(raw, -1)
	if len(tags) == 0 {
		if strings.TrimSpace(raw) != "" {
			return Document{}, fmt.Errorf("%w: no tag boundary found", ErrMalformedInput)
		}
		return Document{}, nil
	}

	// Every tag name that is explicitly closed anywhere in the document.
	// Opening tags whose name is in this set are left for their real close.
	closed := make(map[string]bool)
	for _, m := range closeRe.FindAllStringSubmatch(raw, -1) {
		closed[strings.ToUpper(m[1])] = true
	}

	var header, body strings.Builder
	depth := 0 // counts tag tokens; body starts at the first one
	pending := ""
	opened := make(map[string]int)

	flush := func() {
		if pending == "" {
			return
		}
		if depth > 0 {
			fmt.Fprintf(&body, "</%s>", pending)
		} else {
			fmt.Fprintf(&header, "</%s>", pending)
		}
		opened[strings.ToUpper(pending)]--
		pending = ""
	}

	emit := func(token string) {
		if depth > 0 {
			body.WriteString(token)
		} else {
			header.WriteString(token)
		}
	}

	// scanText routes a text chunk between tag tokens. Chunks beginning
	// with a processing instruction ("<?") count as a tag boundary for
	// depth and pending-close purposes but never become pending themselves
	// and are never auto-closed. Comment/CDATA chunks ("<!") are plain
	// text: no boundary at all.
	scanText := func(chunk string) {
		if strings.HasPrefix(chunk, "<") && !strings.HasPrefix(chunk, "<!") {
			depth++
			flush()
		}
		emit(chunk)
	}

	pos := 0
	for _, m := range tags {
		if m[0] > pos {
			scanText(raw[pos:m[0]])
		}
		token := raw[m[0]:m[1]]
		depth++
		flush()
		if strings.HasPrefix(token, "</") {
			name := strings.ToUpper(closeRe.FindStringSubmatch(token)[1])
			if opened[name] <= 0 {
				return Document{}, fmt.Errorf("%w: closing tag %s was never opened", ErrMalformedInput, token)
			}
			opened[name]--
		} else {
			name := openRe.FindStringSubmatch(token)[1]
			opened[strings.ToUpper(name)]++
			if !closed[strings.ToUpper(name)] {
				pending = name
			}
		}
		emit(token)
		pos = m[1]
	}
	if pos < len(raw) {
		scanText(raw[pos:])
	}
	// End of input with an unterminated implicit tag: close it into
	// whichever buffer is active.
	flush()

	doc := Document{Header: header.String(), Body: body.String()}
	if err := doc.check(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// check verifies the postcondition: the body must read back as well-formed
// XML with no dangling open elements.
func (d Document) check() error {
	if strings.TrimSpace(d.Body) == "" {
		return nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(d.Body); err != nil {
		return fmt.Errorf("%w: repaired body is not well-formed: %v", ErrMalformedInput, err)
	}
	return nil
}
