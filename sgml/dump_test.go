package sgml

import (
	"strings"
	"testing"
)

func repaired(t *testing.T) Document {
	t.Helper()
	doc, err := Repair(sample)
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	return doc
}

func TestPretty(t *testing.T) {
	doc := repaired(t)
	out, err := doc.Pretty()
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(out, "\n") {
		t.Errorf("pretty output should be indented, got %q", out)
	}
	// Cosmetic only: content must survive.
	for _, want := range []string{"<CODE>0</CODE>", "<LANGUAGE>ENG</LANGUAGE>"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output lost %q:\n%s", want, out)
		}
	}
	// Order must survive too: SIGNONMSGSRSV1 before its SONRS content.
	if strings.Index(out, "SONRS") < strings.Index(out, "SIGNONMSGSRSV1") {
		t.Errorf("pretty output reordered elements:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	doc := repaired(t)
	out, err := doc.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	for _, want := range []string{`"DTSERVER": "20230125131402"`, `"SEVERITY": "INFO"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %q:\n%s", want, out)
		}
	}
}

func TestExtract(t *testing.T) {
	doc := repaired(t)
	got, err := doc.Extract("$.OFX.SIGNONMSGSRSV1.SONRS.STATUS.CODE")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "0" {
		t.Errorf("Extract = %v (%T), want \"0\"", got, got)
	}

	if _, err := doc.Extract("$.OFX.NOSUCH.PATH"); err == nil {
		t.Error("Extract on a missing path should fail")
	}
}
