package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResolveInputPicksNewest(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.csv")
	recent := filepath.Join(dir, "recent.csv")
	if err := os.WriteFile(old, []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(recent, []byte("b"), 0644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	got, err := resolveInput(dir, "*.csv")
	if err != nil {
		t.Fatal(err)
	}
	if got != recent {
		t.Errorf("resolveInput = %q, want %q", got, recent)
	}

	// a plain file resolves to itself
	if got, err = resolveInput(old, "*.csv"); err != nil || got != old {
		t.Errorf("resolveInput(file) = %q, %v", got, err)
	}

	if _, err := resolveInput(t.TempDir(), "*.csv"); err == nil {
		t.Error("expected error for an empty directory")
	}
}

func TestResolveOutput(t *testing.T) {
	dir := t.TempDir()
	if got := resolveOutput(dir, "/data/statement.csv", ".ofx"); got != filepath.Join(dir, "statement.ofx") {
		t.Errorf("resolveOutput(dir) = %q", got)
	}
	if got := resolveOutput("out.ofx", "statement.csv", ".ofx"); got != "out.ofx" {
		t.Errorf("resolveOutput(file) = %q", got)
	}
}

func TestReadRows(t *testing.T) {
	in := "txn_type,trade_date,symbol,total\nBUYSTOCK,2023/01/03,TSLA,-5000\n"
	rows, err := readRows(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["symbol"] != "TSLA" || rows[0]["total"] != "-5000" {
		t.Errorf("unexpected row %v", rows[0])
	}
}

func TestApplyConfig(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "ofxgen.yaml")
	content := "gen:\n  b: dummybroker.com\n  a: \"999988\"\n"
	if err := os.WriteFile(config, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OFXGEN_CONFIG", config)

	f := flag.NewFlagSet("gen", flag.ContinueOnError)
	broker := f.String("b", "", "")
	acct := f.String("a", "", "")
	if err := f.Parse([]string{"-a", "111111"}); err != nil {
		t.Fatal(err)
	}

	if err := applyConfig(f, "gen"); err != nil {
		t.Fatal(err)
	}
	if *broker != "dummybroker.com" {
		t.Errorf("broker = %q, want the config default", *broker)
	}
	if *acct != "111111" {
		t.Errorf("acct = %q, command line must win over config", *acct)
	}
}

func TestApplyConfigMissingFileIsFine(t *testing.T) {
	t.Setenv("OFXGEN_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	f := flag.NewFlagSet("gen", flag.ContinueOnError)
	if err := applyConfig(f, "gen"); err != nil {
		t.Fatal(err)
	}
}
