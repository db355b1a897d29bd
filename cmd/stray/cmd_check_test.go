package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/stray/java/codebase"
)

func analyzed(t *testing.T, files map[string]string) []*codebase.FileInfo {
	t.Helper()
	cb := codebase.New(".")
	for path, src := range files {
		cb.UpdateFile(path, []byte(src))
	}
	return cb.Files()
}

func TestWriteText(t *testing.T) {
	files := analyzed(t, map[string]string{
		"src/A.java": "class A {\n}\nvoid foo() {}\n",
		"src/B.java": "class B {}\n",
	})

	var buf bytes.Buffer
	writeText(&buf, files)

	want := "src/A.java:3:1: error: "
	if !strings.HasPrefix(buf.String(), want) {
		t.Errorf("output = %q, want prefix %q", buf.String(), want)
	}
	if !strings.HasSuffix(buf.String(), "[method-outside-class]\n") {
		t.Errorf("output = %q, want the code suffix", buf.String())
	}
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("got %d lines, want 1", n)
	}
}

func TestWriteJSON(t *testing.T) {
	files := analyzed(t, map[string]string{
		"A.java": "class A {\n}\nint x;\n",
		"B.java": "class B {}\n",
	})

	var buf bytes.Buffer
	if err := writeJSON(&buf, files); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}

	var reports []struct {
		Path        string `json:"path"`
		Diagnostics []struct {
			Code string `json:"code"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal(buf.Bytes(), &reports); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if len(reports) != 1 || reports[0].Path != "A.java" {
		t.Fatalf("reports = %+v", reports)
	}
	if len(reports[0].Diagnostics) != 1 || reports[0].Diagnostics[0].Code != "field-outside-class" {
		t.Errorf("diagnostics = %+v", reports[0].Diagnostics)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, nil); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("output = %q, want []", got)
	}
}
