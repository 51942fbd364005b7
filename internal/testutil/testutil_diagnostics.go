// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package testutil

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"testing"
)

// TestdataFS opens the repository's top-level testdata directory.
func TestdataFS() (fs.FS, error) {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return nil, errors.New("testutil: unable to locate testdata")
	}
	root := filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}
	return os.DirFS(root), nil
}

// Diagnostic is one entry of a diagnostics catalogue such as
// testdata/diagnostics/syntax_errors.json.
type Diagnostic struct {
	Key     string
	Code    uint32
	Message string
	Pattern *regexp.Regexp
}

func LoadDiagnostics(testdata fs.FS, name string) (map[string]*Diagnostic, error) {
	type raw struct {
		Code    uint32 `json:"code"`
		Message string `json:"message"`
		Pattern string `json:"message_pattern"`
	}

	jsonData, err := fs.ReadFile(testdata, fmt.Sprintf("diagnostics/%s.json", name))
	if err != nil {
		return nil, err
	}

	var rawDiags map[string]raw
	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()
	if err := decoder.Decode(&rawDiags); err != nil {
		return nil, err
	}

	out := make(map[string]*Diagnostic, len(rawDiags))
	codes := make(map[uint32]struct{}, len(rawDiags))
	for key, raw := range rawDiags {
		if key[0] == '_' {
			if raw.Code != 0 {
				if _, conflict := codes[raw.Code]; conflict {
					return nil, fmt.Errorf("duplicate %s code %d", name, raw.Code)
				}
				codes[raw.Code] = struct{}{}
			}
			continue
		}

		if raw.Code == 0 {
			return nil, fmt.Errorf("%s %q has no code", name, key)
		}
		if _, conflict := codes[raw.Code]; conflict {
			return nil, fmt.Errorf("duplicate %s code %d", name, raw.Code)
		}
		codes[raw.Code] = struct{}{}

		var pattern *regexp.Regexp
		if raw.Pattern != "" {
			pattern, err = regexp.Compile("(?i)" + raw.Pattern)
			if err != nil {
				return nil, err
			}
		}
		out[key] = &Diagnostic{
			Key:     key,
			Code:    raw.Code,
			Message: raw.Message,
			Pattern: pattern,
		}
	}

	return out, nil
}

// ExpectMessage checks a diagnostic message against the catalogue entry.
func (d *Diagnostic) ExpectMessage(t *testing.T, message string) {
	t.Helper()
	if d.Pattern != nil {
		ExpectMatch(t, d.Pattern, message)
	} else if d.Message != "" {
		ExpectEq(t, d.Message, message)
	}
}

// ExpectedDiagnostic is a diagnostic a compile test expects at a
// "line:col" position in its input file.
type ExpectedDiagnostic struct {
	Diagnostic
	Line   int
	Column int
}

func (d *ExpectedDiagnostic) Position() string {
	return fmt.Sprintf("%d:%d", d.Line, d.Column)
}

func LoadExpectedDiagnostics(
	t *testing.T,
	catalogue map[string]*Diagnostic,
	testdata fs.FS,
	jsonPath string,
) []*ExpectedDiagnostic {
	t.Helper()

	jsonData, err := fs.ReadFile(testdata, jsonPath)
	if err != nil {
		t.Fatal(err)
	}

	var raw struct {
		Diagnostics []struct {
			Name     string `json:"name"`
			Position string `json:"position"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		t.Fatal(err)
	}

	var out []*ExpectedDiagnostic
	for _, raw := range raw.Diagnostics {
		diag, ok := catalogue[raw.Name]
		if !ok {
			t.Fatalf("unknown diagnostic name %q", raw.Name)
		}
		expected := &ExpectedDiagnostic{Diagnostic: *diag}
		if _, err := fmt.Sscanf(raw.Position, "%d:%d", &expected.Line, &expected.Column); err != nil {
			t.Fatalf("invalid position %q for %q: %v", raw.Position, raw.Name, err)
		}
		out = append(out, expected)
	}

	slices.SortFunc(out, func(a, b *ExpectedDiagnostic) int {
		if x := cmp.Compare(a.Line, b.Line); x != 0 {
			return x
		}
		if x := cmp.Compare(a.Column, b.Column); x != 0 {
			return x
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return out
}
