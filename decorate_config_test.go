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

package decorate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.decorate-lang.org/decorate"
	"go.decorate-lang.org/decorate/internal/testutil"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := decorate.ParseConfig(nil)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, *decorate.DefaultConfig(), *cfg)
}

func TestParseConfig(t *testing.T) {
	cfg, err := decorate.ParseConfig([]byte(`
build_tag: wrap
output_suffix: .wrapped.go
future_package: example.com/promise
receiver_keyword: this
`))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, decorate.Config{
		BuildTag:        "wrap",
		OutputSuffix:    ".wrapped.go",
		FuturePackage:   "example.com/promise",
		ReceiverKeyword: "this",
	}, *cfg)
}

func TestParseConfigPartial(t *testing.T) {
	cfg, err := decorate.ParseConfig([]byte("build_tag: gen\n"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "gen", cfg.BuildTag)
	testutil.ExpectEq(t, decorate.DefaultOutputSuffix, cfg.OutputSuffix)
}

func TestParseConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		yaml string
		want string
	}{
		{"build_tags: gen\n", "field build_tags not found"},
		{"build_tag: \"a b\"\n", "build_tag"},
		{"output_suffix: .txt\n", "output_suffix"},
		{"output_suffix: .go\n", "output_suffix"},
		{"future_package: \"\"\n", "future_package"},
		{"receiver_keyword: self.x\n", "receiver_keyword"},
		{"- a\n", "cannot unmarshal"},
	} {
		_, err := decorate.ParseConfig([]byte(tc.yaml))
		if err == nil {
			t.Errorf("%q: expected error", tc.yaml)
			continue
		}
		testutil.ExpectTrue(t, strings.Contains(err.Error(), tc.want))
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := decorate.DefaultConfig()
	cfg.BuildTag = "wrap"
	src := "//go:build wrap\n\npackage p\n\n//decorate:with a\nfunc F() {}\n"

	out, err := decorate.Generate("p.go", []byte(src), cfg.Options()...)
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, strings.Contains(string(out.Source), "//go:build !wrap"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	testutil.AssertNoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	testutil.AssertNoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/m\n")
	writeFile(t, filepath.Join(root, decorate.ConfigFileName), "build_tag: gen\n")
	pkg := filepath.Join(root, "internal", "pkg")
	testutil.AssertNoError(t, os.MkdirAll(pkg, 0o755))

	path, err := decorate.FindConfig(pkg)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, filepath.Join(root, decorate.ConfigFileName), path)

	cfg, err := decorate.LoadConfig(path)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "gen", cfg.BuildTag)
}

func TestFindConfigStopsAtModuleRoot(t *testing.T) {
	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, decorate.ConfigFileName), "build_tag: gen\n")
	module := filepath.Join(outer, "module")
	writeFile(t, filepath.Join(module, "go.mod"), "module example.com/m\n")

	path, err := decorate.FindConfig(module)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "", path)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := decorate.LoadConfig(filepath.Join(t.TempDir(), decorate.ConfigFileName))
	testutil.ExpectTrue(t, os.IsNotExist(err))
}
