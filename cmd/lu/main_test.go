package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execLu runs the CLI in-process and returns stdout, stderr and the exit
// code main would use.
func execLu(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--color", "off"}, args...))
	if err := root.Execute(); err != nil {
		code = exitCodeFor(err, root)
	}
	return out.String(), errOut.String(), code
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name   string
		src    string
		code   int
		stdout string
		stderr string
	}{
		{"ok", "a: int32 = 1\nb: int32 = 2\n$i32add(a, b)\n$i32print(a)\n", 0, ">>\n3", ""},
		{"parse", "a = \n", exitParseFail, "", "SYN2004"},
		{"analyze", "a: bool = 1\n", exitAnalyzeFail, "", "SEM3010"},
		{"lower", "a: int32 = 1\n$i32print(b = a)\n", exitLowerFail, "", "LOW4010"},
		{"runtime", "a: int32\n$i32print(a)\n", exitRunFail, ">>\n", "panic VM1001"},
	}
	for _, tc := range cases {
		path := writeSource(t, dir, tc.name+".lu", tc.src)
		stdout, stderr, code := execLu(t, "run", "--no-cache", path)
		if code != tc.code {
			t.Errorf("%s: exit %d, want %d (stderr %q)", tc.name, code, tc.code, stderr)
			continue
		}
		if stdout != tc.stdout {
			t.Errorf("%s: stdout %q, want %q", tc.name, stdout, tc.stdout)
		}
		if !strings.Contains(stderr, tc.stderr) {
			t.Errorf("%s: stderr %q lacks %q", tc.name, stderr, tc.stderr)
		}
	}
}

func TestRunQuietAndCache(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.lu", "x: bool = true\n$bprint(x)\n")
	for range 2 {
		stdout, stderr, code := execLu(t, "--quiet", "run", path)
		if code != 0 || stdout != "true" {
			t.Fatalf("exit %d stdout %q stderr %q", code, stdout, stderr)
		}
	}
}

func TestInitThenRunFromManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")
	stdout, _, code := execLu(t, "init", dir)
	if code != 0 || !strings.Contains(stdout, "lu.toml") {
		t.Fatalf("init: exit %d, %q", code, stdout)
	}
	if _, _, code := execLu(t, "init", dir); code == 0 {
		t.Fatalf("second init must fail")
	}

	t.Chdir(dir)
	stdout, stderr, code := execLu(t, "run", "--no-cache")
	if code != 0 || stdout != ">>\n42" {
		t.Fatalf("run: exit %d stdout %q stderr %q", code, stdout, stderr)
	}
}

func TestRunWithoutManifest(t *testing.T) {
	t.Chdir(t.TempDir())
	_, stderr, code := execLu(t, "run")
	if code != 1 || !strings.Contains(stderr, "no lu.toml found") {
		t.Fatalf("exit %d stderr %q", code, stderr)
	}
}

func TestBuildThenExec(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "prog.lu", "c: ascii = \"z\"\n$asciiprint(c)\n")
	out := filepath.Join(dir, "prog.lub")

	if _, stderr, code := execLu(t, "build", src, "-o", out); code != 0 {
		t.Fatalf("build: exit %d stderr %q", code, stderr)
	}
	stdout, stderr, code := execLu(t, "exec", out)
	if code != 0 || stdout != "z" {
		t.Fatalf("exec: exit %d stdout %q stderr %q", code, stdout, stderr)
	}

	listing, _, code := execLu(t, "build", "--emit", "text", src)
	if code != 0 || !strings.HasSuffix(listing, "halt\n") || !strings.Contains(listing, "intrinsic asciiprint op=c") {
		t.Fatalf("text listing: %q", listing)
	}

	garbage := writeSource(t, dir, "bad.lub", "not msgpack")
	if _, _, code := execLu(t, "exec", garbage); code != 1 {
		t.Fatalf("exec of garbage must fail, got %d", code)
	}
}

func TestDiagJSON(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "good.lu", "a = 1\n")
	writeSource(t, dir, "bad.lu", "b: banana\n")

	stdout, _, code := execLu(t, "diag", "--format", "json", "--ui", "off", dir)
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	var report []struct {
		File        string `json:"file"`
		Failed      string `json:"failed_stage"`
		Diagnostics []struct {
			Code string `json:"code"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if len(report) != 2 || !strings.HasSuffix(report[0].File, "bad.lu") {
		t.Fatalf("report = %+v", report)
	}
	if report[0].Failed != "sema" || report[0].Diagnostics[0].Code != "SEM3030" {
		t.Fatalf("bad.lu = %+v", report[0])
	}
	if report[1].Failed != "" || len(report[1].Diagnostics) != 0 {
		t.Fatalf("good.lu = %+v", report[1])
	}
}

func TestDiagStagesStopEarly(t *testing.T) {
	path := writeSource(t, t.TempDir(), "x.lu", "b: banana\n")
	stdout, _, code := execLu(t, "diag", "--stages", "parse", "--ui", "off", path)
	if code != 0 || !strings.Contains(stdout, "0 error(s)") {
		t.Fatalf("exit %d stdout %q", code, stdout)
	}
	if _, _, code := execLu(t, "diag", "--stages", "run", path); code != 1 {
		t.Fatalf("run is not a diag stage")
	}
}

func TestParseFormats(t *testing.T) {
	path := writeSource(t, t.TempDir(), "p.lu", "a = 1\n")
	tree, _, code := execLu(t, "parse", path)
	if code != 0 || !strings.HasPrefix(tree, "unit 0:") {
		t.Fatalf("tree: exit %d %q", code, tree)
	}
	js, _, code := execLu(t, "parse", "--format", "json", path)
	if code != 0 || !json.Valid([]byte(js)) {
		t.Fatalf("json: exit %d %q", code, js)
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, code := execLu(t, "version", "--format", "json")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil || payload.Tool != "lu" || payload.Version == "" {
		t.Fatalf("payload %+v, %v", payload, err)
	}
}

func TestManifestFatalLevelDefault(t *testing.T) {
	dir := t.TempDir()
	manifest := "[package]\nname = \"m\"\n\n[run]\nmain = \"main.lu\"\n\n[diagnostics]\nfatal_level = \"never\"\n"
	writeSource(t, dir, "lu.toml", manifest)
	writeSource(t, dir, "main.lu", "a: bool = 1\nb: banana\n")

	_, stderr, code := execLu(t, "run", "--no-cache", filepath.Join(dir, "main.lu"))
	if code != exitAnalyzeFail {
		t.Fatalf("exit %d", code)
	}
	// с fatal_level = never анализ продолжается после первой ошибки
	if !strings.Contains(stderr, "SEM3010") || !strings.Contains(stderr, "SEM3030") {
		t.Fatalf("expected both diagnostics, got %q", stderr)
	}
}

func TestExitCodeForInternal(t *testing.T) {
	root := newRootCmd()
	var errOut bytes.Buffer
	root.SetErr(&errOut)
	if got := exitCodeFor(exitWith(3), root); got != 3 {
		t.Fatalf("exitWith(3) -> %d", got)
	}
	if got := exitCodeFor(errors.New("boom"), root); got != 1 || !strings.Contains(errOut.String(), "error: boom") {
		t.Fatalf("plain error -> %d %q", got, errOut.String())
	}
}

func TestTraceFlagWritesEvents(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "t.lu", "a: int32 = 7\n$i32print(a)\n")
	tracePath := filepath.Join(dir, "trace.ndjson")

	stdout, stderr, code := execLu(t, "--trace", tracePath, "--trace-level", "phase", "run", "--no-cache", path)
	if code != 0 || stdout != ">>\n7" {
		t.Fatalf("exit %d stdout %q stderr %q", code, stdout, stderr)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"name":"compile"`, `"name":"sema"`, `"name":"lower"`, `"name":"vm"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("trace lacks %s:\n%s", want, data)
		}
	}
}

func TestProfileFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "p.lu", "a = 1\n")
	cpu := filepath.Join(dir, "cpu.pprof")
	if _, stderr, code := execLu(t, "--cpu-profile", cpu, "diag", "--ui", "off", path); code != 0 {
		t.Fatalf("exit %d stderr %q", code, stderr)
	}
	if st, err := os.Stat(cpu); err != nil || st.Size() == 0 {
		t.Fatalf("cpu profile missing: %v", err)
	}
}
