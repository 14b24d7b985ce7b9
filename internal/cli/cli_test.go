package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/fcblocks/pkg/errors"
)

const testDoc = `<retrieveLevel>
  <levelId>9</levelId>
  <name>Box</name>
  <level>
    <levelBlocks>
      <StaticRectangle>
        <rotation>0</rotation>
        <position><x>10</x><y>20</y></position>
        <width>5</width><height>5</height>
        <goalBlock>false</goalBlock>
        <joints/>
      </StaticRectangle>
    </levelBlocks>
    <playerBlocks>
      <NoSpinWheel id="0">
        <rotation>0</rotation>
        <position><x>1</x><y>2</y></position>
        <width>40</width><height>40</height>
        <goalBlock>true</goalBlock>
        <joints><jointedTo>3</jointedTo></joints>
      </NoSpinWheel>
    </playerBlocks>
  </level>
</retrieveLevel>`

const testArray = "struct fcsim_block blocks[] = {\n" +
	"\t{ GOAL_CIRCLE, 1, 2, 40, 40, 0, { 3, -1 } },\n" +
	"\t{ STAT_RECT, 10, 20, 5, 5, 0, { -1, -1 } },\n" +
	"};\n"

// isolate points every XDG directory at a temp dir and clears overrides.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(envBaseURL, "")
}

type testRun struct {
	out, err bytes.Buffer
}

func execute(t *testing.T, stdin string, args ...string) (*testRun, error) {
	t.Helper()
	r := &testRun{}
	c := New(&r.out, &r.err, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	return r, root.ExecuteContext(context.Background())
}

func newService(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = r.ParseForm()
		if r.PostForm.Get("id") == "404" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	t.Setenv(envBaseURL, srv.URL)
	return srv, &hits
}

func TestConvertStdin(t *testing.T) {
	isolate(t)

	r, err := execute(t, testDoc, "convert", "-")
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, r.err.String())
	}
	if r.out.String() != testArray {
		t.Errorf("stdout =\n%s\nwant\n%s", r.out.String(), testArray)
	}
	if strings.Contains(r.out.String(), "Converted") {
		t.Error("status line leaked to stdout")
	}
	if !strings.Contains(r.err.String(), "Converted 2 blocks") {
		t.Errorf("stderr missing status line:\n%s", r.err.String())
	}
}

func TestConvertFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "design.xml")
	if err := os.WriteFile(path, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := execute(t, "", "convert", "--file", path, "--prefix", "FCSIM_")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := strings.ReplaceAll(testArray, "{ GOAL_", "{ FCSIM_GOAL_")
	want = strings.ReplaceAll(want, "{ STAT_", "{ FCSIM_STAT_")
	if r.out.String() != want {
		t.Errorf("stdout =\n%s\nwant\n%s", r.out.String(), want)
	}
}

func TestConvertRemoteUsesCache(t *testing.T) {
	isolate(t)
	_, hits := newService(t, testDoc)

	for i := 0; i < 2; i++ {
		r, err := execute(t, "", "convert", "--design", "77")
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if r.out.String() != testArray {
			t.Errorf("run %d stdout =\n%s", i, r.out.String())
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("service hit %d times, want 1", got)
	}

	if _, err := execute(t, "", "convert", "--design", "77", "--refresh"); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("service hit %d times after --refresh, want 2", got)
	}
}

func TestConvertNotFound(t *testing.T) {
	isolate(t)
	newService(t, testDoc)

	r, err := execute(t, "", "convert", "--level", "404")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
	if r.out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", r.out.String())
	}
}

func TestConvertSourceSelection(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"none", []string{"convert"}, errors.ErrCodeInvalidInput},
		{"two selectors", []string{"convert", "--level", "1", "--design", "2"}, errors.ErrCodeInvalidInput},
		{"flag and stdin", []string{"convert", "--level", "1", "-"}, errors.ErrCodeInvalidInput},
		{"stray argument", []string{"convert", "design.xml"}, errors.ErrCodeInvalidInput},
		{"bad id", []string{"convert", "--design", "0"}, errors.ErrCodeInvalidID},
		{"bad format", []string{"convert", "-", "--format", "svg"}, errors.ErrCodeInvalidFormat},
		{"bad prefix", []string{"convert", "-", "--prefix", "1X"}, errors.ErrCodeInvalidPrefix},
		{"missing file", []string{"convert", "--file", "/nonexistent/design.xml"}, errors.ErrCodeFileNotFound},
		{"empty stdin", []string{"convert", "-"}, errors.ErrCodeInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdin := testDoc
			if tt.name == "empty stdin" {
				stdin = ""
			}
			r, err := execute(t, stdin, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
			if r.out.Len() != 0 {
				t.Errorf("stdout = %q, want empty", r.out.String())
			}
		})
	}
}

func TestConvertFailureWritesNothing(t *testing.T) {
	isolate(t)
	bad := strings.Replace(testDoc, "<StaticRectangle>", "<Balloon>", 1)
	bad = strings.Replace(bad, "</StaticRectangle>", "</Balloon>", 1)
	out := filepath.Join(t.TempDir(), "blocks.h")

	r, err := execute(t, bad, "convert", "-", "-o", out)
	if !errors.Is(err, errors.ErrCodeUnknownBlockType) {
		t.Fatalf("err = %v, want UNKNOWN_BLOCK_TYPE", err)
	}
	if !strings.Contains(err.Error(), `"Balloon"`) {
		t.Errorf("error does not name the tag: %v", err)
	}
	if r.out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", r.out.String())
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output file exists after failure")
	}
}

func TestConvertOutputFile(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "blocks.h")

	r, err := execute(t, testDoc, "convert", "-", "-o", out)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if r.out.Len() != 0 {
		t.Errorf("stdout = %q, want empty with -o", r.out.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != testArray {
		t.Errorf("file =\n%s", data)
	}
}

func TestConvertJSON(t *testing.T) {
	isolate(t)
	r, err := execute(t, testDoc, "convert", "-", "--format", "json")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	for _, want := range []string{`"name": "Box"`, `"type": "GOAL_CIRCLE"`, `"type_id": 5`} {
		if !strings.Contains(r.out.String(), want) {
			t.Errorf("json output missing %s:\n%s", want, r.out.String())
		}
	}
}

func TestConvertPrefixFromConfig(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("prefix = \"FCSIM_\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := execute(t, testDoc, "--config", cfgPath, "convert", "-")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(r.out.String(), "{ FCSIM_GOAL_CIRCLE,") {
		t.Errorf("config prefix not applied:\n%s", r.out.String())
	}

	r, err = execute(t, testDoc, "--config", cfgPath, "convert", "-", "--prefix", "")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if r.out.String() != testArray {
		t.Errorf("--prefix did not override config:\n%s", r.out.String())
	}
}

func TestFetchPrintsRawXML(t *testing.T) {
	isolate(t)
	newService(t, testDoc)

	r, err := execute(t, "", "fetch", "--level", "9")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if r.out.String() != testDoc {
		t.Errorf("stdout = %q", r.out.String())
	}
}

func TestFetchRejectsLocalInput(t *testing.T) {
	isolate(t)
	if _, err := execute(t, testDoc, "fetch", "-"); err == nil {
		t.Error("fetch accepted stdin")
	}
	if _, err := execute(t, "", "fetch", "--file", "x.xml"); err == nil {
		t.Error("fetch accepted --file")
	}
}

func TestGraphDOT(t *testing.T) {
	isolate(t)
	r, err := execute(t, testDoc, "graph", "-")
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	if !strings.HasPrefix(r.out.String(), "graph G {") {
		t.Errorf("stdout =\n%s", r.out.String())
	}

	if _, err := execute(t, testDoc, "graph", "-", "--format", "c"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("graph --format c: err = %v, want INVALID_FORMAT", err)
	}
}

func TestCacheCommands(t *testing.T) {
	isolate(t)
	newService(t, testDoc)

	r, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	dir := strings.TrimSpace(r.out.String())
	if filepath.Base(dir) != appName {
		t.Errorf("cache path = %q", dir)
	}

	if _, err := execute(t, "", "convert", "--design", "5"); err != nil {
		t.Fatalf("convert: %v", err)
	}
	r, err = execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(r.err.String(), "Cleared 1 cached document") {
		t.Errorf("stderr = %q", r.err.String())
	}
}
