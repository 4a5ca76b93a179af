package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/funnel/pkg/cache"
	"github.com/matzehuels/funnel/pkg/funnel"
	"github.com/matzehuels/funnel/pkg/pipeline"
)

func TestSummaryTable(t *testing.T) {
	rows := pipeline.Summarize([]funnel.DataPoint{
		funnel.Step{Name: "Visited", Count: 1000},
		funnel.Blank{},
		funnel.Step{Name: "Paid", Count: 80},
	})
	out := summaryTable(rows)

	for _, want := range []string{"Step", "Of previous", "Visited", "1,000", "(blank)", "Paid", "8%"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "of top") {
		t.Errorf("percentages should drop their suffix:\n%s", out)
	}
}

func TestTrimOf(t *testing.T) {
	tests := map[string]string{
		"80% of top":       "80%",
		"NaN% of previous": "NaN%",
		"":                 "",
	}
	for in, want := range tests {
		if got := trimOf(in); got != want {
			t.Errorf("trimOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	in := writeInput(t, sampleInput)
	if err := execute(t, "validate", in); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := execute(t, "validate", in, "--json"); err != nil {
		t.Fatalf("validate --json: %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"name":"","count":1}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "validate", bad); err == nil {
		t.Error("expected error for empty step name")
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("cacheDir() = %q", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if dir, _ := cacheDir(); dir != filepath.Join(home, ".cache", appName) {
		t.Errorf("cacheDir() without XDG = %q", dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	in := writeInput(t, sampleInput)
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	c := New(os.Stderr, LogInfo)
	runner, err := c.newRunner(false)
	if err != nil {
		t.Fatal(err)
	}
	points, err := pipeline.Load(t.Context(), in, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := runner.Render(t.Context(), points, pipeline.Options{Formats: []string{"svg"}}); err != nil {
		t.Fatal(err)
	}

	entries, _ := os.ReadDir(filepath.Join(cacheHome, appName))
	if len(entries) == 0 {
		t.Fatal("expected cached artifacts before clear")
	}

	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	fc, ok := runner.Cache.(*cache.FileCache)
	if !ok {
		t.Fatalf("runner cache is %T, want *cache.FileCache", runner.Cache)
	}
	if n, _ := fc.Clear(); n != 0 {
		t.Errorf("%d entries left after clear", n)
	}
}
