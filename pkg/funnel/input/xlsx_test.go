package input

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/funnel/pkg/errors"
	"github.com/matzehuels/funnel/pkg/funnel"
)

func writeWorkbook(t *testing.T, cells map[string]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for ref, v := range cells {
		if err := f.SetCellValue("Sheet1", ref, v); err != nil {
			t.Fatalf("SetCellValue(%s): %v", ref, err)
		}
	}

	path := filepath.Join(t.TempDir(), "funnel.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeWorkbook(t, map[string]any{
		"A1": "Step", "B1": "Users",
		"A2": "did a thing", "B2": 100,
		"A3": "did another thing", "B3": 80,
		"A5": "did something good", "B5": 60,
	})

	pts, err := ReadXLSX(path, "")
	if err != nil {
		t.Fatalf("ReadXLSX failed: %v", err)
	}

	want := []funnel.DataPoint{
		funnel.Step{Name: "did a thing", Count: 100},
		funnel.Step{Name: "did another thing", Count: 80},
		funnel.Blank{},
		funnel.Step{Name: "did something good", Count: 60},
	}
	if len(pts) != len(want) {
		t.Fatalf("Expected %d points, got %d: %v", len(want), len(pts), pts)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("pts[%d] = %#v, want %#v", i, pts[i], want[i])
		}
	}
}

func TestReadXLSXWithoutHeader(t *testing.T) {
	path := writeWorkbook(t, map[string]any{
		"A1": "top", "B1": 10,
		"A2": "bottom", "B2": 4,
	})

	pts, err := Load(path, "Sheet1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(pts))
	}
}

func TestReadXLSXBadCount(t *testing.T) {
	path := writeWorkbook(t, map[string]any{
		"A1": "top", "B1": 10,
		"A2": "bottom", "B2": "lots",
	})

	_, err := ReadXLSX(path, "")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("ReadXLSX() error = %v, want INVALID_INPUT", err)
	}
}

func TestReadXLSXMissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("ReadXLSX() error = %v, want FILE_NOT_FOUND", err)
	}
}
