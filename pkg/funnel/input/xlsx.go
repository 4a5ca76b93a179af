package input

import (
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/funnel/pkg/errors"
	"github.com/matzehuels/funnel/pkg/funnel"
)

// ReadXLSX reads steps from a spreadsheet.
//
// Column A holds the step name and column B the count. A row whose name and
// count cells are both empty is a blank. A first row whose count cell is not
// a number is treated as a header and skipped. Trailing empty rows are
// dropped. When sheet is empty the first sheet of the workbook is used.
func ReadXLSX(path, sheet string) ([]funnel.DataPoint, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "input file not found: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open workbook %s", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read sheet %q", sheet)
	}
	return rowsToPoints(rows)
}

func rowsToPoints(rows [][]string) ([]funnel.DataPoint, error) {
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}
	for len(rows) > 0 && isEmptyRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	pts := make([]funnel.DataPoint, 0, len(rows))
	for i, row := range rows {
		if isEmptyRow(row) {
			pts = append(pts, funnel.Blank{})
			continue
		}
		name, count := cell(row, 0), cell(row, 1)
		if count == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "element %d: missing count for %q", i, name)
		}
		n, err := strconv.ParseInt(strings.ReplaceAll(count, ",", ""), 10, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "element %d: count %q is not an integer", i, count)
		}
		pts = append(pts, funnel.Step{Name: name, Count: n})
	}
	return pts, nil
}

func isHeader(row []string) bool {
	count := cell(row, 1)
	if count == "" {
		return false
	}
	_, err := strconv.ParseInt(strings.ReplaceAll(count, ",", ""), 10, 64)
	return err != nil
}

func isEmptyRow(row []string) bool {
	return cell(row, 0) == "" && cell(row, 1) == ""
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
