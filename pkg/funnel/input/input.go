// Package input reads and validates funnel chart input.
//
// Two sources are supported: a JSON array (see [ParseJSON]) and a spreadsheet
// (see [ReadXLSX]). Both produce the ordered []funnel.DataPoint consumed by the
// renderer. [Validate] applies the ordering rules the renderer relies on:
// names are non-empty, counts are non-negative and never increase from one
// step to the next (blanks are skipped).
//
// Every validation failure is an *errors.Error with code INVALID_INPUT whose
// message names the zero-based index of the offending element.
package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/funnel/pkg/errors"
	"github.com/matzehuels/funnel/pkg/funnel"
)

// element is the JSON shape of one array entry.
type element struct {
	Blank bool         `json:"blank"`
	Name  *string      `json:"name"`
	Count *json.Number `json:"count"`
}

// ParseJSON decodes a JSON array of steps and blanks.
//
// Accepted elements:
//
//	{"name": "visited", "count": 1200}
//	{"blank": true}
//	null
//
// ParseJSON checks shape only; call [Validate] for the ordering rules.
func ParseJSON(r io.Reader) ([]funnel.DataPoint, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "input must be a JSON array")
	}

	pts := make([]funnel.DataPoint, 0, len(raw))
	for i, msg := range raw {
		p, err := decodeElement(msg)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "element %d: %s", i, errors.UserMessage(err))
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func decodeElement(msg json.RawMessage) (funnel.DataPoint, error) {
	if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return funnel.Blank{}, nil
	}

	var el element
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&el); err != nil {
		return nil, fmt.Errorf("must be a step object or a blank: %w", err)
	}

	if el.Blank {
		if el.Name != nil || el.Count != nil {
			return nil, fmt.Errorf("a blank cannot carry a name or count")
		}
		return funnel.Blank{}, nil
	}
	if el.Name == nil {
		return nil, fmt.Errorf("missing \"name\"")
	}
	if el.Count == nil {
		return nil, fmt.Errorf("missing \"count\"")
	}
	count, err := el.Count.Int64()
	if err != nil {
		return nil, fmt.Errorf("count %s is not an integer", el.Count.String())
	}
	return funnel.Step{Name: *el.Name, Count: count}, nil
}

// Validate checks names and the monotonicity of counts.
//
// Counts of steps, read in order and ignoring blanks, must be non-negative
// and non-increasing. An input with no step at all is valid and renders as an
// empty chart.
func Validate(pts []funnel.DataPoint) error {
	var (
		prev     int64
		prevIdx  int
		havePrev bool
	)
	for i, p := range pts {
		s, ok := p.(funnel.Step)
		if !ok {
			continue
		}
		if err := errors.ValidateStepName(s.Name); err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "step %d: %s", i, errors.UserMessage(err))
		}
		if s.Count < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "step %d (%q): count %d is negative", i, s.Name, s.Count)
		}
		if havePrev && s.Count > prev {
			return errors.New(errors.ErrCodeInvalidInput,
				"step %d (%q): count %d exceeds count %d of step %d", i, s.Name, s.Count, prev, prevIdx)
		}
		prev, prevIdx, havePrev = s.Count, i, true
	}
	return nil
}

// Load reads and validates the input file at path. Files ending in .xlsx are
// read as spreadsheets from sheet (the first sheet when empty); anything else
// is parsed as JSON.
func Load(path, sheet string) ([]funnel.DataPoint, error) {
	var (
		pts []funnel.DataPoint
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		pts, err = ReadXLSX(path, sheet)
	} else {
		pts, err = readJSONFile(path)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(pts); err != nil {
		return nil, err
	}
	return pts, nil
}

func readJSONFile(path string) ([]funnel.DataPoint, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "input file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseJSON(f)
}

// EncodeJSON encodes pts in the format accepted by [ParseJSON].
func EncodeJSON(pts []funnel.DataPoint) ([]byte, error) {
	out := make([]any, len(pts))
	for i, p := range pts {
		switch p := p.(type) {
		case funnel.Step:
			out[i] = p
		case funnel.Blank:
			out[i] = map[string]bool{"blank": true}
		}
	}
	return json.Marshal(out)
}
