package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/matzehuels/funnel/pkg/funnel"
	"github.com/matzehuels/funnel/pkg/funnel/input"
	"github.com/matzehuels/funnel/pkg/observability"
)

// Load reads and validates the points in path (JSON or .xlsx).
func Load(ctx context.Context, path, sheet string) ([]funnel.DataPoint, error) {
	start := time.Now()
	points, err := input.Load(path, sheet)
	observability.Pipeline().OnLoad(ctx, path, len(points), time.Since(start), err)
	return points, err
}

// Decode reads and validates JSON points from r.
func Decode(ctx context.Context, r io.Reader) ([]funnel.DataPoint, error) {
	start := time.Now()
	points, err := input.ParseJSON(r)
	if err == nil {
		err = input.Validate(points)
	}
	observability.Pipeline().OnLoad(ctx, "request", len(points), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return points, nil
}
