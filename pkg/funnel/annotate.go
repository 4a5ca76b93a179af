package funnel

// Annotate attaches absolute and relative proportions to every step in pts.
//
// The result has the same length as pts and keeps blanks at their positions.
// Counts are not validated: a zero first count yields NaN or +Inf proportions,
// and a count larger than an earlier one yields a proportion above 1.
func Annotate(pts []DataPoint) []Row {
	rows := make([]Row, len(pts))

	var (
		first, preceding         int64
		haveFirst, havePreceding bool
	)
	for i, p := range pts {
		switch p := p.(type) {
		case Blank:
			rows[i] = p
		case Step:
			if !haveFirst {
				first, haveFirst = p.Count, true
			}
			row := AnnotatedStep{
				Step:     p,
				Absolute: ratio(p.Count, first),
			}
			if havePreceding {
				r := ratio(p.Count, preceding)
				row.Relative = &r
			}
			preceding, havePreceding = p.Count, true
			rows[i] = row
		}
	}
	return rows
}

// TopCount returns the first step's count, or 0 when pts holds no step.
func TopCount(pts []DataPoint) int64 {
	for _, p := range pts {
		if s, ok := p.(Step); ok {
			return s.Count
		}
	}
	return 0
}

func ratio(n, d int64) float64 {
	return float64(n) / float64(d)
}
