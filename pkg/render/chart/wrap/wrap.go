// Package wrap breaks label text into lines that fit a pixel width.
package wrap

import "strings"

// Measurer reports the pixel width of one line of text at a font size.
type Measurer interface {
	Width(text string, size float64) float64
}

// Result is the outcome of wrapping.
type Result struct {
	Lines []string
	// HasOverflow is set when at least one word is wider than the limit on
	// its own, so no wrapping can honor the width.
	HasOverflow bool
}

// Wrap greedily packs the space-separated words of text into lines no wider
// than maxWidth at size.
//
// Words are split on ASCII space only and are never broken or hyphenated. A
// word wider than maxWidth gets a line of its own. Joining the lines with
// single spaces gives back text.
func Wrap(m Measurer, text string, size, maxWidth float64) Result {
	var (
		res     Result
		current string
		started bool
	)
	for _, word := range strings.Split(text, " ") {
		candidate := word
		if started {
			candidate = current + " " + word
		}
		if m.Width(candidate, size) <= maxWidth {
			current, started = candidate, true
			continue
		}

		if started {
			res.Lines = append(res.Lines, current)
			if m.Width(word, size) <= maxWidth {
				current = word
				continue
			}
		}
		res.Lines = append(res.Lines, word)
		res.HasOverflow = true
		current, started = "", false
	}
	if started {
		res.Lines = append(res.Lines, current)
	}
	return res
}

// Block wraps each of texts and concatenates the lines in order.
func Block(m Measurer, texts []string, size, maxWidth float64) Result {
	var res Result
	for _, t := range texts {
		r := Wrap(m, t, size, maxWidth)
		res.Lines = append(res.Lines, r.Lines...)
		res.HasOverflow = res.HasOverflow || r.HasOverflow
	}
	return res
}
