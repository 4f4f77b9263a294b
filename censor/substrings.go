package censor

// Span is one contiguous candidate inside a token. Start and End are rune
// offsets into the token, half-open.
type Span struct {
	Text  string
	Start int
	End   int
}

type interval struct {
	start, end int
}

// contains reports whether [start, end) lies fully inside the interval.
func (iv interval) contains(start, end int) bool {
	return start >= iv.start && end <= iv.end
}

// Substrings enumerates every contiguous substring of a token, longest
// first and rightmost first within each length. Spans consisting entirely
// of the censor character are skipped, as are spans fully contained in an
// interval the consumer has suppressed since the enumeration began.
type Substrings struct {
	runes      []rune
	censorChar rune
	length     int
	start      int
	suppressed []interval
}

// NewSubstrings returns an enumerator over the substrings of s. The censor
// character identifies spans that are already fully masked.
func NewSubstrings(s string, censorChar rune) *Substrings {
	runes := []rune(s)
	return &Substrings{
		runes:      runes,
		censorChar: censorChar,
		length:     len(runes),
		start:      0,
	}
}

// Next returns the next candidate span. The second return value is false
// once the enumeration is exhausted.
func (s *Substrings) Next() (Span, bool) {
	for s.length >= 1 {
		for s.start >= 0 {
			start := s.start
			s.start--
			end := start + s.length
			if s.isSuppressed(start, end) || s.isFullyMasked(start, end) {
				continue
			}
			return Span{Text: string(s.runes[start:end]), Start: start, End: end}, true
		}
		s.length--
		s.start = len(s.runes) - s.length
	}
	return Span{}, false
}

// Suppress marks [start, end) as resolved. Spans fully contained in the
// interval are skipped for the remainder of the enumeration. Spans that
// merely overlap it are still emitted, since they may hold profanity
// outside the resolved region.
func (s *Substrings) Suppress(start, end int) {
	s.suppressed = append(s.suppressed, interval{start: start, end: end})
}

func (s *Substrings) isSuppressed(start, end int) bool {
	for _, iv := range s.suppressed {
		if iv.contains(start, end) {
			return true
		}
	}
	return false
}

func (s *Substrings) isFullyMasked(start, end int) bool {
	for _, r := range s.runes[start:end] {
		if r != s.censorChar {
			return false
		}
	}
	return true
}
