package nlp

// Run is a stretch of text attributed to a single language.
type Run struct {
	Language string
	Text     string
}

// Segmenter splits mixed-language text into single-language runs. With one
// configured language the whole text is a single run. Otherwise the text is
// halved recursively at word boundaries, classified at the leaves, and
// adjacent runs of the same language are merged back together.
type Segmenter struct {
	languages []string
	detector  Detector
	boundary  *RuneTokenizer
}

// NewSegmenter builds a Segmenter. A nil detector pins every run to the
// first language.
func NewSegmenter(languages []string, detector Detector) *Segmenter {
	s := &Segmenter{
		languages: append([]string(nil), languages...),
		detector:  detector,
		boundary:  NewRuneTokenizer(),
	}
	if s.detector == nil {
		s.detector = StaticDetector{Language: s.defaultLanguage()}
	}
	return s
}

// Segment splits text into language runs. Concatenating the runs' Text in
// order reproduces text exactly.
func (s *Segmenter) Segment(text string) []Run {
	if text == "" {
		return nil
	}
	if len(s.languages) <= 1 {
		return []Run{{Language: s.defaultLanguage(), Text: text}}
	}
	return mergeRuns(s.split(text))
}

// split recurses on the halves of text, cutting at the token boundary
// closest to the middle, and classifies pieces too small to halve.
func (s *Segmenter) split(text string) []Run {
	pieces := s.boundary.Tokenize("", text)
	if len(pieces) <= 1 {
		return []Run{{Language: s.detector.Detect(text), Text: text}}
	}
	cut := pieces[len(pieces)/2].Start
	return append(s.split(text[:cut]), s.split(text[cut:])...)
}

func (s *Segmenter) defaultLanguage() string {
	if len(s.languages) == 0 {
		return ""
	}
	return s.languages[0]
}

func mergeRuns(runs []Run) []Run {
	var merged []Run
	for _, run := range runs {
		if n := len(merged); n > 0 && merged[n-1].Language == run.Language {
			merged[n-1].Text += run.Text
			continue
		}
		merged = append(merged, run)
	}
	return merged
}
