package nlp

import (
	"unicode"
)

// Detector guesses the language of a piece of text.
type Detector interface {
	Detect(text string) string
}

// StaticDetector always answers with one language.
type StaticDetector struct {
	Language string
}

// Detect returns the configured language.
func (d StaticDetector) Detect(string) string { return d.Language }

// scriptsByLanguage names the unicode script each supported language is
// usually written in.
var scriptsByLanguage = map[string]string{
	"ar": "Arabic",
	"de": "Latin",
	"el": "Greek",
	"en": "Latin",
	"es": "Latin",
	"fr": "Latin",
	"he": "Hebrew",
	"hi": "Devanagari",
	"it": "Latin",
	"ja": "Hiragana",
	"ko": "Hangul",
	"nl": "Latin",
	"pt": "Latin",
	"ru": "Cyrillic",
	"uk": "Cyrillic",
	"zh": "Han",
}

// ScriptDetector guesses a language from the dominant unicode script among
// the text's letters. It can only separate configured languages written in
// different scripts; ties go to the earliest configured language.
type ScriptDetector struct {
	languages []string
	tables    map[string]*unicode.RangeTable
}

// NewScriptDetector builds a detector over languages. The first language is
// the fallback when no script stands out.
func NewScriptDetector(languages []string) *ScriptDetector {
	d := &ScriptDetector{
		languages: append([]string(nil), languages...),
		tables:    make(map[string]*unicode.RangeTable, len(languages)),
	}
	for _, lang := range languages {
		if script, ok := scriptsByLanguage[lang]; ok {
			d.tables[lang] = unicode.Scripts[script]
		}
	}
	return d
}

// Detect returns the configured language whose script covers the most
// letters of text.
func (d *ScriptDetector) Detect(text string) string {
	if len(d.languages) == 0 {
		return ""
	}
	best := d.languages[0]
	bestCount := 0
	for _, lang := range d.languages {
		table, ok := d.tables[lang]
		if !ok {
			continue
		}
		count := 0
		for _, r := range text {
			if unicode.Is(table, r) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = lang, count
		}
	}
	return best
}
