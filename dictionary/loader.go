package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mholt/archiver"
)

// WordsFileSuffix names the per-language word list files inside a data
// directory, e.g. en_profane_words.txt.
const WordsFileSuffix = "_profane_words.txt"

// Loader reads per-language profane word lists from disk.
type Loader struct {
	l hclog.Logger
}

// NewLoader returns a Loader that logs through logger.
func NewLoader(logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Loader{l: logger}
}

// ReadWords collects one word per line from r. Words are lowercased and
// trimmed, blank lines are dropped, and file order is preserved.
func ReadWords(r io.Reader) (*Set, error) {
	set := NewSet()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		set.Add(word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadFile reads a single word list file.
func (ld *Loader) LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("reading word list %q: %w", path, err)
	}
	ld.l.Debug("Loaded word list", "path", path, "words", set.Len())
	return set, nil
}

// LoadDir loads the base word list for each language from dir, looking for
// <language>_profane_words.txt. Languages without a file are skipped rather
// than treated as errors, since a data directory rarely covers every
// configured language.
func (ld *Loader) LoadDir(dir string, languages []string) (map[string]*Set, error) {
	sets := make(map[string]*Set)
	for _, lang := range languages {
		path := filepath.Join(dir, lang+WordsFileSuffix)
		set, err := ld.LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			ld.l.Debug("No word list for language", "language", lang, "path", path)
			continue
		}
		if err != nil {
			return nil, err
		}
		sets[lang] = set
	}
	return sets, nil
}

// LoadBundle extracts a dictionary archive into a temporary directory and
// loads word lists for languages from it. The archive format is detected
// from the file name, covering the formats archiver understands (tar.gz,
// zip, and friends).
func (ld *Loader) LoadBundle(bundle string, languages []string) (map[string]*Set, error) {
	tmp, err := os.MkdirTemp("", "hcensor-dictionary")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	if err := archiver.Unarchive(bundle, tmp); err != nil {
		return nil, fmt.Errorf("extracting dictionary bundle %q: %w", bundle, err)
	}
	ld.l.Info("Extracted dictionary bundle", "bundle", bundle)
	return ld.LoadDir(tmp, languages)
}
