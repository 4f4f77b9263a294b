package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/hashicorp/hcensor/filter"
	"github.com/hashicorp/hcensor/util"
)

type HCL struct {
	Filter       *Filter       `hcl:"filter,block" json:"filter"`
	Dictionaries []*Dictionary `hcl:"dictionary,block" json:"dictionaries"`
	Cache        *Cache        `hcl:"cache,block" json:"cache"`
}

// Filter carries the engine settings. Optional attributes that have non-zero
// defaults are pointers, so that an absent attribute can be told apart from
// one set to false or zero.
type Filter struct {
	Languages           []string `hcl:"languages"`
	CensorChar          string   `hcl:"censor_char,optional"`
	CensorWholeWords    *bool    `hcl:"censor_whole_words,optional"`
	MaxRelativeDistance *float64 `hcl:"max_relative_distance,optional"`
	DeepAnalysis        *bool    `hcl:"deep_analysis,optional"`
	DataDir             string   `hcl:"data_dir,optional"`
	DictionaryBundle    string   `hcl:"dictionary_bundle,optional"`
}

// Dictionary adjusts the word lists of the language in its label. Extra words
// are appended to the language's base list, custom words replace it, and
// words_file points the spell checker at an ordinary-vocabulary list.
type Dictionary struct {
	Language  string   `hcl:"language,label"`
	Extra     []string `hcl:"extra,optional"`
	Custom    []string `hcl:"custom,optional"`
	WordsFile string   `hcl:"words_file,optional"`
}

type Cache struct {
	Backend  string `hcl:"backend"`
	Size     int    `hcl:"size,optional"`
	RedisURL string `hcl:"redis_url,optional"`
	CAFile   string `hcl:"ca_file,optional"`
	CAPath   string `hcl:"ca_path,optional"`
}

// Parse takes a file path and decodes the file from disk into HCL types.
func Parse(path string) (HCL, error) {
	var h HCL
	err := hclsimple.DecodeFile(path, nil, &h)
	if err != nil {
		return HCL{}, err
	}
	return h, nil
}

// MapFilterConfig maps decoded HCL blocks onto a filter.Config. The mapping
// starts from the package defaults so absent attributes keep their stock
// values, and expands ~-prefixed paths before the filter ever sees them.
// Semantic validation stays with filter.Config.Validate.
func MapFilterConfig(h HCL) (filter.Config, error) {
	cfg := filter.DefaultConfig()

	if f := h.Filter; f != nil {
		var err error
		if len(f.Languages) > 0 {
			cfg.Languages = f.Languages
		}
		if f.CensorChar != "" {
			cfg.CensorChar = f.CensorChar
		}
		if f.CensorWholeWords != nil {
			cfg.CensorWholeWords = *f.CensorWholeWords
		}
		if f.MaxRelativeDistance != nil {
			cfg.MaxRelativeDistance = *f.MaxRelativeDistance
		}
		if f.DeepAnalysis != nil {
			cfg.DeepAnalysis = *f.DeepAnalysis
		}
		if cfg.DataDir, err = util.ExpandPath(f.DataDir); err != nil {
			return filter.Config{}, fmt.Errorf("could not expand data_dir, path=%s, err=%w", f.DataDir, err)
		}
		if cfg.DictionaryBundle, err = util.ExpandPath(f.DictionaryBundle); err != nil {
			return filter.Config{}, fmt.Errorf("could not expand dictionary_bundle, path=%s, err=%w", f.DictionaryBundle, err)
		}
	}

	for _, d := range h.Dictionaries {
		if len(d.Extra) > 0 {
			if cfg.ExtraWords == nil {
				cfg.ExtraWords = make(map[string][]string)
			}
			cfg.ExtraWords[d.Language] = d.Extra
		}
		if len(d.Custom) > 0 {
			if cfg.CustomWords == nil {
				cfg.CustomWords = make(map[string][]string)
			}
			cfg.CustomWords[d.Language] = d.Custom
		}
		if d.WordsFile != "" {
			path, err := util.ExpandPath(d.WordsFile)
			if err != nil {
				return filter.Config{}, fmt.Errorf("could not expand words_file, language=%s, err=%w", d.Language, err)
			}
			if cfg.VocabularyFiles == nil {
				cfg.VocabularyFiles = make(map[string]string)
			}
			cfg.VocabularyFiles[d.Language] = path
		}
	}

	if c := h.Cache; c != nil {
		var err error
		cfg.Cache.Backend = c.Backend
		cfg.Cache.Size = c.Size
		cfg.Cache.RedisURL = c.RedisURL
		if cfg.Cache.CAFile, err = util.ExpandPath(c.CAFile); err != nil {
			return filter.Config{}, fmt.Errorf("could not expand ca_file, path=%s, err=%w", c.CAFile, err)
		}
		if cfg.Cache.CAPath, err = util.ExpandPath(c.CAPath); err != nil {
			return filter.Config{}, fmt.Errorf("could not expand ca_path, path=%s, err=%w", c.CAPath, err)
		}
	}

	return cfg, nil
}
