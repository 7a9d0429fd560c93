package triggers

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/assertia/internal/model"
	"gopkg.in/yaml.v3"
)

// RawTrigger is one entry as delivered by a term-list provider
type RawTrigger struct {
	Text     string
	Tag      string // role tag, e.g. "[PREN]" or "pre"; empty means pre
	Possible bool   // explicit possible flag (YAML lists)
	Line     int    // 1-based source line, 0 if unknown
}

// Provider supplies raw trigger entries per category
type Provider interface {
	Entries(category model.Category) ([]RawTrigger, error)
}

//go:embed data/*_triggers.txt
var embedded embed.FS

// fileNames maps categories to the negex-style list names
var fileNames = map[model.Category]string{
	model.CategoryNegated:      "negex",
	model.CategoryExperiencer:  "experiencer",
	model.CategoryHistorical:   "history",
	model.CategoryHypothetical: "hypothetical",
}

// FileName returns the list file name used for a category
func FileName(category model.Category) string {
	return fileNames[category] + "_triggers.txt"
}

// FSProvider reads "<name>_triggers.txt" files, one "phrase\t\t[TAG]" entry per line
type FSProvider struct {
	FS  fs.FS
	Dir string
}

// DirProvider reads trigger lists from a directory on disk
func DirProvider(dir string) *FSProvider {
	return &FSProvider{FS: os.DirFS(dir), Dir: "."}
}

// EmbeddedProvider serves the default lists compiled into the binary
func EmbeddedProvider() *FSProvider {
	return &FSProvider{FS: embedded, Dir: "data"}
}

// Entries reads and splits the list for a category
func (p *FSProvider) Entries(category model.Category) ([]RawTrigger, error) {
	if _, ok := fileNames[category]; !ok {
		return nil, fmt.Errorf("no term list for %s", category)
	}
	name := path.Join(p.Dir, FileName(category))
	data, err := fs.ReadFile(p.FS, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: invalid UTF-8", name)
	}
	return ParseLines(string(data))
}

// ParseLines splits negex-style list content. A trailing newline is allowed,
// lines starting with '#' are comments, any other empty line is an error.
func ParseLines(content string) ([]RawTrigger, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil, nil
	}

	var entries []RawTrigger
	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		text := strings.TrimSpace(fields[0])
		if text == "" {
			return nil, fmt.Errorf("line %d: empty entry", lineNo)
		}

		tag := ""
		for _, f := range fields[1:] {
			if f = strings.TrimSpace(f); f != "" {
				tag = f
			}
		}
		entries = append(entries, RawTrigger{Text: text, Tag: tag, Line: lineNo})
	}
	return entries, nil
}

// YAMLProvider reads every category from a single YAML document:
//
//	negated:
//	  - text: denies
//	    role: pre
//	  - text: possible
//	    role: pre
//	    possible: true
type YAMLProvider struct {
	Path string
}

type yamlEntry struct {
	Text     string `yaml:"text"`
	Role     string `yaml:"role"`
	Possible bool   `yaml:"possible"`
}

// Entries decodes the document and returns the list for one category
func (p *YAMLProvider) Entries(category model.Category) ([]RawTrigger, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.Path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: invalid UTF-8", p.Path)
	}

	var doc map[string][]yamlEntry
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.Path, err)
	}

	var list []yamlEntry
	found := false
	for key, entries := range doc {
		cat, err := model.ParseCategory(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Path, err)
		}
		if cat == category {
			list = append(list, entries...)
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%s: no %s entries", p.Path, category)
	}

	out := make([]RawTrigger, 0, len(list))
	for i, e := range list {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			return nil, fmt.Errorf("%s: %s entry %d: empty text", p.Path, category, i+1)
		}
		out = append(out, RawTrigger{Text: text, Tag: e.Role, Possible: e.Possible})
	}
	return out, nil
}

// NewProvider picks a provider for a configured path: empty uses the
// embedded lists, a .yaml/.yml file uses YAMLProvider, anything else is a directory
func NewProvider(triggerPath string) (Provider, error) {
	if triggerPath == "" {
		return EmbeddedProvider(), nil
	}

	info, err := os.Stat(triggerPath)
	if err != nil {
		return nil, fmt.Errorf("trigger path: %w", err)
	}

	switch {
	case info.IsDir():
		return DirProvider(triggerPath), nil
	case isYAML(triggerPath):
		return &YAMLProvider{Path: triggerPath}, nil
	default:
		return nil, errors.New("trigger path must be a directory or a .yaml file: " + triggerPath)
	}
}

func isYAML(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}
