// Package catalog loads error-template catalogues from TOML files and
// registers them into a faultline System.
//
// Catalogue format:
//
//	[templates.file_save_failed]
//	pattern = "Failed to save file {path}"
//	severity = "error"
//	category = "file"
//
//	[[templates.file_save_failed.suggestions]]
//	id = "retry_save"
//	title = "Retry the save"
//	action = "retry_save"
//	priority = 1
//	automatic = true
package catalog

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/faultline-dev/faultline/pkg/faultline"
)

// Entry is one template definition as declared in a catalogue file.
type Entry struct {
	Pattern     string            `toml:"pattern"`
	Severity    string            `toml:"severity"`
	Category    string            `toml:"category"`
	Suggestions []SuggestionEntry `toml:"suggestions"`
}

// SuggestionEntry is one suggestion definition in a catalogue file.
type SuggestionEntry struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Action      string `toml:"action"`
	Priority    int    `toml:"priority"`
	Automatic   bool   `toml:"automatic"`
}

// Catalog is a parsed, validated catalogue.
type Catalog struct {
	Templates map[string]faultline.Template
}

type catalogFile struct {
	Templates map[string]Entry `toml:"templates"`
}

// Problem describes one validation failure in a catalogue, addressable by
// template key.
type Problem struct {
	Key string
	Msg string
}

func (p Problem) String() string {
	return fmt.Sprintf("templates.%s: %s", p.Key, p.Msg)
}

// Load parses and validates the catalogue at path.
func Load(path string) (Catalog, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return Catalog{}, errors.Wrapf(err, "%s: parse catalogue", path)
	}
	return build(file)
}

// Parse parses and validates catalogue TOML from memory.
func Parse(data string) (Catalog, error) {
	var file catalogFile
	if _, err := toml.Decode(data, &file); err != nil {
		return Catalog{}, errors.Wrap(err, "parse catalogue")
	}
	return build(file)
}

func build(file catalogFile) (Catalog, error) {
	if problems := Lint(file.Templates); len(problems) > 0 {
		return Catalog{}, errors.Errorf("invalid catalogue: %s", problems[0])
	}

	cat := Catalog{Templates: make(map[string]faultline.Template, len(file.Templates))}
	for key, entry := range file.Templates {
		tpl := faultline.Template{Pattern: entry.Pattern}
		if entry.Severity != "" {
			sev, err := faultline.ParseSeverity(entry.Severity)
			if err != nil {
				return Catalog{}, errors.Wrapf(err, "templates.%s", key)
			}
			tpl.Severity = sev
		}
		if entry.Category != "" {
			c, err := faultline.ParseCategory(entry.Category)
			if err != nil {
				return Catalog{}, errors.Wrapf(err, "templates.%s", key)
			}
			tpl.Category = c
		}
		for _, sg := range entry.Suggestions {
			tpl.Suggestions = append(tpl.Suggestions, faultline.RecoverySuggestion{
				ID:          sg.ID,
				Title:       sg.Title,
				Description: sg.Description,
				Action:      sg.Action,
				Priority:    sg.Priority,
				Automatic:   sg.Automatic,
			})
		}
		cat.Templates[key] = tpl
	}
	return cat, nil
}

// Lint validates raw catalogue entries and returns all problems found,
// ordered by template key.
func Lint(entries map[string]Entry) []Problem {
	var problems []Problem
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		entry := entries[key]
		if key == "" {
			problems = append(problems, Problem{Key: key, Msg: "template key cannot be empty"})
		}
		if entry.Pattern == "" {
			problems = append(problems, Problem{Key: key, Msg: "pattern cannot be empty"})
		}
		if entry.Severity != "" {
			if _, err := faultline.ParseSeverity(entry.Severity); err != nil {
				problems = append(problems, Problem{Key: key, Msg: err.Error()})
			}
		}
		if entry.Category != "" {
			if _, err := faultline.ParseCategory(entry.Category); err != nil {
				problems = append(problems, Problem{Key: key, Msg: err.Error()})
			}
		}
		seen := make(map[string]bool, len(entry.Suggestions))
		for i, sg := range entry.Suggestions {
			if sg.Title == "" {
				problems = append(problems, Problem{Key: key, Msg: fmt.Sprintf("suggestion %d: title cannot be empty", i+1)})
			}
			if sg.ID != "" && seen[sg.ID] {
				problems = append(problems, Problem{Key: key, Msg: fmt.Sprintf("duplicate suggestion id %q", sg.ID)})
			}
			seen[sg.ID] = true
		}
	}
	return problems
}

// LintFile parses path without building and returns validation problems.
// A TOML syntax error is returned as err, not as a problem.
func LintFile(path string) ([]Problem, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, errors.Wrapf(err, "%s: parse catalogue", path)
	}
	return Lint(file.Templates), nil
}

// Register installs every template of the catalogue into sys.
func Register(sys *faultline.System, cat Catalog) error {
	keys := make([]string, 0, len(cat.Templates))
	for key := range cat.Templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := sys.RegisterTemplate(key, cat.Templates[key]); err != nil {
			return errors.Wrapf(err, "register template %q", key)
		}
	}
	return nil
}
