package ruleio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v2"
)

// File loads a ruleset from a properties or YAML file. The format is chosen
// by extension: .yaml and .yml parse as a flat YAML mapping, everything else
// as Java-style properties. Environment variables referenced as $VAR or
// ${VAR} are expanded in values only; keys carry regex patterns that may
// legitimately contain such sequences and are left untouched.
type File struct {
	Path string
}

func (f File) Load(context.Context) (map[string]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRulesetNotFound, f.Path)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var ruleset map[string]string
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml":
		ruleset, err = parseYAML(f.Path, string(data))
	default:
		ruleset, err = parseProperties(f.Path, string(data))
	}
	if err != nil {
		return nil, err
	}
	for key, value := range ruleset {
		ruleset[key] = os.ExpandEnv(value)
	}
	return ruleset, nil
}

func parseYAML(path, text string) (map[string]string, error) {
	ruleset := make(map[string]string)
	if err := yaml.Unmarshal([]byte(text), &ruleset); err != nil {
		return nil, fmt.Errorf("verdict: parse %s: %w", path, err)
	}
	return ruleset, nil
}

func parseProperties(path, text string) (map[string]string, error) {
	// Key expansion is disabled: rule patterns may legitimately contain
	// "${...}" sequences that are not property references.
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("verdict: parse %s: %w", path, err)
	}
	return p.Map(), nil
}
