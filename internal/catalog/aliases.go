package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// aliasFile is the operator-curated synonym map. Each entry maps a
// free-text alias to either a station lookup key or a path whose last
// slash-delimited token is a station code, e.g.
//
//	aliases:
//	  "financial district": stations/KAFD
//	  "كافد": KAFD
type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// ApplyAliases loads the alias map at path and adds each alias (in
// normalized form) to the lookup keys of the station it resolves to.
// Unresolvable entries are logged and skipped, not fatal.
func (c *Catalog) ApplyAliases(path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read alias map: %w", err)
	}

	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse alias map: %w", err)
	}

	// Map iteration order is random; sort for reproducible key order.
	aliases := make([]string, 0, len(f.Aliases))
	for a := range f.Aliases {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)

	applied := 0
	for _, alias := range aliases {
		st := c.resolveAliasTarget(f.Aliases[alias])
		if st == nil {
			logger.Warn("alias target does not resolve to a station", "alias", alias, "target", f.Aliases[alias])
			continue
		}
		key := Normalize(alias)
		if key == "" || st.HasKey(key) {
			continue
		}
		st.LookupKeys = append(st.LookupKeys, key)
		applied++
	}

	logger.Info("station aliases applied", "aliases", applied)
	return nil
}

// resolveAliasTarget finds the station an alias entry points at: first by
// exact lookup-key match, then by treating the last slash-delimited token
// of the target as a direct station code.
func (c *Catalog) resolveAliasTarget(target string) *Station {
	key := Normalize(target)
	for _, st := range c.stations {
		if st.HasKey(key) {
			return st
		}
	}

	parts := strings.Split(target, "/")
	code := strings.TrimSpace(parts[len(parts)-1])
	if st, ok := c.byID[code]; ok {
		return st
	}
	if st, ok := c.byID[strings.ToUpper(code)]; ok {
		return st
	}
	return nil
}
