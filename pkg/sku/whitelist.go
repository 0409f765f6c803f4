package sku

import (
	"bufio"
	"os"
	"strings"
	"unicode"
)

// Whitelist is an ordered, deduplicated set of known-valid identifiers.
// It is loaded once at process start and never mutated afterwards, so it is
// safe to share across pages without locking. An empty whitelist degrades
// all matching to pure heuristics.
type Whitelist struct {
	entries []string
	set     map[string]struct{}
}

// NewWhitelist builds a whitelist from raw entries, dropping blanks and
// duplicates while preserving first-occurrence order
func NewWhitelist(entries []string) *Whitelist {
	wl := &Whitelist{set: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, ok := wl.set[e]; ok {
			continue
		}
		wl.set[e] = struct{}{}
		wl.entries = append(wl.entries, e)
	}
	return wl
}

// LoadWhitelist reads one identifier per line from path. It fails soft: any
// I/O error yields an empty whitelist rather than aborting the pipeline.
func LoadWhitelist(path string) *Whitelist {
	f, err := os.Open(path)
	if err != nil {
		return NewWhitelist(nil)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entries = append(entries, scanner.Text())
	}
	if scanner.Err() != nil {
		return NewWhitelist(nil)
	}
	return NewWhitelist(entries)
}

// Len returns the number of entries
func (wl *Whitelist) Len() int {
	if wl == nil {
		return 0
	}
	return len(wl.entries)
}

// Entries returns the entries in load order. The returned slice must not be
// modified.
func (wl *Whitelist) Entries() []string {
	if wl == nil {
		return nil
	}
	return wl.entries
}

// Contains reports whether s is an exact whitelist entry
func (wl *Whitelist) Contains(s string) bool {
	if wl == nil {
		return false
	}
	_, ok := wl.set[s]
	return ok
}

// Normalize maps a raw extracted identifier onto its canonical whitelist
// entry. Matching runs in three tiers: exact membership, substring
// containment in either direction, then composite-candidate matching for
// entries of the form prefix(part1+part2+...). If anything other than
// exactly one candidate survives, raw is returned unchanged; ambiguity is
// resolved conservatively in favor of not corrupting data.
func (wl *Whitelist) Normalize(raw string) string {
	if wl.Len() == 0 {
		return raw
	}
	if wl.Contains(raw) {
		return raw
	}

	var candidates []string
	seen := make(map[string]struct{})

	for _, name := range wl.entries {
		if strings.Contains(raw, name) || strings.Contains(name, raw) {
			candidates = append(candidates, name)
			seen[name] = struct{}{}
		}
	}

	for _, name := range wl.entries {
		if _, ok := seen[name]; ok {
			continue
		}
		if matchesComposite(raw, name) {
			candidates = append(candidates, name)
		}
	}

	if len(candidates) == 1 {
		return candidates[0]
	}
	return raw
}

// splitComposite parses a composite entry prefix(part1+part2+...) into its
// prefix and parts. ok is false for non-composite entries.
func splitComposite(entry string) (prefix string, parts []string, ok bool) {
	open := strings.Index(entry, "(")
	if open < 0 || !strings.HasSuffix(entry, ")") {
		return "", nil, false
	}
	prefix = entry[:open]
	inner := entry[open+1 : len(entry)-1]
	for _, p := range strings.Split(inner, "+") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return prefix, parts, true
}

// matchesComposite reports whether a composite whitelist entry can account
// for raw. The prefix must occur in raw, and for every part both the leading
// alphabetic run (first 3 characters, case-insensitive) and the full digit
// run must occur in raw. This recovers identifiers split across wrapped
// lines without confusing them with neighboring SKUs.
func matchesComposite(raw, entry string) bool {
	prefix, parts, ok := splitComposite(entry)
	if !ok {
		return false
	}

	rawLower := strings.ToLower(raw)
	if prefix != "" && !strings.Contains(rawLower, strings.ToLower(prefix)) {
		return false
	}

	for _, part := range parts {
		var letters, digits strings.Builder
		for _, ch := range part {
			switch {
			case unicode.IsLetter(ch):
				letters.WriteRune(ch)
			case unicode.IsDigit(ch):
				digits.WriteRune(ch)
			}
		}

		if l := letters.String(); l != "" {
			key := strings.ToLower(l)
			if len(key) > 3 {
				key = key[:3]
			}
			if !strings.Contains(rawLower, key) {
				return false
			}
		}
		if d := digits.String(); d != "" {
			if !strings.Contains(raw, d) {
				return false
			}
		}
	}

	return true
}
