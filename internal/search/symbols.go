package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sha1n/contentkit/internal/domain"
)

// maxSymbolLength drops matches that cannot be real identifiers
const maxSymbolLength = 100

var scriptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`function\s+(\w+)`),
	regexp.MustCompile(`class\s+(\w+)`),
	regexp.MustCompile(`const\s+(\w+)\s*=`),
	regexp.MustCompile(`let\s+(\w+)\s*=`),
	regexp.MustCompile(`var\s+(\w+)\s*=`),
}

var subtypePatterns = map[domain.Subtype][]*regexp.Regexp{
	domain.SubtypeJavaScript: scriptPatterns,
	domain.SubtypeReact: append([]*regexp.Regexp{
		regexp.MustCompile(`<([A-Z]\w*)[\s/>]`), // rendered components
	}, scriptPatterns...),
	domain.SubtypePython: {
		regexp.MustCompile(`(?m)^\s*def\s+(\w+)`),
		regexp.MustCompile(`(?m)^\s*class\s+(\w+)`),
	},
	domain.SubtypeCSS: {
		regexp.MustCompile(`(?m)^\s*[.#]([A-Za-z_][\w-]*)[^{;]*\{`),
		regexp.MustCompile(`(--[\w-]+)\s*:`),
	},
}

// ExtractSymbols returns the sorted, de-duplicated identifiers declared in
// code of the given subtype. Unsupported subtypes yield nil.
func ExtractSymbols(subtype domain.Subtype, content string) []string {
	patterns, ok := subtypePatterns[subtype]
	if !ok {
		return nil
	}

	unique := make(map[string]struct{})
	for _, re := range patterns {
		for _, match := range re.FindAllStringSubmatch(content, -1) {
			if len(match) < 2 {
				continue
			}
			symbol := strings.TrimSpace(match[1])
			if symbol != "" && len(symbol) < maxSymbolLength {
				unique[symbol] = struct{}{}
			}
		}
	}

	if len(unique) == 0 {
		return nil
	}

	symbols := make([]string, 0, len(unique))
	for s := range unique {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}
