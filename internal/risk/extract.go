package risk

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Extraction strategies, tried in order. Each one is pure and swallows its
// own parse failures; the chain returns on the first strategy that yields a
// valid JSON object.

var (
	fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	// Tolerates one level of nested braces; deeper objects are covered by
	// the outer-slice strategy.
	braceRe = regexp.MustCompile(`\{(?:[^{}]|\{[^{}]*\})*\}`)

	unquotedKeyRe = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	singleQuoteRe = regexp.MustCompile(`'([^']*)'`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON recovers a JSON object from loosely structured model output.
// Returns ("", false) when every strategy fails; it never panics or returns
// a partial object.
func ExtractJSON(text string) (string, bool) {
	strategies := []func(string) (string, bool){
		directParse,
		fencedBlocks,
		braceCandidates,
		outerSlice,
		repairedCandidates,
	}
	for _, strategy := range strategies {
		if raw, ok := strategy(text); ok {
			return raw, true
		}
	}
	return "", false
}

// validObject reports whether s is a parseable JSON object.
func validObject(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return "", false
	}
	if !gjson.Valid(s) {
		return "", false
	}
	return s, true
}

func directParse(text string) (string, bool) {
	return validObject(text)
}

func fencedBlocks(text string) (string, bool) {
	for _, m := range fenceRe.FindAllStringSubmatch(text, -1) {
		if raw, ok := validObject(m[1]); ok {
			return raw, true
		}
	}
	return "", false
}

func braceCandidates(text string) (string, bool) {
	candidates := braceRe.FindAllString(text, -1)
	// Prefer the largest candidate: it is the most likely to be the whole
	// object rather than a nested fragment.
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})
	for _, c := range candidates {
		if raw, ok := validObject(c); ok {
			return raw, true
		}
	}
	return "", false
}

func outerSlice(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start >= end {
		return "", false
	}
	return validObject(text[start : end+1])
}

// repairedCandidates fixes the malformations models produce most often,
// then retries extraction on the repaired text.
func repairedCandidates(text string) (string, bool) {
	repaired := Repair(text)
	if raw, ok := braceCandidates(repaired); ok {
		return raw, true
	}
	return outerSlice(repaired)
}

// Repair rewrites unquoted object keys, single-quoted string values and
// trailing commas into strict JSON.
func Repair(text string) string {
	text = unquotedKeyRe.ReplaceAllString(text, `$1"$2":`)
	text = singleQuoteRe.ReplaceAllString(text, `"$1"`)
	text = trailingComma.ReplaceAllString(text, `$1`)
	return text
}
