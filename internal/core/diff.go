package core

import (
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/google/go-cmp/cmp"
)

// diffSuffix renders a readable diff between expected and actual values for
// failure messages. Multiline strings get a unified text diff; structured
// values get a cmp.Diff. Values cmp can't walk (unexported fields, func
// fields) produce no suffix rather than a panic.
func diffSuffix(expected, actual any) string {
	if wantStr, ok := expected.(string); ok {
		gotStr, ok := actual.(string)
		if ok && (strings.Contains(wantStr, "\n") || strings.Contains(gotStr, "\n")) {
			return "\ndiff:\n" + textdiff.Unified("expected", "actual", wantStr, gotStr)
		}
	}

	diff := structuralDiff(expected, actual)
	if diff == "" {
		return ""
	}

	return "\ndiff (-expected +actual):\n" + diff
}

func structuralDiff(expected, actual any) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()

	return cmp.Diff(expected, actual)
}
