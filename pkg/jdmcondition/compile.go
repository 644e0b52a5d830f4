// Package jdmcondition implements the condition compiler: it lifts
// decision-table and switch cell strings into expressions pkg/jdmexpr
// can compile.
package jdmcondition

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	rangePattern      = regexp.MustCompile(`^\[(.+)\.\.(.+)\]$`)
	endsWithPattern   = regexp.MustCompile(`^endsWith\(\$,\s*(.+)\)$`)
	startsWithPattern = regexp.MustCompile(`^startsWith\(\$,\s*(.+)\)$`)
	quotedLiteral     = regexp.MustCompile(`^['"].*['"]$`)
	singleLiteral     = regexp.MustCompile(`^('[^']*'|"[^"]*")$`)
)

// CompileCell translates a single decision-table cell string against a
// target field name into an expression evaluable by pkg/jdmexpr. An empty
// or absent cell is a wildcard: CompileCell returns ok=false and the
// caller treats the condition as unconditionally true.
//
// endsWith/startsWith compile to function-call syntax (expr-lang
// environments are plain maps; there is no method to dispatch to), and
// membership compiles to bracket-array syntax (expr-lang has no
// paren-tuple literal).
func CompileCell(raw, field string) (string, bool) {
	if raw == "" {
		return "", false
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	if m := rangePattern.FindStringSubmatch(trimmed); m != nil {
		lo := strings.ReplaceAll(m[1], "_", "")
		hi := strings.ReplaceAll(m[2], "_", "")
		return fmt.Sprintf("%s >= %s and %s <= %s", field, lo, field, hi), true
	}

	if lit, ok := membershipLiteral(trimmed); ok && !singleLiteral.MatchString(trimmed) {
		return fmt.Sprintf("%s in %s", field, lit), true
	}

	if m := endsWithPattern.FindStringSubmatch(trimmed); m != nil {
		return fmt.Sprintf("endsWith(%s, %s)", field, normalizeQuotes(m[1])), true
	}

	if m := startsWithPattern.FindStringSubmatch(trimmed); m != nil {
		return fmt.Sprintf("startsWith(%s, %s)", field, normalizeQuotes(m[1])), true
	}

	if quotedLiteral.MatchString(trimmed) {
		return fmt.Sprintf("%s == %s", field, trimmed), true
	}

	if strings.Contains(trimmed, "$") {
		return strings.ReplaceAll(trimmed, "$", field), true
	}

	return fmt.Sprintf("%s %s", field, trimmed), true
}

// membershipLiteral recognizes a JSON-array-like list of scalar literals
// ("a, b, c" or "'a', 'b', 'c'") and re-renders it as an expr-lang bracket
// array literal. Single quotes are normalized to double quotes so the
// cell parses as JSON first.
func membershipLiteral(trimmed string) (string, bool) {
	jsonish := "[" + strings.ReplaceAll(trimmed, "'", `"`) + "]"

	var arr []any
	if err := json.Unmarshal([]byte(jsonish), &arr); err != nil {
		return "", false
	}
	for _, v := range arr {
		switch v.(type) {
		case string, float64, bool, nil:
		default:
			return "", false
		}
	}

	rendered, err := json.Marshal(arr)
	if err != nil {
		return "", false
	}
	return string(rendered), true
}

func normalizeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `"`)
}
