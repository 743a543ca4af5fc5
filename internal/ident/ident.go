// Package ident converts protobuf identifiers between naming conventions
// and matches identifiers against customization rule patterns.
package ident

import (
	"strings"
	"unicode"
)

// ToSnake converts an identifier to snake_case.
func ToSnake(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

// ToUpperCamel converts an identifier to UpperCamelCase.
func ToUpperCamel(s string) string {
	var b strings.Builder
	for _, word := range splitWords(s) {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// splitWords breaks an identifier into words on underscores and on
// case boundaries: aB splits before B, ABc splits before Bc.
func splitWords(s string) []string {
	var words []string
	runes := []rune(s)
	start := 0
	for i := range runes {
		if runes[i] == '_' {
			if i > start {
				words = append(words, string(runes[start:i]))
			}
			start = i + 1
			continue
		}
		if i == start || !unicode.IsUpper(runes[i]) {
			continue
		}
		prevLower := !unicode.IsUpper(runes[i-1]) && runes[i-1] != '_'
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if prevLower || nextLower {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}
	return words
}

// Match reports whether a rule pattern matches the fully-qualified name
// fqName, optionally narrowed to one of its fields. fqName must be
// absolute (leading dot). Pattern semantics: "." matches everything, a
// leading-dot pattern prefix-matches on segment boundaries, any other
// pattern suffix-matches on segment boundaries.
func Match(pattern, fqName, field string) bool {
	if pattern == "" {
		return false
	}
	path := fqName
	if field != "" {
		path += "." + field
	}
	if pattern == "." {
		return true
	}
	if strings.HasPrefix(pattern, ".") {
		return path == pattern || strings.HasPrefix(path, pattern+".")
	}
	return path == "."+pattern || strings.HasSuffix(path, "."+pattern)
}
