// Package naming resolves symbolic artifact names into directories, class
// names, and file names, and provides the case conversions the generators
// and stub replacements are built on.
package naming

import (
	"strings"
	"unicode"
)

// ParsedName is the canonical breakdown of a symbolic name like
// "Admin/UserController". It is derived once per invocation and never
// mutated afterwards.
type ParsedName struct {
	// Directory holds the lowercase, slash-separated path segments before
	// the final one; "" when the input has no nesting.
	Directory string

	// ClassName is the final segment in PascalCase. It starts with an
	// uppercase letter and contains no separators. Empty when the input
	// had no usable final segment; callers must reject that before using
	// the name.
	ClassName string

	// FileName is ClassName in snake_case, used as the output file's base
	// name.
	FileName string
}

// ParseName splits raw on "/" and normalizes each part.
//
//	ParseName("Admin/UserController")
//	// Directory: "admin", ClassName: "UserController", FileName: "user_controller"
func ParseName(raw string) ParsedName {
	segments := strings.Split(strings.Trim(raw, "/"), "/")

	last := segments[len(segments)-1]
	dirs := segments[:len(segments)-1]

	for i, d := range dirs {
		dirs[i] = strings.ToLower(d)
	}

	class := PascalCase(last)
	return ParsedName{
		Directory: strings.Join(dirs, "/"),
		ClassName: class,
		FileName:  SnakeCase(class),
	}
}

// splitWords breaks an identifier into words at underscores, lower→upper
// transitions, and the end of uppercase runs ("HTTPServer" → HTTP, Server).
// The three case converters share this so they stay mutually consistent:
// PascalCase(SnakeCase(x)) == PascalCase(x) for any identifier x.
func splitWords(s string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' {
			flush()
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				flush()
			} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
		}
		current.WriteRune(r)
	}
	flush()

	return words
}

// PascalCase normalizes an identifier to PascalCase: user_name → UserName,
// userName → UserName, HTTPServer → HttpServer.
func PascalCase(s string) string {
	var b strings.Builder
	for _, w := range splitWords(s) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// CamelCase is PascalCase with the first letter lowercased.
func CamelCase(s string) string {
	p := PascalCase(s)
	if p == "" {
		return ""
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// SnakeCase joins the lowercased words with underscores: UserName →
// user_name, already-snake input passes through unchanged.
func SnakeCase(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// capitalize uppercases the first letter and lowercases the rest, so that
// acronym runs normalize the same way from any input casing.
func capitalize(w string) string {
	if w == "" {
		return ""
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}
