package utils

import (
	"path"
	"strings"
	"unicode"
)

// ParentDir computes the normalized parent directory of a repo-relative
// path: backslashes become forward slashes, a trailing slash is stripped,
// and when the final segment contains a "." the path is treated as a file
// and its directory portion is taken. Otherwise the path is already a
// directory.
func ParentDir(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	base := path.Base(p)
	if strings.Contains(base, ".") {
		dir := path.Dir(p)
		if dir == "." || dir == "/" {
			return ""
		}
		return dir
	}
	return p
}

// Slug converts s into a kebab-case identifier: lowercase letters and
// digits, runs of anything else collapsed to a single hyphen.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// DisplayName turns the last segment of a directory path into a readable
// name: hyphens and underscores become spaces and each word is capitalized.
// "src/auth-core" -> "Auth Core".
func DisplayName(dir string) string {
	dir = strings.TrimSpace(strings.ReplaceAll(dir, "\\", "/"))
	dir = strings.TrimRight(dir, "/")
	seg := path.Base(dir)
	if seg == "." || seg == "/" || seg == "" {
		return ""
	}
	seg = strings.ReplaceAll(seg, "-", " ")
	seg = strings.ReplaceAll(seg, "_", " ")
	words := strings.Fields(seg)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
