package textutil

import "strings"

// Replacement is substituted for every forbidden rune.
const Replacement = '-'

// forbiddenPunctuation lists the printable characters that are reserved on at
// least one common filesystem target.
const forbiddenPunctuation = `/\?%*:|"<>`

// IsForbidden reports whether r may not appear in an output filename.
func IsForbidden(r rune) bool {
	if r <= 0x1F || r == 0x7F {
		return true
	}
	return strings.ContainsRune(forbiddenPunctuation, r)
}

// SanitizeFileName replaces every forbidden rune in name with Replacement.
// Nothing is trimmed or removed, so the output has the same rune count as the
// input and sanitizing twice is the same as sanitizing once.
func SanitizeFileName(name string) string {
	if strings.IndexFunc(name, IsForbidden) < 0 {
		return name
	}
	return strings.Map(func(r rune) rune {
		if IsForbidden(r) {
			return Replacement
		}
		return r
	}, name)
}
