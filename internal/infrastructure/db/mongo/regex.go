package mongo

import "strings"

// regexQuoteMeta escapes regex metacharacters so user search input is
// always treated as a literal substring.
func regexQuoteMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
