package utils

import "strings"

// JoinURL appends path to base without doubling or dropping the slash.
// A trailing slash on path is preserved.
func JoinURL(base, path string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if path == "" {
		return base
	}
	return base + "/" + strings.TrimLeft(path, "/")
}
