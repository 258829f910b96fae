// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "strings"

// BaseName drops the final "."-delimited segment of path and rejoins the rest
// with ".". The whole path is split, not only its last element, so
// "dir.v2/clip" yields "dir". A path with no "." is returned unchanged.
func BaseName(path string) string {
	parts := strings.Split(path, ".")
	if len(parts) == 1 {
		return path
	}
	return strings.Join(parts[:len(parts)-1], ".")
}

// OutputName is the path the converter writes for input: its base name with
// format appended as the new extension. format is used verbatim.
func OutputName(input, format string) string {
	return BaseName(input) + "." + format
}
