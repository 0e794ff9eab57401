package core

import "strconv"

// BuildPath joins a change-set path and an object key with a dot. Dots inside
// keys are not escaped.
func BuildPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

// IndexPath appends an array index to path, as in "tags[2]".
func IndexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
