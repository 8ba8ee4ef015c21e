package utils

import (
	"strings"
	"time"
)

// FilenameFromPath returns everything after the last '/' in path, or the whole path if there is
// none. With removeExtension, everything from the last '.' of that name on is dropped too.
func FilenameFromPath(path string, removeExtension bool) string {
	filename := path[strings.LastIndexByte(path, '/')+1:]
	if removeExtension {
		if pos := strings.LastIndexByte(filename, '.'); pos >= 0 {
			filename = filename[:pos]
		}
	}
	return filename
}

// PathWithoutFilename returns path up to and including its last '/'. A path without a '/' is
// returned unchanged.
func PathWithoutFilename(path string) string {
	pos := strings.LastIndexByte(path, '/')
	if pos < 0 {
		return path
	}
	return path[:pos+1]
}

// Extension returns the lower-cased text after the last '.' in filename, or "" if there is no
// '.'.
func Extension(filename string) string {
	pos := strings.LastIndexByte(filename, '.')
	if pos < 0 {
		return ""
	}
	return strings.ToLower(filename[pos+1:])
}

// ReplaceExtension swaps everything after the last '.' in filename for extension. If filename has
// no '.', the result is "".
func ReplaceExtension(filename, extension string) string {
	pos := strings.LastIndexByte(filename, '.')
	if pos < 0 {
		return ""
	}
	return filename[:pos+1] + extension
}

// TimeString formats t like the C library's ctime without the trailing year,
// e.g. "Mon Jan  2 15:04:05".
func TimeString(t time.Time) string {
	return t.Format("Mon Jan _2 15:04:05")
}
