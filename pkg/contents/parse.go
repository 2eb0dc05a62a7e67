package contents

import (
	"strings"
	"unicode"
)

// ParsePackages extracts the package names from one Contents index line.
//
// The line format is "<path> <pkg1,pkg2,...>": an arbitrary path, which may
// itself contain whitespace, followed by the last whitespace-delimited
// token naming every package that ships the path. The trailing field is
// split on commas; pieces are trimmed and empty pieces dropped. Order and
// duplicates are preserved, so a line naming the same package twice counts
// it twice.
//
// Blank lines, comment lines starting with "#", and lines with no
// whitespace-separable trailing field yield nil. Malformed lines are never
// an error; the index is parsed best-effort and callers just skip nil
// results.
func ParsePackages(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	// The path may embed spaces, so only the token after the final
	// whitespace run is the package field.
	i := strings.LastIndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return nil
	}
	field := line[i+1:]

	var names []string
	for _, piece := range strings.Split(field, ",") {
		if name := strings.TrimSpace(piece); name != "" {
			names = append(names, name)
		}
	}
	return names
}
