// Package contents fetches and parses Debian Contents index files.
//
// A Contents index maps every file shipped by a distribution to the
// packages that own it, one line per file:
//
//	usr/bin/foo    pkg-foo,pkg-bar
//
// Mirrors publish the index compressed, as Contents-<arch>.gz with an
// xz-compressed sibling on some mirrors. [Fetcher.Open] tries the gzip
// candidate first and falls back to xz, returning a forward-only line
// stream that never holds the decompressed index (often hundreds of
// megabytes) in memory at once.
package contents

import (
	"fmt"
	"strings"
)

// Default fetch locations, matching the standard Debian archive layout.
const (
	DefaultMirror    = "http://ftp.uk.debian.org/debian"
	DefaultSuite     = "stable"
	DefaultComponent = "main"
)

// BuildURLs returns the two candidate URLs for the Contents index of arch,
// in fetch priority order: gzip first, then xz.
func BuildURLs(arch, mirror, suite, component string) (gzURL, xzURL string) {
	base := fmt.Sprintf("%s/dists/%s/%s", strings.TrimRight(mirror, "/"), suite, component)
	gzURL = fmt.Sprintf("%s/Contents-%s.gz", base, arch)
	xzURL = fmt.Sprintf("%s/Contents-%s.xz", base, arch)
	return gzURL, xzURL
}
