package contents

import (
	"bufio"
	"io"
)

// scanBufSize is the scanner buffer cap. Contents lines are short, but a
// corrupt or hostile index must not abort the scan with a token-too-long
// error before the parser can skip it.
const scanBufSize = 1024 * 1024

// Stream is a forward-only, single-pass iterator over the decoded text
// lines of a remote Contents index. It decompresses on the fly and never
// buffers the whole index in memory.
//
// Usage follows bufio.Scanner:
//
//	for stream.Next() {
//	    names := ParsePackages(stream.Line())
//	    ...
//	}
//	if err := stream.Err(); err != nil { ... }
type Stream struct {
	url     string
	scanner *bufio.Scanner
	closers []io.Closer
}

func newStream(url string, decoded io.Reader, closers ...io.Closer) *Stream {
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	return &Stream{url: url, scanner: scanner, closers: closers}
}

// Next advances to the next line. It returns false at end of stream or on
// a read error; check Err afterwards to distinguish the two.
func (s *Stream) Next() bool {
	return s.scanner.Scan()
}

// Line returns the current line without its trailing newline.
func (s *Stream) Line() string {
	return s.scanner.Text()
}

// Err returns the first error encountered while reading, or nil if the
// stream ended cleanly.
func (s *Stream) Err() error {
	return s.scanner.Err()
}

// URL returns the candidate location the stream was opened from.
func (s *Stream) URL() string {
	return s.url
}

// Close releases the underlying HTTP body and decompressor.
func (s *Stream) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
