// Package encoding normalizes legacy-encoded text input to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// cyrillic maps chardet charset names to decoders. Exports from Russian
// desktop software are almost always one of these.
var cyrillic = map[string]encoding.Encoding{
	"windows-1251": charmap.Windows1251,
	"KOI8-R":       charmap.KOI8R,
	"ISO-8859-5":   charmap.ISO8859_5,
	"IBM866":       charmap.CodePage866,
}

// NewUTF8Reader returns a reader that yields r's content as UTF-8.
//
// A UTF-8 BOM is stripped and UTF-16 with a BOM is decoded. Valid UTF-8
// passes through. Anything else is detected with chardet among the common
// Cyrillic code pages, falling back to Windows-1251.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE}):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case bytes.HasPrefix(buf, []byte{0xFE, 0xFF}):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if validUTF8Prefix(buf) {
		return br, nil
	}

	return transform.NewReader(br, Detect(buf).NewDecoder()), nil
}

// Detect guesses the single-byte Cyrillic code page of buf.
func Detect(buf []byte) encoding.Encoding {
	results, err := chardet.NewTextDetector().DetectAll(buf)
	if err == nil {
		for _, res := range results {
			if enc, ok := cyrillic[res.Charset]; ok {
				return enc
			}
		}
	}

	return charmap.Windows1251
}

// validUTF8Prefix tolerates a multi-byte rune cut off at the end of the peek window.
func validUTF8Prefix(buf []byte) bool {
	if utf8.Valid(buf) {
		return true
	}

	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.Valid(buf[:len(buf)-i]) {
			return !utf8.FullRune(buf[len(buf)-i:])
		}
	}

	return false
}
