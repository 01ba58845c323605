package content

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// DecodeError reports content that is not valid UTF-8 text.
// It is the anticipated "this is not a text file" outcome, not an I/O failure.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("content is not valid UTF-8 text: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// IsDecodeError reports whether err marks undecodable content.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// minReaderSize matches bufio's own lower bound.
const minReaderSize = 16

// ReadFirstLine returns the first line of r including its terminator.
//
// The leading sampleSize bytes and the whole first line must be valid UTF-8,
// otherwise a *DecodeError is returned. Line terminators follow universal
// newline rules: "\n", "\r\n" and a lone "\r" all end a line and are returned
// as "\n". A final line without a terminator is returned as-is, and empty
// input yields "".
func ReadFirstLine(r io.Reader, sampleSize int) (string, error) {
	br := bufio.NewReaderSize(r, max(sampleSize, minReaderSize))

	sample, err := br.Peek(sampleSize)
	switch {
	case err == nil:
		// More input may follow; a rune split by the sample boundary is not an error.
		sample = trimPartialRune(sample)
	case errors.Is(err, io.EOF):
	default:
		return "", err
	}
	if err := validate(sample); err != nil {
		return "", err
	}

	line, err := readLine(br)
	if err != nil {
		return "", err
	}
	if err := validate(line); err != nil {
		return "", err
	}

	return string(line), nil
}

func validate(b []byte) error {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, b); err != nil {
		return &DecodeError{Cause: err}
	}
	return nil
}

// trimPartialRune drops an incomplete UTF-8 sequence from the end of b.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		start := len(b) - i
		if utf8.RuneStart(b[start]) {
			if !utf8.FullRune(b[start:]) {
				return b[:start]
			}
			break
		}
	}
	return b
}

func readLine(br *bufio.Reader) ([]byte, error) {
	var line []byte
	for {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return line, nil
		}
		if err != nil {
			return nil, err
		}

		switch c {
		case '\n':
			return append(line, '\n'), nil
		case '\r':
			next, err := br.Peek(1)
			if err == nil && next[0] == '\n' {
				_, _ = br.ReadByte()
			}
			return append(line, '\n'), nil
		default:
			line = append(line, c)
		}
	}
}
