// Package term models the interpreter's character console: the
// output sink for ',' and '.' and the input source for '~' and '&'.
package term

import (
	"bufio"
	"fmt"
	"io"
)

// Console wraps an io.Reader for input and an io.Writer for output.
// Either may be nil, in which case reads fail with io.EOF and writes
// are discarded.
type Console struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
}

func (c *Console) buffered() *bufio.Reader {
	if c.reader == nil {
		in := c.Input
		if in == nil {
			in = emptyReader{}
		}
		c.reader = bufio.NewReader(in)
	}

	return c.reader
}

// PutChar emits a single character.
func (c *Console) PutChar(value rune) (err error) {
	if c.Output == nil {
		return
	}
	_, err = fmt.Fprintf(c.Output, "%c", value)

	return
}

// PutNumber emits a decimal number followed by a space.
func (c *Console) PutNumber(value int64) (err error) {
	if c.Output == nil {
		return
	}
	_, err = fmt.Fprintf(c.Output, "%d ", value)

	return
}

// ReadChar reads a single character from the input.
func (c *Console) ReadChar() (value rune, err error) {
	value, _, err = c.buffered().ReadRune()

	return
}

// ReadNumber skips input up to the next decimal digit, then reads a
// run of digits as a number. A '-' immediately preceding the first
// digit negates it. The byte following the digits is left unread.
func (c *Console) ReadNumber() (value int64, err error) {
	in := c.buffered()

	var b byte
	negative := false
	for {
		b, err = in.ReadByte()
		if err != nil {
			return
		}
		if b >= '0' && b <= '9' {
			break
		}
		negative = b == '-'
	}

	for b >= '0' && b <= '9' {
		value = value*10 + int64(b-'0')
		b, err = in.ReadByte()
		if err != nil {
			// Digits were read; the number is valid.
			err = nil
			if negative {
				value = -value
			}
			return
		}
	}
	in.UnreadByte()
	if negative {
		value = -value
	}

	return
}

type emptyReader struct{}

func (emptyReader) Read(p []byte) (n int, err error) {
	return 0, io.EOF
}
