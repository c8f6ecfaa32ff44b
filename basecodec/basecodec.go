package basecodec

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrInvalidAlphabetType = errors.New("alphabet should be a character sequence")
	ErrInvalidAlphabet     = errors.New("invalid alphabet")
	ErrInvalidEncodeInput  = errors.New("must be a positive integer")
	ErrInvalidDecodeInput  = errors.New("not a valid representation in the given alphabet")
	ErrInvalidInputType    = errors.New("should be an integer")
)

// Codec translates positive integers to strings over a custom alphabet and back.
//
// A Codec is immutable once built, so it can be shared between goroutines.
type Codec struct {
	symbols []rune
	index   map[rune]int
}

// New builds a Codec from the given alphabet. Whitespace anywhere in the
// alphabet is ignored, so it may be written over several lines.
func New(alphabet string) (*Codec, error) {
	if !utf8.ValidString(alphabet) {
		return nil, ErrInvalidAlphabetType
	}

	symbols := make([]rune, 0, len(alphabet))
	index := make(map[rune]int, len(alphabet))
	for _, r := range alphabet {
		if unicode.IsSpace(r) {
			continue
		}
		if _, ok := index[r]; ok {
			return nil, fmt.Errorf("%w: repeated symbol %q", ErrInvalidAlphabet, r)
		}
		index[r] = len(symbols)
		symbols = append(symbols, r)
	}

	switch len(symbols) {
	case 0:
		return nil, fmt.Errorf("%w: empty", ErrInvalidAlphabet)
	case 1:
		// a single digit can only ever be zero
		return nil, fmt.Errorf("%w: at least two symbols are needed", ErrInvalidAlphabet)
	}
	return &Codec{symbols: symbols, index: index}, nil
}

// Alphabet returns the normalized alphabet.
func (c *Codec) Alphabet() string {
	return string(c.symbols)
}

func (c *Codec) Radix() int {
	return len(c.symbols)
}

// Encode returns the representation of n, most significant symbol first.
func (c *Codec) Encode(n int64) (string, error) {
	if !c.IsValidEncodeInput(n) {
		return "", ErrInvalidEncodeInput
	}

	// 64 digits are enough for any int64 with a radix of at least 2
	var buf [64]rune
	i := len(buf)
	radix := int64(len(c.symbols))
	for n > 0 {
		i--
		buf[i] = c.symbols[n%radix]
		n /= radix
	}
	return string(buf[i:]), nil
}

// Decode returns the integer represented by s. Surrounding whitespace is ignored.
func (c *Codec) Decode(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidDecodeInput
	}

	radix := int64(len(c.symbols))
	var n int64
	for _, r := range s {
		digit, ok := c.index[r]
		if !ok {
			return 0, ErrInvalidDecodeInput
		}
		if n > (math.MaxInt64-int64(digit))/radix {
			return 0, fmt.Errorf("%w: value overflows int64", ErrInvalidDecodeInput)
		}
		n = n*radix + int64(digit)
	}
	return n, nil
}

func (c *Codec) IsValidEncodeInput(n int64) bool {
	return n > 0
}

// IsValidDecodeInput reports whether s, once trimmed, is a non-empty string of
// alphabet symbols. It does not check whether the value fits in an int64.
func (c *Codec) IsValidDecodeInput(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if _, ok := c.index[r]; !ok {
			return false
		}
	}
	return true
}
