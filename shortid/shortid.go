package shortid

import (
	"errors"
	"fmt"
	"strings"

	"shorturl/basecodec"
)

var (
	ErrInvalidShortForm      = errors.New("short form not valid in given alphabet")
	ErrInternalInconsistency = errors.New("internal error: decoded value is not a valid integer id")
)

// Identifier binds a short form and the integer it represents under one codec.
//
// The zero value holds no representation.
type Identifier struct {
	shortForm   string
	integerForm int64
}

// New validates shortForm and decodes it. Whitespace at either end is ignored.
func New(codec *basecodec.Codec, shortForm string) (Identifier, error) {
	if !codec.IsValidDecodeInput(shortForm) {
		return Identifier{}, fmt.Errorf("%w: %q", ErrInvalidShortForm, shortForm)
	}
	shortForm = strings.TrimSpace(shortForm)

	n, err := codec.Decode(shortForm)
	if err != nil {
		return Identifier{}, fmt.Errorf("%w: %v", ErrInvalidShortForm, err)
	}
	if !codec.IsValidEncodeInput(n) {
		return Identifier{}, fmt.Errorf("%w: %q decoded to %d", ErrInternalInconsistency, shortForm, n)
	}
	return Identifier{shortForm: shortForm, integerForm: n}, nil
}

// FromInteger encodes a freshly assigned row id.
func FromInteger(codec *basecodec.Codec, n int64) (Identifier, error) {
	shortForm, err := codec.Encode(n)
	if err != nil {
		return Identifier{}, fmt.Errorf("%d: %w", n, err)
	}
	return New(codec, shortForm)
}

func (i Identifier) ShortForm() string {
	return i.shortForm
}

func (i Identifier) IntegerForm() int64 {
	return i.integerForm
}

func (i Identifier) String() string {
	return i.shortForm
}
