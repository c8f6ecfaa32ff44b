package shortid

import (
	"reflect"
	"testing"

	"shorturl/basecodec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alphabet = `
            abcdefghijk mnopqrstuvwxyz
            A CDEFGH JKLMN PQR TUVWXYZ
              234 67 9
          	`

func newCodec(t *testing.T) *basecodec.Codec {
	codec, err := basecodec.New(alphabet)
	require.NoError(t, err)
	return codec
}

func TestNew(t *testing.T) {
	codec := newCodec(t)

	tests := []struct {
		name            string
		shortForm       string
		wantShortForm   string
		wantIntegerForm int64
		wantErr         error
	}{
		{"canonical", "An", "An", 1337, nil},
		{"surrounding whitespace", "  An  ", "An", 1337, nil},
		{"tab and newline", "\tAn\n", "An", 1337, nil},
		{"leading zero symbol is kept", "aAn", "aAn", 1337, nil},
		{"empty", "", "", 0, ErrInvalidShortForm},
		{"whitespace only", "   ", "", 0, ErrInvalidShortForm},
		{"symbol outside the alphabet", "Bn", "", 0, ErrInvalidShortForm},
		{"overflow", "zzzzzzzzzzzzzzzzzzzzzzzz", "", 0, ErrInvalidShortForm},
		{"decodes to zero", "aa", "", 0, ErrInternalInconsistency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := New(codec, tt.shortForm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Identifier{}, id)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantShortForm, id.ShortForm())
			assert.Equal(t, tt.wantIntegerForm, id.IntegerForm())
			assert.Equal(t, tt.wantShortForm, id.String())
		})
	}
}

func TestNew_same_identifier_regardless_of_padding(t *testing.T) {
	codec := newCodec(t)

	a, err := New(codec, "An")
	require.NoError(t, err)
	b, err := New(codec, "  An  ")
	require.NoError(t, err)

	assert.Equal(t, a.IntegerForm(), b.IntegerForm())
	assert.Equal(t, a.ShortForm(), b.ShortForm())
	assert.True(t, a == b)
}

func TestFromInteger(t *testing.T) {
	codec := newCodec(t)

	id, err := FromInteger(codec, 1337)
	require.NoError(t, err)
	assert.Equal(t, "An", id.ShortForm())
	assert.Equal(t, int64(1337), id.IntegerForm())

	for _, n := range []int64{0, -1} {
		_, err := FromInteger(codec, n)
		assert.ErrorIs(t, err, basecodec.ErrInvalidEncodeInput)
	}
}

func TestIdentifier_has_no_exported_fields(t *testing.T) {
	typ := reflect.TypeOf(Identifier{})
	for i := 0; i < typ.NumField(); i++ {
		assert.False(t, typ.Field(i).IsExported(), "field %s can be set from outside", typ.Field(i).Name)
	}
}
