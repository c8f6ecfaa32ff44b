package main

import (
	"bytes"
	"testing"

	"shorturl/basecodec"
	"shorturl/config"
	"shorturl/shortid"

	"github.com/stretchr/testify/assert"
)

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEncodeCmd(t *testing.T) {
	out, err := execute("encode", "--alphabet", config.DefaultBaseChars, "1337", "1338.0")
	assert.NoError(t, err)
	assert.Equal(t, "1337\tAn\n1338\tAo\n", out)

	_, err = execute("encode", "--alphabet", config.DefaultBaseChars, "2.7")
	assert.ErrorIs(t, err, basecodec.ErrInvalidEncodeInput)

	_, err = execute("encode", "--alphabet", config.DefaultBaseChars, "five")
	assert.ErrorIs(t, err, basecodec.ErrInvalidInputType)

	_, err = execute("encode", "--alphabet", "aab", "1")
	assert.ErrorIs(t, err, basecodec.ErrInvalidAlphabet)
}

func TestDecodeCmd(t *testing.T) {
	out, err := execute("decode", "--alphabet", config.DefaultBaseChars, "An", "Ao")
	assert.NoError(t, err)
	assert.Equal(t, "An\t1337\nAo\t1338\n", out)

	_, err = execute("decode", "--alphabet", config.DefaultBaseChars, "B")
	assert.ErrorIs(t, err, shortid.ErrInvalidShortForm)
}
