package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestGetSimpleText_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(rdr(""), "Name?", &out)
	assert.Error(t, err)
}

func TestGetMultiline_Terminator(t *testing.T) {
	var out bytes.Buffer
	reader := rdr("a\n  b\n.\nrest\n")
	got, err := GetMultiline(reader, "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\n  b", got)

	next, _ := reader.ReadString('\n')
	assert.Equal(t, "rest\n", next, "input after the terminator is left unread")
}

func TestGetMultiline_KeepsBlankLines(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("first paragraph\n\n\nsecond\r\n . \n.\n"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "first paragraph\n\n\nsecond\n . ", got)
}

func TestGetMultiline_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr(""), "Enter text", &out)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetMultiline_EOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("one\ntwo"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo", got)
}

func TestReadAll(t *testing.T) {
	got, err := ReadAll(rdr("piped\ntext\n"))
	require.NoError(t, err)
	assert.Equal(t, "piped\ntext\n", got)
}
