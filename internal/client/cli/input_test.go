package cli

import (
	"bufio"
	"bytes"
	"errors"
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
	got, err := GetSimpleText(rdr("  hello world \n"), "Name", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name: ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name", &out)
	require.Error(t, err)
}

func TestGetLines_StopsAtEmptyLine(t *testing.T) {
	var out bytes.Buffer
	got, err := GetLines(rdr("a=1\nb=2\n\nc=3\n"), "Specs", &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a=1", "b=2"}, got)

	got, err = GetLines(rdr("x=1"), "Specs", &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"x=1"}, got)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("pw"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "pw", string(pw))

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.Error(t, err)
}

func TestAsk_KeepsCurrentOnEmpty(t *testing.T) {
	var out bytes.Buffer
	a := &App{reader: rdr("\nnew\n"), out: &out}

	v, err := a.ask("Name", "old")
	require.NoError(t, err)
	assert.Equal(t, "old", v)

	v, err = a.ask("Name", "old")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
	assert.Contains(t, out.String(), "Name [old]: ")
}

func TestConfirm(t *testing.T) {
	a := &App{reader: rdr("Y\nno\n\n"), out: &bytes.Buffer{}}
	for _, want := range []bool{true, false, false} {
		got, err := a.confirm("Sure?")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, splitList(" a.jpg, ,b.jpg ,"))
	assert.Nil(t, splitList(""))
}
