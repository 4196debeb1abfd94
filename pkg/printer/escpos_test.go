package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransliterate(t *testing.T) {
	assert.Equal(t, "Joao da Conceicao", Transliterate("João da Conceição"))
	assert.Equal(t, "ORDEM DE SERVICO", Transliterate("ORDEM DE SERVIÇO"))
	assert.Equal(t, "plain ascii 123", Transliterate("plain ascii 123"))
	// Unmapped non-ASCII degrades to a placeholder instead of garbage bytes
	assert.Equal(t, "5?", Transliterate("5€"))
}

func TestKeyValuePadsToWidth(t *testing.T) {
	d := NewDocument(32)
	d.KeyValue("Subtotal", "247.50")

	lines := bytes.Split(d.Bytes(), []byte{LF})
	line := string(lines[0][2:]) // skip ESC @
	assert.Len(t, line, 32)
	assert.True(t, strings.HasPrefix(line, "Subtotal"))
	assert.True(t, strings.HasSuffix(line, "247.50"))
}

func TestItemLineTruncatesLongNames(t *testing.T) {
	d := NewDocument(32)
	d.ItemLine(2, "Pelicula de vidro temperado ultra resistente", "39.80")

	lines := bytes.Split(d.Bytes(), []byte{LF})
	line := string(lines[0][2:])
	assert.Len(t, line, 32)
	assert.True(t, strings.HasSuffix(line, "39.80"))
	assert.True(t, strings.HasPrefix(line, "2x Pelicula"))
}

func TestSeparatorMatchesWidth(t *testing.T) {
	d := NewDocument(48)
	d.Separator('-')

	lines := bytes.Split(d.Bytes(), []byte{LF})
	assert.Equal(t, strings.Repeat("-", 48), string(lines[0][2:]))
}

func TestDocumentStartsWithInit(t *testing.T) {
	d := NewDocument(0)
	assert.Equal(t, []byte{ESC, '@'}, d.Bytes()[:2])
	assert.Equal(t, 32, d.width)
}

func TestCutCommand(t *testing.T) {
	d := NewDocument(32)
	d.Cut()
	out := d.Bytes()
	assert.Equal(t, []byte{GS, 'V', 0x00}, out[len(out)-3:])
}
