package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

const (
	FontNormal = 0x00
	FontDouble = 0x11
	FontTall   = 0x01
)

// codePage858 selects PC858 (Latin-1 plus the euro sign) on Epson-compatible printers
const codePage858 = 19

// Document builds an ESC/POS byte stream. Text is transcoded to code page 858
// so accented Spanish characters print correctly.
type Document struct {
	buf   bytes.Buffer
	width int // characters per line: 32 for 58mm paper, 48 for 80mm
}

func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{ESC, '@'})
	d.buf.Write([]byte{ESC, 't', codePage858})
	return d
}

func (d *Document) Width() int { return d.width }

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line, wrapping at the paper width.
func (d *Document) Text(s string) *Document {
	for _, line := range wrap(s, d.width) {
		d.write(line)
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) Separator(char rune) *Document {
	d.write(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints key flush left and value flush right on one line.
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		d.Text(key)
		spaces = d.width - utf8.RuneCountInString(value)
		key = ""
	}
	d.write(key + strings.Repeat(" ", spaces) + value)
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// write transcodes s, replacing characters the code page lacks with '?'
func (d *Document) write(s string) {
	for _, r := range s {
		b, ok := charmap.CodePage858.EncodeRune(r)
		if !ok {
			b = '?'
		}
		d.buf.WriteByte(b)
	}
}

func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := ""
	for _, w := range words {
		switch {
		case current == "":
			current = w
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(w) <= width:
			current += " " + w
		default:
			lines = append(lines, current)
			current = w
		}
	}
	return append(lines, current)
}
