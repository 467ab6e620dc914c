package parsers

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// SkipBOM はUTF-8 BOMをスキップします。
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	if bytes.Equal(peeked, bom) {
		br.Discard(3)
	}
	return br
}

// sjisToUTF8 は Shift-JIS のバイトスライスを UTF-8 文字列に変換します。
func sjisToUTF8(b []byte) string {
	utf8Bytes, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b)
	if err != nil {
		return string(b)
	}
	return string(utf8Bytes)
}

// DecodeText はUTF-8として正しければそのまま、そうでなければShift-JISとして文字列にします。
// Windows版CLIの標準エラーはShift-JISで出力されます。
func DecodeText(b []byte) string {
	b = bytes.TrimRight(b, "\x00")
	if utf8.Valid(b) {
		return string(b)
	}
	return sjisToUTF8(b)
}
