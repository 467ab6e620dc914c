// Package textutil は摘要欄・保険番号の表示テキストを整えます。
package textutil

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	fullWidthFirst = '！' // U+FF01
	fullWidthLast  = '～' // U+FF5E
	fullWidthShift = 0xFEE0
	ideographicSP  = '　'
)

func narrowASCII(r rune) rune {
	switch {
	case r == ideographicSP:
		return ' '
	case r >= fullWidthFirst && r <= fullWidthLast:
		return r - fullWidthShift
	}
	return r
}

// ToHalfWidthASCII は全角英数記号と全角スペースを半角にします。
// カナなどそれ以外の文字は変換しません。
func ToHalfWidthASCII(s string) string {
	out, _, err := transform.String(runes.Map(narrowASCII), s)
	if err != nil {
		return s
	}
	return out
}
