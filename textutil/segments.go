package textutil

// Segment は括弧の内外で分けたテキスト片です。InParen は外側の括弧を含みます。
type Segment struct {
	Text    string
	InParen bool
}

func isOpenParen(r rune) bool  { return r == '(' || r == '（' }
func isCloseParen(r rune) bool { return r == ')' || r == '）' }

// SplitParenthetical は text を括弧外と括弧内(入れ子を含む)の片に分けます。
// normalizeASCII が真なら先に ToHalfWidthASCII をかけます。
// 閉じられていない括弧以降は括弧外として扱います。
func SplitParenthetical(text string, normalizeASCII bool) []Segment {
	if normalizeASCII {
		text = ToHalfWidthASCII(text)
	}

	var (
		segs   []Segment
		normal []rune
		paren  []rune
		stack  []rune
	)
	flushNormal := func() {
		if len(normal) == 0 {
			return
		}
		if n := len(segs); n > 0 && !segs[n-1].InParen {
			segs[n-1].Text += string(normal)
		} else {
			segs = append(segs, Segment{Text: string(normal)})
		}
		normal = normal[:0]
	}

	for _, r := range text {
		if len(stack) == 0 {
			if isOpenParen(r) {
				flushNormal()
				stack = append(stack, r)
				paren = append(paren, r)
			} else {
				normal = append(normal, r)
			}
			continue
		}

		paren = append(paren, r)
		switch {
		case isOpenParen(r):
			stack = append(stack, r)
		case isCloseParen(r):
			// 対応しない閉じ括弧でも1段戻す
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				segs = append(segs, Segment{Text: string(paren), InParen: true})
				paren = paren[:0]
			}
		}
	}

	if len(stack) > 0 {
		normal = append(normal, paren...)
	}
	flushNormal()
	return segs
}

// JoinSegments は片を連結して元の文字列に戻します。
func JoinSegments(segs []Segment) string {
	n := 0
	for _, s := range segs {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range segs {
		b = append(b, s.Text...)
	}
	return string(b)
}
