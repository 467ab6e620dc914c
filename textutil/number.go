package textutil

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberToken = regexp.MustCompile(`-?\d+(?:,\d+)*(?:\.\d+)?`)

// FormatNumber は桁区切り付きで整数を整形します。
func FormatNumber(n int) string {
	return message.NewPrinter(language.Japanese).Sprintf("%d", n)
}

// NormalizeTokenizedNumber は半角化したうえで文字列中の数値を桁区切りで整形し直します。
// 小数部はそのまま残します。
func NormalizeTokenizedNumber(text string) string {
	normalized := ToHalfWidthASCII(text)
	return numberToken.ReplaceAllStringFunc(normalized, func(token string) string {
		intPart, frac, hasFrac := strings.Cut(token, ".")
		v, err := strconv.ParseInt(strings.ReplaceAll(intPart, ",", ""), 10, 64)
		if err != nil {
			return token
		}
		s := message.NewPrinter(language.Japanese).Sprintf("%d", v)
		if hasFrac {
			s += "." + frac
		}
		return s
	})
}
