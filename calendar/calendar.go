// Package calendar は摘要欄カレンダーと患者年齢表示で使う日付計算をまとめます。
package calendar

import (
	"errors"
	"fmt"
	"time"

	"ukeview/model"
)

// ErrNotFullDate は年月のみの値に日付書式を要求したときのエラーです。
var ErrNotFullDate = errors.New("calendar: wareki value has no day")

// DaysInMonth は year 年 month 月の日数を返します(翌月0日の日付)。
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayOfWeek は曜日を返します。0 が日曜です。
func DayOfWeek(year, month, day int) int {
	return int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday())
}

// EndOfMonth は月末日を返します。
func EndOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}

// WesternYear は元号の基準年が分かれば西暦年を返します。
func WesternYear(w model.Wareki) (int, bool) {
	if w.Gengou.BaseYear == nil {
		return 0, false
	}
	return *w.Gengou.BaseYear + w.Year - 1, true
}

// FormatEraShort は和暦を "R06.02" / "2024(R06).02.15" の形式に整形します。
func FormatEraShort(w model.Wareki) string {
	yearPart := fmt.Sprintf("%s%02d", w.Gengou.Alphabet, w.Year)
	if wy, ok := WesternYear(w); ok {
		yearPart = fmt.Sprintf("%d(%s)", wy, yearPart)
	}
	s := fmt.Sprintf("%s.%02d", yearPart, w.Month)
	if w.Day != nil {
		s += fmt.Sprintf(".%02d", *w.Day)
	}
	return s
}

// FormatYearMonth は年月値を整形します。日が含まれていても年月までしか出しません。
func FormatYearMonth(w model.Wareki) string {
	w.Day = nil
	return FormatEraShort(w)
}

// FormatDate は年月日値を整形します。日が無い値には ErrNotFullDate を返します。
func FormatDate(w model.Wareki) (string, error) {
	if w.Day == nil {
		return "", ErrNotFullDate
	}
	return FormatEraShort(w), nil
}

// DateDisplay は表示用に西暦と和暦を分けた日付です。
type DateDisplay struct {
	Text        string
	WesternYear string
	WarekiPart  string
	Rest        string
}

// NewDateDisplay は年月値の FormatYearMonth を西暦部・和暦部・残りに分けます。
// 日が含まれていても年月までしか出しません。
// 西暦換算できない場合は和暦のみを WarekiPart に入れます。
func NewDateDisplay(w model.Wareki) DateDisplay {
	text := FormatYearMonth(w)
	rest := fmt.Sprintf(".%02d", w.Month)
	era := fmt.Sprintf("%s%02d", w.Gengou.Alphabet, w.Year)
	wy, ok := WesternYear(w)
	if !ok {
		return DateDisplay{Text: text, WarekiPart: era, Rest: rest}
	}
	return DateDisplay{
		Text:        text,
		WesternYear: fmt.Sprintf("%d", wy),
		WarekiPart:  "(" + era + ")",
		Rest:        rest,
	}
}

// Age は満年齢(年・月)です。
type Age struct {
	Years  int
	Months int
}

// LegalAgeAt は asOf 時点の満年齢を返します。
// 年齢は誕生日の前日に加算されるため、判定日を1日進めてから経過月数を数えます。
func LegalAgeAt(birthYear, birthMonth, birthDay int, asOf time.Time) Age {
	ref := asOf.AddDate(0, 0, 1)
	total := (ref.Year()-birthYear)*12 + (int(ref.Month()) - birthMonth)
	if ref.Day() < birthDay {
		total--
	}
	if total < 0 {
		total = 0
	}
	return Age{Years: total / 12, Months: total % 12}
}
