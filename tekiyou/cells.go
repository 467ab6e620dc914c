package tekiyou

import (
	"strconv"
	"strings"

	"ukeview/calendar"
	"ukeview/futan"
	"ukeview/model"
)

// MinCompactCalendarColumns は縦型レイアウトのカレンダー列の最小数です。
const MinCompactCalendarColumns = 2

// Cell は見出し・カレンダーの1セルです。
type Cell struct {
	ClassName string
	Text      string
}

// FutanCell は負担区分スロットの1セルです。
type FutanCell struct {
	ClassName string
	Active    bool
}

func calendarClass(year, month, day int, horizontal bool) string {
	classes := []string{"col-cal"}
	if horizontal && day == 1 {
		classes = append(classes, "cal-month-start")
	}
	switch calendar.DayOfWeek(year, month, day) {
	case 0:
		classes = append(classes, "cal-sun")
	case 2, 4:
		classes = append(classes, "cal-tue-thu")
	case 6:
		classes = append(classes, "cal-sat")
	}
	if horizontal && day%5 == 1 && day > 1 {
		classes = append(classes, "cal-5day-border")
	}
	return strings.Join(classes, " ")
}

// CalendarHeaders は横型レイアウトの日付見出し(1日〜月末)を返します。
func CalendarHeaders(year, month int) []Cell {
	n := calendar.DaysInMonth(year, month)
	cells := make([]Cell, 0, n)
	for day := 1; day <= n; day++ {
		cells = append(cells, Cell{ClassName: calendarClass(year, month, day, true), Text: strconv.Itoa(day)})
	}
	return cells
}

// CalendarCells は横型レイアウトの1行分のカレンダーセルです。daily が nil なら全て空欄です。
func CalendarCells(daily []model.DailyKaisuu, year, month int) []Cell {
	n := calendar.DaysInMonth(year, month)
	cells := make([]Cell, 0, n)
	for day := 1; day <= n; day++ {
		cells = append(cells, Cell{
			ClassName: calendarClass(year, month, day, true),
			Text:      kaisuuText(DailyKaisuuOn(daily, year, month, day)),
		})
	}
	return cells
}

// CompactCalendarHeaders は縦型レイアウトの算定日見出しです。最小列数まで空欄で埋めます。
func CompactCalendarHeaders(activeDays []int, year, month int) []Cell {
	cells := make([]Cell, 0, compactColumnCount(activeDays))
	for _, day := range activeDays {
		cells = append(cells, Cell{ClassName: calendarClass(year, month, day, false), Text: strconv.Itoa(day)})
	}
	return padCompact(cells)
}

// CompactCalendarCells は縦型レイアウトの1行分のセルです。
func CompactCalendarCells(daily []model.DailyKaisuu, activeDays []int, year, month int) []Cell {
	cells := make([]Cell, 0, compactColumnCount(activeDays))
	for _, day := range activeDays {
		cells = append(cells, Cell{
			ClassName: calendarClass(year, month, day, false),
			Text:      kaisuuText(DailyKaisuuOn(daily, year, month, day)),
		})
	}
	return padCompact(cells)
}

func compactColumnCount(activeDays []int) int {
	if len(activeDays) < MinCompactCalendarColumns {
		return MinCompactCalendarColumns
	}
	return len(activeDays)
}

func padCompact(cells []Cell) []Cell {
	for len(cells) < MinCompactCalendarColumns {
		cells = append(cells, Cell{ClassName: "col-cal"})
	}
	return cells
}

func kaisuuText(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func futanClass(i int, active bool) string {
	classes := []string{"col-futan"}
	if !active {
		classes = append(classes, "futan-inactive")
	}
	if i == 0 {
		classes = append(classes, "futan-outer-left")
	}
	if i == futan.SlotCount-1 {
		classes = append(classes, "futan-outer-right")
	}
	return strings.Join(classes, " ")
}

// FutanHeaders は負担区分スロットの見出しです。
func FutanHeaders(slots futan.Slots) []Cell {
	cells := make([]Cell, futan.SlotCount)
	for i := range cells {
		cells[i] = Cell{ClassName: futanClass(i, slots[i]), Text: futan.Labels[i]}
	}
	return cells
}

// FutanCells は1行分の負担区分スロットです。show が false の行には印を付けません。
func FutanCells(code string, show bool, slots futan.Slots) []FutanCell {
	decoded := futan.Decode(code)
	cells := make([]FutanCell, futan.SlotCount)
	for i := range cells {
		cells[i] = FutanCell{ClassName: futanClass(i, slots[i]), Active: show && decoded[i]}
	}
	return cells
}
