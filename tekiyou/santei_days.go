package tekiyou

import (
	"sort"
	"strconv"
	"strings"

	"ukeview/model"
)

// FormatSanteiDays は請求月の算定日を "1~3, 5~6" の形式にまとめます。
func FormatSanteiDays(daily []model.DailyKaisuu, year, month int) string {
	seen := make(map[int]struct{})
	for _, dk := range daily {
		if dk.Kaisuu > 0 && dk.Date.Year == year && dk.Date.Month == month {
			seen[dk.Date.Day] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return ""
	}
	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)

	var parts []string
	start, prev := days[0], days[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
			return
		}
		parts = append(parts, strconv.Itoa(start)+"~"+strconv.Itoa(prev))
	}
	for _, d := range days[1:] {
		if d == prev+1 {
			prev = d
			continue
		}
		flush()
		start, prev = d, d
	}
	flush()
	return strings.Join(parts, ", ")
}
