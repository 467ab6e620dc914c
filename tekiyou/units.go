package tekiyou

import (
	"sort"

	"ukeview/model"
)

// LastNonCommentIndex はコメント以外の最後の明細の添字を返します。無ければ -1 です。
func LastNonCommentIndex(items model.Items) int {
	last := -1
	for i, item := range items {
		if item.ItemType() != model.ItemTypeComment {
			last = i
		}
	}
	return last
}

// TotalRowIndex は算定単位の点数・回数・日別回数を出す行の添字です。
// 全てコメントなら最後の明細です。明細が無ければ -1 です。
func TotalRowIndex(items model.Items) int {
	if i := LastNonCommentIndex(items); i >= 0 {
		return i
	}
	return len(items) - 1
}

// DailyKaisuuOn は指定日の回数を返します。該当が無ければ 0 です。
func DailyKaisuuOn(daily []model.DailyKaisuu, year, month, day int) int {
	for _, dk := range daily {
		if dk.Date.Year == year && dk.Date.Month == month && dk.Date.Day == day {
			return dk.Kaisuu
		}
	}
	return 0
}

// CollectActiveDays は回数が1以上の日を重複なしの昇順で返します。
func CollectActiveDays(sections []model.ShinryouShikibetsuSection) []int {
	seen := make(map[int]struct{})
	for _, section := range sections {
		for _, ichiren := range section.IchirenUnits {
			for _, santei := range ichiren.SanteiUnits {
				for _, dk := range santei.DailyKaisuus {
					if dk.Kaisuu > 0 {
						seen[dk.Date.Day] = struct{}{}
					}
				}
			}
		}
	}
	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}
