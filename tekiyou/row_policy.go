package tekiyou

// Separator は摘要欄の行の区切り線の種類です。値はそのままCSSクラスになります。
type Separator string

const (
	SeparatorNone Separator = ""
	// 診療識別の上位桁が変わる境界
	SeparatorUpperShinku Separator = "row-upper-shinku"
	// 新しい診療識別、または同じ診療識別内の次の一連単位
	SeparatorNextShinku Separator = "row-next-shinku"
	// 一連単位内の次の算定単位
	SeparatorNewSantei Separator = "row-new-santei"
)

// SeparatorInput は行の位置情報です。
type SeparatorInput struct {
	FirstIchirenInSection bool
	FirstSanteiInIchiren  bool
	FirstItemInSantei     bool
	ShinkuUpper           string
	PrevShinkuUpper       string
	HasRenderedRows       bool
}

// ResolveSeparator は行の位置から区切り線を1つだけ決めます。上から順に評価します。
func ResolveSeparator(in SeparatorInput) Separator {
	if in.FirstIchirenInSection {
		if in.PrevShinkuUpper != "" && in.ShinkuUpper != in.PrevShinkuUpper {
			return SeparatorUpperShinku
		}
		if in.HasRenderedRows {
			return SeparatorNextShinku
		}
		return SeparatorNone
	}
	if in.FirstSanteiInIchiren {
		return SeparatorNextShinku
	}
	if in.FirstItemInSantei {
		return SeparatorNewSantei
	}
	return SeparatorNone
}
