// Package tekiyou は摘要欄を表の行データに組み立てます。
package tekiyou

import (
	"strings"

	"ukeview/futan"
	"ukeview/model"
	"ukeview/textutil"
)

// Layout は摘要欄の表の形式です。
type Layout string

const (
	// LayoutHorizontal は1日〜月末のカレンダーとコード・負担区分スロット列を持つ形式です。
	LayoutHorizontal Layout = "horizontal"
	// LayoutCompact は算定日のみの列と負担区分コード1列を持つ形式です。
	LayoutCompact Layout = "compact"
)

// UnknownItemPrefix で始まるマスター名称は未収載の明細として強調表示します。
const UnknownItemPrefix = "【不明な"

// TimesSign は点数と回数の間の記号です。
const TimesSign = "x"

// ColumnWidths は列幅(px)です。
type ColumnWidths struct {
	Code      int
	Shinku    int
	Futan     int
	FutanCode int
	Mark      int
	Name      int
	Tensuu    int
	TimesSign int
	Kaisuu    int
	Calendar  int
}

var (
	HorizontalWidths = ColumnWidths{Code: 66, Shinku: 29, Futan: 20, Mark: 18, Name: 290, Tensuu: 68, TimesSign: 14, Kaisuu: 36, Calendar: 20}
	CompactWidths    = ColumnWidths{Shinku: 29, FutanCode: 24, Mark: 18, Name: 290, Tensuu: 68, TimesSign: 14, Kaisuu: 36, Calendar: 20}
)

// Total は固定列とカレンダー列を合わせた表の幅です。
func (w ColumnWidths) Total(calendarColumns int) int {
	fixed := w.Code + w.Shinku + w.Futan*futan.SlotCount + w.FutanCode + w.Mark + w.Name + w.Tensuu + w.TimesSign + w.Kaisuu
	return fixed + w.Calendar*calendarColumns
}

// Options は Build の入力です。
type Options struct {
	Layout         Layout
	Year           int
	Month          int
	Slots          futan.Slots
	NormalizeASCII bool
}

// Row は明細1件分の行です。
type Row struct {
	Separator     Separator
	ItemType      model.ItemType
	CategoryClass string
	Unknown       bool
	ShinkuCode    string
	Code          string
	FutanCode     string
	FutanKubun    string
	FutanCells    []FutanCell
	Mark          string
	Name          []textutil.Segment
	Detail        []textutil.Segment
	Appended      []textutil.Segment
	IsTotalRow    bool
	Tensuu        string
	TimesSign     string
	Kaisuu        string
	SanteiDays    string
	CalendarCells []Cell
}

// Table は摘要欄の表です。
type Table struct {
	Layout          Layout
	ClassName       string
	Widths          ColumnWidths
	Width           int
	FutanHeaders    []Cell
	CalendarHeaders []Cell
	Rows            []Row
}

// Compact は縦型レイアウトかどうかを返します。
func (t Table) Compact() bool { return t.Layout == LayoutCompact }

// CalendarColumns はカレンダー列の数です。
func (t Table) CalendarColumns() int { return len(t.CalendarHeaders) }

// 走査中の位置。行の数で「この階層で最初か」を判定します。
type walkContext struct {
	shinkuCode      string
	shinkuUpper     string
	prevShinkuUpper string
	futanKubun      string
	sectionStart    int
	ichirenStart    int
}

type builder struct {
	opts       Options
	activeDays []int
	rows       []Row
}

// Build は摘要欄を表にします。入力の検証は行わず、欠けている値は空として扱います。
func Build(t model.Tekiyou, opts Options) Table {
	if opts.Layout != LayoutCompact {
		opts.Layout = LayoutHorizontal
	}
	b := &builder{opts: opts}
	table := Table{Layout: opts.Layout}
	if opts.Layout == LayoutCompact {
		b.activeDays = CollectActiveDays(t.ShinryouShikibetsuSections)
		table.ClassName = "tekiyou-table tekiyou-compact"
		table.Widths = CompactWidths
		table.CalendarHeaders = CompactCalendarHeaders(b.activeDays, opts.Year, opts.Month)
	} else {
		table.ClassName = "tekiyou-table"
		table.Widths = HorizontalWidths
		table.FutanHeaders = FutanHeaders(opts.Slots)
		table.CalendarHeaders = CalendarHeaders(opts.Year, opts.Month)
	}
	table.Width = table.Widths.Total(len(table.CalendarHeaders))

	prevUpper := ""
	for _, section := range t.ShinryouShikibetsuSections {
		code := section.ShinryouShikibetsu.Code.String()
		upper := leadingDigit(code)
		b.walkSection(section, walkContext{
			shinkuCode:      code,
			shinkuUpper:     upper,
			prevShinkuUpper: prevUpper,
		})
		prevUpper = upper
	}
	table.Rows = b.rows
	return table
}

func leadingDigit(code string) string {
	for _, r := range code {
		return string(r)
	}
	return ""
}

func (b *builder) walkSection(section model.ShinryouShikibetsuSection, wc walkContext) {
	wc.sectionStart = len(b.rows)
	for _, ichiren := range section.IchirenUnits {
		wc.futanKubun = ichiren.FutanKubun
		wc.ichirenStart = len(b.rows)
		for _, santei := range ichiren.SanteiUnits {
			b.walkSantei(santei, wc)
		}
	}
}

func (b *builder) walkSantei(santei model.SanteiUnit, wc walkContext) {
	totalIdx := TotalRowIndex(santei.Items)
	for i, item := range santei.Items {
		firstIchirenInSection := len(b.rows) == wc.sectionStart
		firstItemInIchiren := len(b.rows) == wc.ichirenStart
		sep := ResolveSeparator(SeparatorInput{
			FirstIchirenInSection: firstIchirenInSection,
			FirstSanteiInIchiren:  firstItemInIchiren,
			FirstItemInSantei:     i == 0,
			ShinkuUpper:           wc.shinkuUpper,
			PrevShinkuUpper:       wc.prevShinkuUpper,
			HasRenderedRows:       len(b.rows) > 0,
		})

		row := b.itemRow(item)
		row.Separator = sep
		row.FutanKubun = wc.futanKubun
		if firstIchirenInSection && i == 0 {
			row.ShinkuCode = wc.shinkuCode
		}
		if i == 0 {
			row.Mark = "＊"
		}
		if b.opts.Layout == LayoutCompact {
			row.Code = ""
			if firstItemInIchiren {
				row.FutanCode = wc.futanKubun
			}
		} else {
			row.FutanCells = FutanCells(wc.futanKubun, firstItemInIchiren, b.opts.Slots)
		}

		var daily []model.DailyKaisuu
		if i == totalIdx {
			row.IsTotalRow = true
			daily = santei.DailyKaisuus
			row.SanteiDays = FormatSanteiDays(daily, b.opts.Year, b.opts.Month)
			if santei.Tensuu > 0 {
				row.Tensuu = textutil.FormatNumber(santei.Tensuu)
				row.TimesSign = TimesSign
				row.Kaisuu = textutil.FormatNumber(santei.Kaisuu)
			}
		}
		if b.opts.Layout == LayoutCompact {
			row.CalendarCells = CompactCalendarCells(daily, b.activeDays, b.opts.Year, b.opts.Month)
		} else {
			row.CalendarCells = CalendarCells(daily, b.opts.Year, b.opts.Month)
		}
		b.rows = append(b.rows, row)
	}
}

func (b *builder) itemRow(item model.Item) Row {
	norm := b.opts.NormalizeASCII
	row := Row{ItemType: item.ItemType(), CategoryClass: CategoryClass(item)}
	switch it := item.(type) {
	case model.ShinryouKouiItem:
		b.fillMedical(&row, it.MedicalItem, false)
	case model.IyakuhinItem:
		b.fillMedical(&row, it.MedicalItem, false)
	case model.TokuteiKizaiItem:
		b.fillMedical(&row, it.MedicalItem, true)
	case model.CommentItem:
		row.Code = it.Master.Code
		row.Name = textutil.SplitParenthetical(it.Text.Text, norm)
		if it.AppendedContent != nil && it.AppendedContent.Text != "" {
			row.Appended = textutil.SplitParenthetical(it.AppendedContent.Text, norm)
		}
	}
	return row
}

func (b *builder) fillMedical(row *Row, m model.MedicalItem, tokuteiKizai bool) {
	norm := b.opts.NormalizeASCII
	row.Code = m.Master.Code
	row.Unknown = strings.HasPrefix(m.Text.MasterName, UnknownItemPrefix)
	row.Name = textutil.SplitParenthetical(DisplayName(m), norm)

	var parts []string
	if s := m.Text.Shiyouryou; s != nil && *s != "" {
		parts = append(parts, *s)
	}
	if p := m.Text.UnitPrice; p != nil && *p != "" {
		price := *p
		if tokuteiKizai {
			price = textutil.NormalizeTokenizedNumber(price)
		}
		parts = append(parts, price)
	}
	if len(parts) > 0 {
		row.Detail = textutil.SplitParenthetical(strings.Join(parts, " "), norm)
	}
}

// DisplayName は商品名がありマスター名称と異なる場合に商品名を、それ以外はマスター名称を返します。
func DisplayName(m model.MedicalItem) string {
	if p := m.Text.ProductName; p != nil && *p != "" && *p != m.Text.MasterName {
		return *p
	}
	return m.Text.MasterName
}

// CategoryClass は明細種別の行クラスです。
func CategoryClass(item model.Item) string {
	switch item.(type) {
	case model.ShinryouKouiItem:
		return "item-si"
	case model.IyakuhinItem:
		return "item-iy"
	case model.TokuteiKizaiItem:
		return "item-to"
	case model.CommentItem:
		return "item-co"
	default:
		return ""
	}
}
