package mappers

import (
	"fmt"

	"ukeview/futan"
	"ukeview/model"
	"ukeview/tekiyou"
)

// Layout はデータビューの画面レイアウトです。
type Layout string

const (
	LayoutVertical   Layout = "vertical"
	LayoutHorizontal Layout = "horizontal"
)

// ParseLayout は設定値からレイアウトを求めます。未知の値は vertical です。
func ParseLayout(s string) Layout {
	if Layout(s) == LayoutHorizontal {
		return LayoutHorizontal
	}
	return LayoutVertical
}

// TekiyouLayout は画面レイアウトに対応する摘要欄の表形式です。
func (l Layout) TekiyouLayout() tekiyou.Layout {
	if l == LayoutHorizontal {
		return tekiyou.LayoutHorizontal
	}
	return tekiyou.LayoutCompact
}

type Options struct {
	Layout                Layout
	NormalizeTekiyouASCII bool
	NormalizeHokenASCII   bool
}

// BuildTekiyouTable はレセプト1件の摘要欄を表にします。摘要欄が空なら nil です。
func BuildTekiyouTable(r model.Receipt, layout tekiyou.Layout, normalizeASCII bool) *tekiyou.Table {
	if len(r.Tekiyou.ShinryouShikibetsuSections) == 0 {
		return nil
	}
	table := tekiyou.Build(r.Tekiyou, tekiyou.Options{
		Layout:         layout,
		Year:           r.ShinryouYm.Year,
		Month:          r.ShinryouYm.Month,
		Slots:          futan.ReceiptSlots(r.Hokens),
		NormalizeASCII: normalizeASCII,
	})
	return &table
}

// BuildReceiptSection はレセプト1件分のカード群を組み立てます。
func BuildReceiptSection(id string, r model.Receipt, opts Options) ReceiptSection {
	horizontal := opts.Layout == LayoutHorizontal
	s := ReceiptSection{
		ID:         id,
		Label:      BuildReceiptLabel(r),
		Horizontal: horizontal,
		Header:     BuildReceiptHeader(r),
		Patient:    BuildPatientCard(r),
		Diseases:   BuildDiseaseRows(r.Shoubyoumeis),
		Tekiyou:    BuildTekiyouTable(r, opts.Layout.TekiyouLayout(), opts.NormalizeTekiyouASCII),
	}
	if horizontal {
		s.HokenKyuufu = BuildHokenKyuufuCard(r, opts.NormalizeHokenASCII)
	} else {
		s.Hoken = BuildHokenCard(r, opts.NormalizeHokenASCII)
		s.Kyuufu = BuildKyuufuRows(r)
	}
	return s
}

// BuildPage はCLI出力全体を1画面分の表示データにします。
// レセプトIDは出力全体の通し番号で receipt-0, receipt-1... です。
func BuildPage(out model.ReceiptisanOutput, opts Options) Page {
	if opts.Layout != LayoutHorizontal {
		opts.Layout = LayoutVertical
	}
	page := Page{Layout: opts.Layout}
	for _, dr := range out {
		group := ReceiptGroup{Uke: BuildUkeHeader(dr)}
		for _, r := range dr.Receipts {
			id := fmt.Sprintf("receipt-%d", len(page.NavItems))
			section := BuildReceiptSection(id, r, opts)
			page.NavItems = append(page.NavItems, NavItem{ID: id, Label: section.Label})
			group.Receipts = append(group.Receipts, section)
		}
		page.Groups = append(page.Groups, group)
	}
	return page
}
