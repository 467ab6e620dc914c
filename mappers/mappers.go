// Package mappers はレセプトのJSONモデルを画面表示用のデータに変換します。
package mappers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ukeview/calendar"
	"ukeview/model"
	"ukeview/textutil"
)

const (
	KubunIryouHoken = "医療保険"
	kouhiPrefix     = "公費"
	utagaiCode      = "8002"
)

func fallbackDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// formatFullDate は年月日値を整形します。日が無い値は "-" です。
func formatFullDate(w model.Wareki) string {
	s, err := calendar.FormatDate(w)
	if err != nil {
		return "-"
	}
	return s
}

func makeUnitValue(n *int, unit string) *UnitValue {
	if n == nil {
		return nil
	}
	return &UnitValue{Value: textutil.FormatNumber(*n), Unit: unit}
}

// 一部負担金のうち給付対象分は括弧で囲みます。
func makeParenUnitValue(n *int, unit string) *UnitValue {
	v := makeUnitValue(n, unit)
	if v != nil {
		v.Prefix, v.Suffix = "(", ")"
	}
	return v
}

// BuildReceiptLabel はナビゲーション用のラベルを作ります。
func BuildReceiptLabel(r model.Receipt) ReceiptLabel {
	nyuugai := "外来"
	if r.IsNyuuin() {
		nyuugai = "入院"
	}
	return ReceiptLabel{
		IDPart:       fmt.Sprintf("%04d", r.ID),
		ShinryouYm:   calendar.FormatYearMonth(r.ShinryouYm.Wareki),
		NyuugaiLabel: nyuugai,
		PatientID:    fallbackDash(derefString(r.Patient.ID)),
		PatientName:  fallbackDash(r.Patient.Name),
	}
}

// String はラベルを1行の文字列にします。
func (l ReceiptLabel) String() string {
	return strings.Join([]string{l.IDPart, l.ShinryouYm, l.NyuugaiLabel, l.PatientID, l.PatientName}, " ")
}

// BuildReceiptHeader はレセプト種別4種と特記事項、入院日・病棟を並べます。
func BuildReceiptHeader(r model.Receipt) ReceiptHeader {
	t := r.Type
	h := ReceiptHeader{
		ID:         r.ID,
		ShinryouYm: calendar.NewDateDisplay(r.ShinryouYm.Wareki),
		Nyuugai:    r.Nyuugai,
	}
	for _, cn := range []model.CodeName{t.TensuuHyouType, t.MainHokenType, t.HokenMultipleType, t.PatientAgeType} {
		h.TypeBadges = append(h.TypeBadges, Badge{Code: cn.Code.String(), Name: cn.Name})
	}
	for _, tk := range r.TokkiJikous {
		h.TokkiJikous = append(h.TokkiJikous, Badge{Code: tk.Code.String(), Name: tk.Name})
	}
	if r.IsNyuuin() {
		if r.NyuuinDate != nil {
			h.NyuuinDate = formatFullDate(r.NyuuinDate.Wareki)
		}
		names := make([]string, 0, len(r.ByoushouTypes))
		for _, b := range r.ByoushouTypes {
			names = append(names, b.ShortName)
		}
		h.Byoushou = strings.Join(names, "、")
	}
	return h
}

// BuildPatientCard は患者カードを作ります。年齢は診療月末日時点の満年齢です。
func BuildPatientCard(r model.Receipt) PatientCard {
	p := r.Patient
	card := PatientCard{
		PatientID: fallbackDash(derefString(p.ID)),
		Name:      fallbackDash(p.Name),
		NameKana:  derefString(p.NameKana),
		SexName:   p.Sex.Name,
		BirthDate: "-",
	}
	switch p.Sex.Code.String() {
	case "1":
		card.SexKind = "male"
	case "2":
		card.SexKind = "female"
	default:
		card.SexKind = "other"
	}
	if b := p.BirthDate; b != nil {
		card.BirthDate = formatFullDate(b.Wareki)
		asOf := calendar.EndOfMonth(r.ShinryouYm.Year, r.ShinryouYm.Month)
		age := calendar.LegalAgeAt(b.Year, b.Month, b.Day, asOf)
		card.Age = &age
		card.IsBirthMonth = b.Month == r.ShinryouYm.Month
	}
	return card
}

func kouhiKubun(i int) string { return kouhiPrefix + strconv.Itoa(i+1) }

func kouhiKyuufu(k model.RyouyouNoKyuufu, i int) *model.RyouyouKyuufu {
	if i < len(k.KouhiFutanIryous) {
		return &k.KouhiFutanIryous[i]
	}
	return nil
}

func hokenRow(kubun, hokenjaBangou, shikaku string, rk *model.RyouyouKyuufu) HokenRow {
	row := HokenRow{Kubun: kubun, HokenjaBangou: hokenjaBangou, ShikakuBangou: shikaku}
	if rk != nil {
		row.Jitsunissuu = makeUnitValue(rk.ShinryouJitsunissuu, "日")
		row.Tensuu = makeUnitValue(rk.GoukeiTensuu, "点")
		row.KyuufuTaishouIchibuFutankin = makeParenUnitValue(rk.KyuufuTaishouIchibuFutankin, "円")
		row.IchibuFutankin = makeUnitValue(rk.IchibuFutankin, "円")
	}
	return row
}

// BuildHokenCard は医療保険(あれば)と公費を添字順に並べます。保険が1件も無ければ nil です。
func BuildHokenCard(r model.Receipt, normalizeASCII bool) *HokenCard {
	norm := func(s string) string {
		if normalizeASCII {
			return textutil.ToHalfWidthASCII(s)
		}
		return s
	}
	h := r.Hokens
	k := r.RyouyouNoKyuufu
	card := &HokenCard{}

	if ih := h.IryouHoken; ih != nil {
		var shikaku []string
		if ih.Kigou != nil {
			shikaku = append(shikaku, norm(*ih.Kigou))
		}
		shikaku = append(shikaku, norm(ih.Bangou))
		if ih.Edaban != nil {
			shikaku = append(shikaku, norm(*ih.Edaban))
		}
		card.Rows = append(card.Rows, hokenRow(KubunIryouHoken, norm(ih.HokenjaBangou), strings.Join(shikaku, "・"), k.IryouHoken))

		if ih.KyuufuWariai != nil {
			card.DetailParts = append(card.DetailParts, fmt.Sprintf("給付割合: %d%%", *ih.KyuufuWariai))
		}
		if ih.TeishotokuType != nil && *ih.TeishotokuType != "" {
			card.DetailParts = append(card.DetailParts, "低所得: "+*ih.TeishotokuType)
		}
	}
	for i, kouhi := range h.KouhiFutanIryous {
		card.Rows = append(card.Rows, hokenRow(kouhiKubun(i), norm(kouhi.FutanshaBangou), norm(kouhi.JukyuushaBangou), kouhiKyuufu(k, i)))
	}

	if len(card.Rows) == 0 {
		return nil
	}
	return card
}

func positive(n *int) bool { return n != nil && *n > 0 }

func kyuufuRow(kubun string, rk model.RyouyouKyuufu) KyuufuRow {
	row := KyuufuRow{
		Kubun:         kubun,
		Kaisuu:        makeUnitValue(rk.ShokujiSeikatsuRyouyouKaisuu, "回"),
		GoukeiKingaku: makeUnitValue(rk.ShokujiSeikatsuRyouyouGoukeiKingaku, "円"),
	}
	if n := rk.ShokujiSeikatsuRyouyouHyoujunFutangaku; n > 0 {
		row.HyoujunFutangaku = makeUnitValue(&n, "円")
	}
	return row
}

// BuildKyuufuRows は食事・生活療養の実績がある保険だけを行にします。
func BuildKyuufuRows(r model.Receipt) []KyuufuRow {
	k := r.RyouyouNoKyuufu
	var rows []KyuufuRow
	if ih := k.IryouHoken; ih != nil {
		if positive(ih.ShokujiSeikatsuRyouyouKaisuu) || positive(ih.ShokujiSeikatsuRyouyouGoukeiKingaku) || ih.ShokujiSeikatsuRyouyouHyoujunFutangaku > 0 {
			rows = append(rows, kyuufuRow(KubunIryouHoken, *ih))
		}
	}
	for i, rk := range k.KouhiFutanIryous {
		if !positive(rk.ShokujiSeikatsuRyouyouKaisuu) && !positive(rk.ShokujiSeikatsuRyouyouGoukeiKingaku) {
			continue
		}
		rows = append(rows, kyuufuRow(kouhiKubun(i), rk))
	}
	return rows
}

func kubunOrder(kubun string) int {
	if kubun == KubunIryouHoken {
		return 0
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(kubun, kouhiPrefix)); err == nil && strings.HasPrefix(kubun, kouhiPrefix) {
		return 100 + n
	}
	return 999
}

// BuildHokenKyuufuCard は保険行と食事・生活療養行を区分ごとに1行へまとめます。
// 医療保険、公費1, 公費2... の順です。どちらも無ければ nil です。
func BuildHokenKyuufuCard(r model.Receipt, normalizeASCII bool) *HokenKyuufuCard {
	hoken := BuildHokenCard(r, normalizeASCII)
	kyuufu := BuildKyuufuRows(r)
	if hoken == nil && len(kyuufu) == 0 {
		return nil
	}

	card := &HokenKyuufuCard{ShowMealLifeColumns: r.IsNyuuin()}
	byKubun := make(map[string]int)
	if hoken != nil {
		card.DetailParts = hoken.DetailParts
		for _, row := range hoken.Rows {
			byKubun[row.Kubun] = len(card.Rows)
			card.Rows = append(card.Rows, HokenKyuufuRow{HokenRow: row})
		}
	}
	for _, row := range kyuufu {
		i, ok := byKubun[row.Kubun]
		if !ok {
			i = len(card.Rows)
			byKubun[row.Kubun] = i
			card.Rows = append(card.Rows, HokenKyuufuRow{HokenRow: HokenRow{Kubun: row.Kubun}})
		}
		card.Rows[i].Kaisuu = row.Kaisuu
		card.Rows[i].GoukeiKingaku = row.GoukeiKingaku
		card.Rows[i].HyoujunFutangaku = row.HyoujunFutangaku
	}
	sort.SliceStable(card.Rows, func(a, b int) bool {
		return kubunOrder(card.Rows[a].Kubun) < kubunOrder(card.Rows[b].Kubun)
	})
	for _, row := range card.Rows {
		if strings.TrimSpace(row.ShikakuBangou) != "" {
			card.ShikakuRows = append(card.ShikakuRows, row)
		}
	}
	return card
}

// TenkiClass は転帰コード1〜4に色分けクラスを返します。
func TenkiClass(code model.Code) string {
	if n, ok := code.Int(); ok && n >= 1 && n <= 4 {
		return "tag-tenki-" + strconv.Itoa(n)
	}
	return "tag-tenki"
}

// BuildDiseaseRows は傷病名を通し番号付きの行にします。
func BuildDiseaseRows(groups []model.ShoubyoumeiGroup) []DiseaseRow {
	var rows []DiseaseRow
	for _, g := range groups {
		for _, s := range g.Shoubyoumeis {
			var classes []string
			if s.IsMain {
				classes = append(classes, "disease-main")
			}
			if s.IsWorpro {
				classes = append(classes, "disease-worpro")
			}
			row := DiseaseRow{
				RowClass:   strings.Join(classes, " "),
				Index:      len(rows) + 1,
				Code:       s.MasterShoubyoumei.Code.String(),
				IsMain:     s.IsMain,
				IsWorpro:   s.IsWorpro,
				FullText:   s.FullText,
				Comment:    derefString(s.Comment),
				StartDate:  formatFullDate(s.StartDate.Wareki),
				TenkiClass: TenkiClass(s.Tenki.Code),
				TenkiName:  s.Tenki.Name,
			}
			for _, m := range s.MasterShuushokugos {
				code := m.Code.String()
				row.ShuushokugoCodes = append(row.ShuushokugoCodes, code)
				if code == utagaiCode {
					row.IsUtagai = true
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// BuildUkeHeader は医療機関名(無ければコード)、請求年月、審査支払機関を並べます。
func BuildUkeHeader(dr model.DigitalizedReceipt) UkeHeader {
	h := UkeHeader{
		HospitalName:   dr.Hospital.Code,
		SeikyuuYm:      calendar.NewDateDisplay(dr.SeikyuuYm.Wareki),
		AuditPayerName: dr.AuditPayer.Name,
		PrefectureName: dr.Prefecture.Name,
	}
	if dr.Hospital.Name != nil {
		h.HospitalName = *dr.Hospital.Name
	}
	if dr.Hospital.Location != "" {
		h.DetailParts = append(h.DetailParts, dr.Hospital.Location)
	}
	if dr.Hospital.Tel != "" {
		h.DetailParts = append(h.DetailParts, "TEL: "+dr.Hospital.Tel)
	}
	return h
}
