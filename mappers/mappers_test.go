package mappers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ukeview/calendar"
	"ukeview/model"
	"ukeview/tekiyou"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func reiwa(year, month int) model.Wareki {
	return model.Wareki{Gengou: model.Gengou{Alphabet: "R", BaseYear: intPtr(2019)}, Year: year, Month: month}
}

func sampleReceipt() model.Receipt {
	return model.Receipt{
		ID:         3,
		ShinryouYm: model.YearMonth{Year: 2024, Month: 1, Wareki: reiwa(6, 1)},
		Nyuugai:    model.NyuugaiGairai,
		Patient: model.Patient{
			ID:        strPtr("12345"),
			Name:      "山田 太郎",
			NameKana:  strPtr("ﾔﾏﾀﾞ ﾀﾛｳ"),
			Sex:       model.CodeNameShort{Code: "1", Name: "男"},
			BirthDate: &model.DateValue{Year: 2000, Month: 1, Day: 10},
		},
		Type: model.ReceiptType{
			TensuuHyouType:    model.CodeName{Code: "1", Name: "医科"},
			MainHokenType:     model.CodeName{Code: "1", Name: "医保"},
			HokenMultipleType: model.CodeName{Code: "2", Name: "2併"},
			PatientAgeType:    model.CodeName{Code: "2", Name: "本外"},
		},
		Hokens: model.Hokens{
			IryouHoken: &model.IryouHoken{
				HokenjaBangou: "０６１３９９９９",
				Kigou:         strPtr("記号"),
				Bangou:        "１２３",
				KyuufuWariai:  intPtr(70),
			},
			KouhiFutanIryous: []model.KouhiFutanIryou{{FutanshaBangou: "54136015", JukyuushaBangou: "1234567"}},
		},
		RyouyouNoKyuufu: model.RyouyouNoKyuufu{
			IryouHoken: &model.RyouyouKyuufu{
				GoukeiTensuu:        intPtr(12345),
				ShinryouJitsunissuu: intPtr(2),
				IchibuFutankin:      intPtr(0),
			},
			KouhiFutanIryous: []model.RyouyouKyuufu{{GoukeiTensuu: intPtr(500)}},
		},
	}
}

func TestBuildReceiptLabel(t *testing.T) {
	r := sampleReceipt()
	l := BuildReceiptLabel(r)
	assert.Equal(t, ReceiptLabel{IDPart: "0003", ShinryouYm: "2024(R06).01", NyuugaiLabel: "外来", PatientID: "12345", PatientName: "山田 太郎"}, l)
	assert.Equal(t, "0003 2024(R06).01 外来 12345 山田 太郎", l.String())

	r.Patient.ID = nil
	r.Patient.Name = "  "
	r.Nyuugai = model.NyuugaiNyuuin
	l = BuildReceiptLabel(r)
	assert.Equal(t, "-", l.PatientID)
	assert.Equal(t, "-", l.PatientName)
	assert.Equal(t, "入院", l.NyuugaiLabel)
}

func TestBuildReceiptHeader(t *testing.T) {
	r := sampleReceipt()
	r.TokkiJikous = []model.CodeName{{Code: "29", Name: "区ア"}}
	h := BuildReceiptHeader(r)
	require.Len(t, h.TypeBadges, 4)
	assert.Equal(t, Badge{Code: "2", Name: "2併"}, h.TypeBadges[2])
	assert.Equal(t, []Badge{{Code: "29", Name: "区ア"}}, h.TokkiJikous)
	assert.Equal(t, "2024", h.ShinryouYm.WesternYear)
	assert.Empty(t, h.NyuuinDate)

	r.Nyuugai = model.NyuugaiNyuuin
	r.NyuuinDate = &model.DateValue{Wareki: model.Wareki{Gengou: model.Gengou{Alphabet: "R"}, Year: 5, Month: 12, Day: intPtr(28)}}
	r.ByoushouTypes = []model.CodeNameShort{{ShortName: "療養"}, {ShortName: "結核"}}
	h = BuildReceiptHeader(r)
	assert.Equal(t, "R05.12.28", h.NyuuinDate)
	assert.Equal(t, "療養、結核", h.Byoushou)
}

func TestYearMonthFieldsDropDay(t *testing.T) {
	r := sampleReceipt()
	r.ShinryouYm.Wareki.Day = intPtr(15)

	assert.Equal(t, "2024(R06).01", BuildReceiptLabel(r).ShinryouYm)
	h := BuildReceiptHeader(r)
	assert.Equal(t, "2024(R06).01", h.ShinryouYm.Text)
	assert.Equal(t, ".01", h.ShinryouYm.Rest)

	dr := model.DigitalizedReceipt{SeikyuuYm: model.YearMonth{Year: 2024, Month: 2, Wareki: reiwa(6, 2)}}
	dr.SeikyuuYm.Wareki.Day = intPtr(3)
	assert.Equal(t, "2024(R06).02", BuildUkeHeader(dr).SeikyuuYm.Text)
}

func TestFullDateFieldsRequireDay(t *testing.T) {
	r := sampleReceipt()
	r.Nyuugai = model.NyuugaiNyuuin
	r.NyuuinDate = &model.DateValue{Wareki: reiwa(5, 12)}
	assert.Equal(t, "-", BuildReceiptHeader(r).NyuuinDate)

	assert.Equal(t, "-", BuildPatientCard(r).BirthDate, "birth date without day")
	r.Patient.BirthDate.Wareki = model.Wareki{Gengou: model.Gengou{Alphabet: "H", BaseYear: intPtr(1989)}, Year: 12, Month: 1, Day: intPtr(10)}
	assert.Equal(t, "2000(H12).01.10", BuildPatientCard(r).BirthDate)

	start := reiwa(6, 1)
	start.Day = intPtr(5)
	groups := []model.ShoubyoumeiGroup{{Shoubyoumeis: []model.ShoubyoumeiEntry{
		{FullText: "日付なし", StartDate: model.DateValue{Wareki: reiwa(6, 1)}},
		{FullText: "日付あり", StartDate: model.DateValue{Wareki: start}},
	}}}
	rows := BuildDiseaseRows(groups)
	require.Len(t, rows, 2)
	assert.Equal(t, "-", rows[0].StartDate)
	assert.Equal(t, "2024(R06).01.05", rows[1].StartDate)
}

func TestBuildPatientCard(t *testing.T) {
	r := sampleReceipt()
	c := BuildPatientCard(r)
	assert.Equal(t, "male", c.SexKind)
	require.NotNil(t, c.Age)
	assert.Equal(t, calendar.Age{Years: 24, Months: 0}, *c.Age)
	assert.True(t, c.IsBirthMonth)
	assert.Equal(t, "ﾔﾏﾀﾞ ﾀﾛｳ", c.NameKana)

	r.Patient.BirthDate = nil
	r.Patient.Sex.Code = "9"
	c = BuildPatientCard(r)
	assert.Nil(t, c.Age)
	assert.Equal(t, "-", c.BirthDate)
	assert.Equal(t, "other", c.SexKind)
	assert.False(t, c.IsBirthMonth)
}

func TestBuildHokenCard(t *testing.T) {
	r := sampleReceipt()

	card := BuildHokenCard(r, false)
	require.NotNil(t, card)
	require.Len(t, card.Rows, 2)
	assert.Equal(t, "記号・１２３", card.Rows[0].ShikakuBangou)
	assert.Equal(t, &UnitValue{Value: "12,345", Unit: "点"}, card.Rows[0].Tensuu)
	assert.Equal(t, &UnitValue{Value: "0", Unit: "円"}, card.Rows[0].IchibuFutankin, "zero renders as 0")
	assert.Nil(t, card.Rows[0].KyuufuTaishouIchibuFutankin, "null renders blank")
	assert.Equal(t, []string{"給付割合: 70%"}, card.DetailParts)

	assert.Equal(t, "公費1", card.Rows[1].Kubun)
	assert.Equal(t, "1234567", card.Rows[1].ShikakuBangou)
	assert.Nil(t, card.Rows[1].Jitsunissuu)

	normalized := BuildHokenCard(r, true)
	assert.Equal(t, "06139999", normalized.Rows[0].HokenjaBangou)
	assert.Equal(t, "記号・123", normalized.Rows[0].ShikakuBangou)

	assert.Nil(t, BuildHokenCard(model.Receipt{}, false))
}

func TestBuildKyuufuRows(t *testing.T) {
	r := sampleReceipt()
	assert.Empty(t, BuildKyuufuRows(r))

	r.RyouyouNoKyuufu.IryouHoken.ShokujiSeikatsuRyouyouKaisuu = intPtr(9)
	r.RyouyouNoKyuufu.IryouHoken.ShokujiSeikatsuRyouyouGoukeiKingaku = intPtr(6000)
	r.RyouyouNoKyuufu.KouhiFutanIryous[0].ShokujiSeikatsuRyouyouHyoujunFutangaku = 460
	rows := BuildKyuufuRows(r)
	require.Len(t, rows, 1, "kouhi with only standard burden is skipped")
	assert.Equal(t, KubunIryouHoken, rows[0].Kubun)
	assert.Equal(t, "9", rows[0].Kaisuu.Value)
	assert.Nil(t, rows[0].HyoujunFutangaku, "zero standard burden renders blank")

	r.RyouyouNoKyuufu.KouhiFutanIryous[0].ShokujiSeikatsuRyouyouKaisuu = intPtr(3)
	rows = BuildKyuufuRows(r)
	require.Len(t, rows, 2)
	assert.Equal(t, &UnitValue{Value: "460", Unit: "円"}, rows[1].HyoujunFutangaku)
}

func TestBuildHokenKyuufuCard(t *testing.T) {
	r := sampleReceipt()
	r.Nyuugai = model.NyuugaiNyuuin
	r.Hokens.IryouHoken = nil
	r.RyouyouNoKyuufu.IryouHoken.ShokujiSeikatsuRyouyouKaisuu = intPtr(9)

	card := BuildHokenKyuufuCard(r, false)
	require.NotNil(t, card)
	require.Len(t, card.Rows, 2)
	assert.Equal(t, KubunIryouHoken, card.Rows[0].Kubun, "primary sorts first")
	assert.Empty(t, card.Rows[0].HokenjaBangou)
	assert.Equal(t, "9", card.Rows[0].Kaisuu.Value)
	assert.Equal(t, "公費1", card.Rows[1].Kubun)
	assert.True(t, card.ShowMealLifeColumns)
	require.Len(t, card.ShikakuRows, 1)
	assert.Equal(t, "公費1", card.ShikakuRows[0].Kubun)

	assert.Nil(t, BuildHokenKyuufuCard(model.Receipt{}, false))
}

func TestBuildDiseaseRows(t *testing.T) {
	groups := []model.ShoubyoumeiGroup{{
		Shoubyoumeis: []model.ShoubyoumeiEntry{
			{
				MasterShoubyoumei:  model.MasterCodeName{Code: "4619002"},
				MasterShuushokugos: []model.MasterCodeName{{Code: "8002"}},
				FullText:           "急性上気道炎の疑い",
				IsMain:             true,
				StartDate:          model.DateValue{Wareki: reiwa(6, 1)},
				Tenki:              model.CodeName{Code: "1", Name: "継続"},
			},
			{
				MasterShoubyoumei: model.MasterCodeName{Code: "0000999"},
				FullText:          "ワープロ病名",
				IsWorpro:          true,
				Comment:           strPtr("補足"),
				Tenki:             model.CodeName{Code: "9"},
			},
		},
	}}
	rows := BuildDiseaseRows(groups)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Index)
	assert.True(t, rows[0].IsUtagai)
	assert.Equal(t, "disease-main", rows[0].RowClass)
	assert.Equal(t, "tag-tenki-1", rows[0].TenkiClass)
	assert.Equal(t, "disease-worpro", rows[1].RowClass)
	assert.False(t, rows[1].IsUtagai)
	assert.Equal(t, "tag-tenki", rows[1].TenkiClass)
	assert.Equal(t, "補足", rows[1].Comment)

	assert.Empty(t, BuildDiseaseRows(nil))
}

func TestBuildUkeHeader(t *testing.T) {
	dr := model.DigitalizedReceipt{
		SeikyuuYm: model.YearMonth{Wareki: reiwa(6, 2)},
		Hospital:  model.Hospital{Code: "1312345", Tel: "03-0000-0000"},
	}
	h := BuildUkeHeader(dr)
	assert.Equal(t, "1312345", h.HospitalName)
	assert.Equal(t, []string{"TEL: 03-0000-0000"}, h.DetailParts)
	assert.Equal(t, "(R06)", h.SeikyuuYm.WarekiPart)

	dr.Hospital.Name = strPtr("テスト医院")
	dr.Hospital.Location = "東京都"
	h = BuildUkeHeader(dr)
	assert.Equal(t, "テスト医院", h.HospitalName)
	assert.Equal(t, []string{"東京都", "TEL: 03-0000-0000"}, h.DetailParts)
}

func TestBuildPage(t *testing.T) {
	r := sampleReceipt()
	r.Tekiyou = model.Tekiyou{ShinryouShikibetsuSections: []model.ShinryouShikibetsuSection{{
		ShinryouShikibetsu: model.CodeName{Code: "11"},
		IchirenUnits: []model.IchirenUnit{{FutanKubun: "1", SanteiUnits: []model.SanteiUnit{{
			Tensuu: 288, Kaisuu: 1,
			Items: model.Items{model.CommentItem{Text: model.CommentText{Text: "初診"}}},
		}}}},
	}}}
	empty := sampleReceipt()
	out := model.ReceiptisanOutput{
		{Receipts: []model.Receipt{r, empty}},
		{Receipts: []model.Receipt{r}},
	}

	page := BuildPage(out, Options{Layout: "unknown"})
	assert.Equal(t, LayoutVertical, page.Layout)
	require.Len(t, page.Groups, 2)
	assert.Equal(t, 3, page.ReceiptCount())
	assert.Equal(t, "receipt-2", page.NavItems[2].ID)
	assert.Equal(t, "receipt-2", page.Groups[1].Receipts[0].ID)

	first := page.Groups[0].Receipts[0]
	require.NotNil(t, first.Tekiyou)
	assert.Equal(t, tekiyou.LayoutCompact, first.Tekiyou.Layout)
	assert.NotNil(t, first.Hoken)
	assert.Nil(t, first.HokenKyuufu)
	assert.Nil(t, page.Groups[0].Receipts[1].Tekiyou)

	page = BuildPage(out, Options{Layout: LayoutHorizontal})
	first = page.Groups[0].Receipts[0]
	assert.Equal(t, tekiyou.LayoutHorizontal, first.Tekiyou.Layout)
	assert.Nil(t, first.Hoken)
	assert.NotNil(t, first.HokenKyuufu)
	assert.Len(t, first.Tekiyou.CalendarHeaders, 31)
}

func TestParseLayout(t *testing.T) {
	assert.Equal(t, LayoutHorizontal, ParseLayout("horizontal"))
	assert.Equal(t, LayoutVertical, ParseLayout("vertical"))
	assert.Equal(t, LayoutVertical, ParseLayout(""))
}
