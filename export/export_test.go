package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ukeview/model"
	"ukeview/tekiyou"
	"ukeview/textutil"
)

func strPtr(s string) *string { return &s }

func sampleOutput() model.ReceiptisanOutput {
	day := func(d, k int) model.DailyKaisuu {
		return model.DailyKaisuu{Date: model.DateValue{Year: 2024, Month: 1, Day: d}, Kaisuu: k}
	}
	receipt := model.Receipt{
		ID:         1,
		ShinryouYm: model.YearMonth{Year: 2024, Month: 1},
		Nyuugai:    model.NyuugaiGairai,
		Patient:    model.Patient{ID: strPtr("1001"), Name: "山田/太郎"},
		Hokens:     model.Hokens{IryouHoken: &model.IryouHoken{HokenjaBangou: "06139999"}},
		Tekiyou: model.Tekiyou{ShinryouShikibetsuSections: []model.ShinryouShikibetsuSection{{
			ShinryouShikibetsu: model.CodeName{Code: "21", Name: "内服"},
			IchirenUnits: []model.IchirenUnit{{
				FutanKubun: "1",
				SanteiUnits: []model.SanteiUnit{{
					Tensuu:       1234,
					Kaisuu:       3,
					DailyKaisuus: []model.DailyKaisuu{day(1, 1), day(2, 1), day(3, 1), day(5, 0)},
					Items: model.Items{
						model.IyakuhinItem{MedicalItem: model.MedicalItem{
							Master: model.Master{Code: "610000001"},
							Text:   model.ItemText{MasterName: "テスト錠", Shiyouryou: strPtr("3錠")},
						}},
						model.CommentItem{
							Master: model.Master{Code: "810000001"},
							Text:   model.CommentText{Text: "食後"},
						},
					},
				}},
			}},
		}}},
	}
	return model.ReceiptisanOutput{{Receipts: []model.Receipt{receipt, {ID: 2, Patient: model.Patient{Name: "空"}}}}}
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "1 山田_太郎", SheetName(1, model.Receipt{Patient: model.Patient{Name: "山田/太郎"}}))
	assert.Equal(t, "2 (a)", SheetName(2, model.Receipt{Patient: model.Patient{Name: "[a]"}}))
	assert.Equal(t, "3", SheetName(3, model.Receipt{}))

	long := SheetName(10, model.Receipt{Patient: model.Patient{Name: strings.Repeat("あ", 40)}})
	assert.Equal(t, 31, len([]rune(long)))
}

func TestWriteTekiyouWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTekiyouWorkbook(&buf, sampleOutput(), Options{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{IndexSheet, "1 山田_太郎", "2 空"}, f.GetSheetList())

	index, err := f.GetRows(IndexSheet)
	require.NoError(t, err)
	require.Len(t, index, 3)
	assert.Equal(t, "No", index[0][0])
	assert.Equal(t, "1 山田_太郎", index[1][1])
	assert.Equal(t, "1001", index[1][4])
	assert.Equal(t, "3702", index[1][6])

	rows, err := f.GetRows("1 山田_太郎")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"21", "1", "610000001", "＊", "テスト錠 3錠"}, rows[1][:5])

	// 合計行はコメントではない最後の明細です
	require.Len(t, rows[1], 8)
	assert.Equal(t, "1234", rows[1][5])
	assert.Equal(t, "3", rows[1][6])
	assert.Equal(t, "1~3", rows[1][7])
	assert.Equal(t, []string{"", "1", "810000001", "", "食後"}, rows[2])

	empty, err := f.GetRows("2 空")
	require.NoError(t, err)
	assert.Len(t, empty, 1)

	for _, sheet := range []string{IndexSheet, "1 山田_太郎"} {
		style, err := f.GetCellStyle(sheet, "A1")
		require.NoError(t, err)
		assert.NotZero(t, style, "header style on %s", sheet)
	}
}

func TestRowText(t *testing.T) {
	row := tekiyou.Row{
		Name:     []textutil.Segment{{Text: "コメント"}},
		Appended: []textutil.Segment{{Text: "追記"}},
		Detail:   []textutil.Segment{{Text: "1本"}},
	}
	assert.Equal(t, "コメント 追記 1本", RowText(row))
	assert.Equal(t, "", RowText(tekiyou.Row{}))
}
