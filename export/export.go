// Package export は摘要欄をExcelブックに書き出します。
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ukeview/mappers"
	"ukeview/model"
	"ukeview/tekiyou"
	"ukeview/textutil"
)

// IndexSheet は一覧シートの名前です。
const IndexSheet = "一覧"

const maxSheetNameRunes = 31

var (
	indexHeaders   = []any{"No", "シート", "診療年月", "入外", "患者番号", "氏名", "合計点数"}
	tekiyouHeaders = []any{"識別", "負担区分", "コード", "区分", "摘要", "点数", "回数", "算定日"}
	tekiyouWidths  = []float64{6, 8, 12, 6, 60, 10, 8, 24}
)

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "(", "]", ")",
)

// Options はブック作成時の設定です。
type Options struct {
	NormalizeASCII bool
}

// SheetName はレセプトのシート名を作ります。Excelの制限に合わせて禁止文字を置き換え31文字で切ります。
func SheetName(no int, r model.Receipt) string {
	name := fmt.Sprintf("%d %s", no, r.Patient.Name)
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	runes := []rune(name)
	if len(runes) > maxSheetNameRunes {
		runes = runes[:maxSheetNameRunes]
	}
	return string(runes)
}

// WriteTekiyouWorkbook はCLI出力の全レセプトを1ブックにまとめて w に書き出します。
// 1枚目は一覧、以降はレセプトごとに摘要欄を1シートずつ並べます。
func WriteTekiyouWorkbook(w io.Writer, out model.ReceiptisanOutput, opts Options) error {
	f, err := NewTekiyouWorkbook(out, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("ブックの書き出しに失敗しました: %w", err)
	}
	return nil
}

// NewTekiyouWorkbook はブックを組み立てて返します。呼び出し側で Close してください。
func NewTekiyouWorkbook(out model.ReceiptisanOutput, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", IndexSheet); err != nil {
		f.Close()
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeRow(f, IndexSheet, 1, indexHeaders); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(IndexSheet, "A1", "G1", headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	no := 0
	for _, dr := range out {
		for _, r := range dr.Receipts {
			no++
			sheet := SheetName(no, r)
			if err := writeReceiptSheet(f, sheet, r, opts, headerStyle); err != nil {
				f.Close()
				return nil, fmt.Errorf("%s: %w", sheet, err)
			}
			label := mappers.BuildReceiptLabel(r)
			if err := writeRow(f, IndexSheet, no+1, []any{
				no, sheet, label.ShinryouYm, label.NyuugaiLabel, label.PatientID, label.PatientName, totalTensuu(r.Tekiyou),
			}); err != nil {
				f.Close()
				return nil, err
			}
		}
	}
	return f, nil
}

func writeReceiptSheet(f *excelize.File, sheet string, r model.Receipt, opts Options, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, tekiyouHeaders); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", headerStyle); err != nil {
		return err
	}
	for i, width := range tekiyouWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	table := mappers.BuildTekiyouTable(r, tekiyou.LayoutHorizontal, opts.NormalizeASCII)
	if table == nil {
		return nil
	}
	for i, row := range table.Rows {
		if err := writeRow(f, sheet, i+2, []any{
			row.ShinkuCode,
			row.FutanKubun,
			row.Code,
			row.Mark,
			RowText(row),
			numberCell(row.Tensuu),
			numberCell(row.Kaisuu),
			row.SanteiDays,
		}); err != nil {
			return err
		}
	}
	return nil
}

// RowText は行の名称・付記・詳細を1つの文字列にします。
func RowText(row tekiyou.Row) string {
	parts := []string{textutil.JoinSegments(row.Name)}
	if len(row.Appended) > 0 {
		parts = append(parts, textutil.JoinSegments(row.Appended))
	}
	if len(row.Detail) > 0 {
		parts = append(parts, textutil.JoinSegments(row.Detail))
	}
	return strings.Join(parts, " ")
}

func numberCell(s string) any {
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(strings.ReplaceAll(s, ",", "")); err == nil {
		return n
	}
	return s
}

func totalTensuu(t model.Tekiyou) int {
	total := 0
	for _, section := range t.ShinryouShikibetsuSections {
		for _, ichiren := range section.IchirenUnits {
			for _, santei := range ichiren.SanteiUnits {
				total += santei.Tensuu * santei.Kaisuu
			}
		}
	}
	return total
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
