package render

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ukeview/futan"
	"ukeview/mappers"
	"ukeview/model"
	"ukeview/tekiyou"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"templates/hello.html": {Data: []byte(`{{define "hello"}}<p>{{.Name}}</p>{{end}}{{define "blank"}}  {{end}}`)},
		"assets/data-view.css": {Data: []byte(`body{}`)},
	}
}

func TestRenderInjectedTemplates(t *testing.T) {
	r, err := New(testFS())
	require.NoError(t, err)

	out, err := r.Render("hello", map[string]string{"Name": "<b>"})
	require.NoError(t, err)
	assert.Equal(t, "<p>&lt;b&gt;</p>", out)

	_, err = r.Render("missing", nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = r.Render("blank", nil)
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestNewRequiresCSS(t *testing.T) {
	fsys := testFS()
	delete(fsys, "assets/data-view.css")
	_, err := New(fsys)
	assert.Error(t, err)
}

func scenarioTable(layout tekiyou.Layout) tekiyou.Table {
	tk := model.Tekiyou{ShinryouShikibetsuSections: []model.ShinryouShikibetsuSection{{
		ShinryouShikibetsu: model.CodeName{Code: "11"},
		IchirenUnits: []model.IchirenUnit{{FutanKubun: "1", SanteiUnits: []model.SanteiUnit{{
			Tensuu: 20,
			Kaisuu: 1,
			DailyKaisuus: []model.DailyKaisuu{
				{Date: model.DateValue{Year: 2024, Month: 1, Day: 2}, Kaisuu: 1},
				{Date: model.DateValue{Year: 2024, Month: 1, Day: 15}, Kaisuu: 1},
			},
			Items: model.Items{model.CommentItem{Text: model.CommentText{Text: "処方(内服)"}}},
		}}}},
	}}}
	return tekiyou.Build(tk, tekiyou.Options{Layout: layout, Year: 2024, Month: 1, Slots: futan.Slots{true}})
}

func TestRenderTekiyouTable(t *testing.T) {
	r, err := NewDefault()
	require.NoError(t, err)

	horizontal, err := r.Render("tekiyou-table", scenarioTable(tekiyou.LayoutHorizontal))
	require.NoError(t, err)
	assert.Equal(t, 31, strings.Count(horizontal, `<th class="col-cal`))
	assert.Contains(t, horizontal, `<td class="col-futan futan-outer-left">●</td>`)
	assert.Contains(t, horizontal, `<span class="paren">(内服)</span>`)
	assert.Contains(t, horizontal, `class="tekiyou-table"`)

	compact, err := r.Render("tekiyou-table", scenarioTable(tekiyou.LayoutCompact))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(compact, `<th class="col-cal`))
	assert.Contains(t, compact, `<th class="col-cal cal-tue-thu">2</th>`)
	assert.Contains(t, compact, `<th class="col-cal">15</th>`)
	assert.Contains(t, compact, `title="算定日: 2, 15"`)
	assert.NotContains(t, compact, "col-futan ")
}

func TestErrorDocumentEscapesStderr(t *testing.T) {
	r, err := NewDefault()
	require.NoError(t, err)

	out, err := r.ErrorDocument("実行に失敗しました", "<script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, out, "実行に失敗しました")
}

func TestDocument(t *testing.T) {
	r, err := NewDefault()
	require.NoError(t, err)

	out := model.ReceiptisanOutput{{
		Hospital: model.Hospital{Code: "1312345"},
		Receipts: []model.Receipt{{
			ID:         1,
			ShinryouYm: model.YearMonth{Year: 2024, Month: 1},
			Patient:    model.Patient{Name: "患者<A>"},
			Tekiyou:    model.Tekiyou{ShinryouShikibetsuSections: []model.ShinryouShikibetsuSection{{ShinryouShikibetsu: model.CodeName{Code: "11"}}}},
		}},
	}}
	page := mappers.BuildPage(out, mappers.Options{Layout: mappers.LayoutHorizontal})

	html, err := r.Document(page, "nonce-123", ThemeDark)
	require.NoError(t, err)
	assert.Contains(t, html, `script-src 'nonce-nonce-123'`)
	assert.Contains(t, html, `<script nonce="nonce-123">`)
	assert.Contains(t, html, `class="theme-dark layout-horizontal"`)
	assert.Contains(t, html, `href="#receipt-0"`)
	assert.Contains(t, html, "患者&lt;A&gt;")
	assert.Contains(t, html, `"storageKey":"receiptisan.dataView.theme"`)
	assert.Contains(t, html, `"configuredTheme":"dark"`)
	assert.Contains(t, html, "1312345")
}

func TestPreviewDocument(t *testing.T) {
	r, err := NewDefault()
	require.NoError(t, err)

	out, err := r.PreviewDocument(`<svg id="page-1"></svg>`, "abc", "preview")
	require.NoError(t, err)
	assert.Contains(t, out, `<svg id="page-1"></svg>`)
	assert.Contains(t, out, "font-src *;")
	assert.Contains(t, out, "'nonce-abc'")
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeClassicModern, ParseTheme("classic-modern"))
	assert.Equal(t, ThemeAuto, ParseTheme("auto"))
	assert.Equal(t, ThemeAuto, ParseTheme("neon"))
	assert.Equal(t, "theme-light", ThemeAuto.BodyClass())
	assert.Equal(t, "theme-classic", ThemeClassic.BodyClass())

	cfg := NewThemeConfig("")
	assert.Equal(t, ThemeAuto, cfg.ConfiguredTheme)
	assert.Len(t, cfg.Themes, 5)
}

func TestIndexDocument(t *testing.T) {
	r, err := NewDefault()
	require.NoError(t, err)

	out, err := r.IndexDocument(mappers.LayoutHorizontal)
	require.NoError(t, err)
	assert.Contains(t, out, `action="/dataview"`)
	assert.Contains(t, out, `<option value="horizontal" selected>`)
	assert.Contains(t, out, `<option value="vertical">`)
}
