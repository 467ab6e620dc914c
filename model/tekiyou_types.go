package model

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Tekiyou は摘要欄全体です。
type Tekiyou struct {
	ShinryouShikibetsuSections []ShinryouShikibetsuSection `json:"shinryou_shikibetsu_sections"`
}

// ShinryouShikibetsuSection は診療識別(2桁)ごとのセクションです。
type ShinryouShikibetsuSection struct {
	ShinryouShikibetsu CodeName      `json:"shinryou_shikibetsu"`
	IchirenUnits       []IchirenUnit `json:"ichiren_units"`
}

// IchirenUnit は負担区分を1つ持つ一連単位です。
type IchirenUnit struct {
	FutanKubun  string       `json:"futan_kubun"`
	SanteiUnits []SanteiUnit `json:"santei_units"`
}

// SanteiUnit は点数・回数を持つ算定単位です。
type SanteiUnit struct {
	Tensuu       int           `json:"tensuu"`
	Kaisuu       int           `json:"kaisuu"`
	DailyKaisuus []DailyKaisuu `json:"daily_kaisuus,omitempty"`
	Items        Items         `json:"items"`
}

// DailyKaisuu は日付ごとの回数です。Kaisuu > 0 の日だけが算定日です。
type DailyKaisuu struct {
	Date   DateValue `json:"date"`
	Kaisuu int       `json:"kaisuu"`
}

type ItemType string

const (
	ItemTypeShinryouKoui ItemType = "shinryou_koui"
	ItemTypeIyakuhin     ItemType = "iyakuhin"
	ItemTypeTokuteiKizai ItemType = "tokutei_kizai"
	ItemTypeComment      ItemType = "comment"
)

// Item は摘要欄明細の4種のいずれかです。
// 実装は ShinryouKouiItem, IyakuhinItem, TokuteiKizaiItem, CommentItem に限られます。
type Item interface {
	ItemType() ItemType
	sealedItem()
}

type Master struct {
	Type    string `json:"type,omitempty"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Pattern string `json:"pattern,omitempty"`
}

// ItemText は診療行為・医薬品・特定器材の表示テキストです。
type ItemText struct {
	ProductName *string `json:"product_name"`
	MasterName  string  `json:"master_name"`
	UnitPrice   *string `json:"unit_price"`
	Shiyouryou  *string `json:"shiyouryou"`
}

// MedicalItem はコメント以外の3種に共通する項目です。
type MedicalItem struct {
	Master     Master    `json:"master"`
	Text       ItemText  `json:"text"`
	Shiyouryou *float64  `json:"shiyouryou"`
	Unit       *CodeName `json:"unit"`
	Tensuu     *int      `json:"tensuu"`
	Kaisuu     *int      `json:"kaisuu"`
}

type ShinryouKouiItem struct{ MedicalItem }
type IyakuhinItem struct{ MedicalItem }
type TokuteiKizaiItem struct{ MedicalItem }

func (ShinryouKouiItem) ItemType() ItemType { return ItemTypeShinryouKoui }
func (IyakuhinItem) ItemType() ItemType     { return ItemTypeIyakuhin }
func (TokuteiKizaiItem) ItemType() ItemType { return ItemTypeTokuteiKizai }
func (CommentItem) ItemType() ItemType      { return ItemTypeComment }

func (ShinryouKouiItem) sealedItem() {}
func (IyakuhinItem) sealedItem()     {}
func (TokuteiKizaiItem) sealedItem() {}
func (CommentItem) sealedItem()      {}

// CommentItem はコメント明細です。
type CommentItem struct {
	Master          Master           `json:"master"`
	Text            CommentText      `json:"text"`
	AppendedContent *AppendedContent `json:"appended_content"`
}

type AppendedContent struct {
	Text string `json:"text"`
}

// CommentText はコメントの本文です。
// 文字列以外(オブジェクト)で来た場合は master_name を本文として扱います。
type CommentText struct {
	Text       string
	Structured bool
}

func (t *CommentText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*t = CommentText{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = CommentText{Text: s}
		return nil
	}
	var obj struct {
		MasterName string `json:"master_name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("comment text: %w", err)
	}
	*t = CommentText{Text: obj.MasterName, Structured: true}
	return nil
}

// Items は入力順を保持した明細の並びです。
type Items []Item

func (items *Items) UnmarshalJSON(b []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return fmt.Errorf("items: %w", err)
	}
	out := make(Items, 0, len(raws))
	for i, raw := range raws {
		var head struct {
			Type ItemType `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
		item, err := decodeItem(head.Type, raw)
		if err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
		out = append(out, item)
	}
	*items = out
	return nil
}

func decodeItem(typ ItemType, raw []byte) (Item, error) {
	switch typ {
	case ItemTypeShinryouKoui:
		var it ShinryouKouiItem
		err := json.Unmarshal(raw, &it)
		return it, err
	case ItemTypeIyakuhin:
		var it IyakuhinItem
		err := json.Unmarshal(raw, &it)
		return it, err
	case ItemTypeTokuteiKizai:
		var it TokuteiKizaiItem
		err := json.Unmarshal(raw, &it)
		return it, err
	case ItemTypeComment:
		var it CommentItem
		err := json.Unmarshal(raw, &it)
		return it, err
	default:
		return nil, fmt.Errorf("不明な明細種別です: %q", typ)
	}
}
