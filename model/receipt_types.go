package model

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// receiptisan --preview --format=json の出力はDigitalizedReceiptの配列です。
type ReceiptisanOutput []DigitalizedReceipt

// DigitalizedReceipt は請求データファイル1件分のルートです。
type DigitalizedReceipt struct {
	SeikyuuYm  YearMonth     `json:"seikyuu_ym"`
	AuditPayer CodeNameShort `json:"audit_payer"`
	Hospital   Hospital      `json:"hospital"`
	Prefecture CodeNameShort `json:"prefecture"`
	Receipts   []Receipt     `json:"receipts"`
}

const (
	NyuugaiNyuuin = "nyuuin"
	NyuugaiGairai = "gairai"
)

// Receipt は患者1件・1か月分のレセプトです。
type Receipt struct {
	ID                    int                `json:"id"`
	ShinryouYm            YearMonth          `json:"shinryou_ym"`
	Nyuugai               string             `json:"nyuugai"`
	AuditPayer            CodeNameShort      `json:"audit_payer"`
	Prefecture            CodeNameShort      `json:"prefecture"`
	Hospital              Hospital           `json:"hospital"`
	Type                  ReceiptType        `json:"type"`
	Patient               Patient            `json:"patient"`
	TokkiJikous           []CodeName         `json:"tokki_jikous"`
	Hokens                Hokens             `json:"hokens"`
	Classification        string             `json:"classification"`
	Shoubyoumeis          []ShoubyoumeiGroup `json:"shoubyoumeis"`
	Tekiyou               Tekiyou            `json:"tekiyou"`
	RyouyouNoKyuufu       RyouyouNoKyuufu    `json:"ryouyou_no_kyuufu"`
	NyuuinDate            *DateValue         `json:"nyuuin_date"`
	NyuuinryouAbbrevLabel []string           `json:"nyuuinryou_abbrev_labels"`
	ByoushouTypes         []CodeNameShort    `json:"byoushou_types"`
}

// IsNyuuin は入院レセプトかどうかを返します。
func (r Receipt) IsNyuuin() bool {
	return r.Nyuugai == NyuugaiNyuuin
}

// Gengou は元号情報です。BaseYear が無い場合は西暦換算できません。
type Gengou struct {
	Code      int    `json:"code"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Alphabet  string `json:"alphabet"`
	BaseYear  *int   `json:"base_year"`
}

// Wareki は和暦表現です。Day が nil なら年月のみを表します。
type Wareki struct {
	Gengou Gengou `json:"gengou"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    *int   `json:"day,omitempty"`
	Text   string `json:"text"`
}

type YearMonth struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Wareki Wareki `json:"wareki"`
}

type DateValue struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Wareki Wareki `json:"wareki"`
}

// Code はJSON上で数値・文字列のどちらでも出現するコード値です。
type Code string

func (c *Code) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("code: %w", err)
	}
	*c = Code(n.String())
	return nil
}

func (c Code) String() string { return string(c) }

// Int はコードを整数として解釈します。数値でない場合は ok=false です。
func (c Code) Int() (int, bool) {
	n, err := strconv.Atoi(string(c))
	return n, err == nil
}

type CodeName struct {
	Code Code   `json:"code"`
	Name string `json:"name"`
}

type CodeNameShort struct {
	Code      Code   `json:"code"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type Hospital struct {
	Code       string  `json:"code"`
	Name       *string `json:"name"`
	Tel        string  `json:"tel"`
	Location   string  `json:"location"`
	BedCount   int     `json:"bed_count"`
	IsHospital bool    `json:"is_hospital"`
}

type ReceiptType struct {
	TensuuHyouType    CodeName `json:"tensuu_hyou_type"`
	MainHokenType     CodeName `json:"main_hoken_type"`
	HokenMultipleType CodeName `json:"hoken_multiple_type"`
	PatientAgeType    CodeName `json:"patient_age_type"`
}

type Patient struct {
	ID        *string       `json:"id"`
	Name      string        `json:"name"`
	NameKana  *string       `json:"name_kana"`
	Sex       CodeNameShort `json:"sex"`
	BirthDate *DateValue    `json:"birth_date"`
}

// ShoubyoumeiGroup は開始日・転帰ごとにまとめた傷病名です。
type ShoubyoumeiGroup struct {
	StartDate    DateValue          `json:"start_date"`
	Tenki        CodeName           `json:"tenki"`
	IsMain       bool               `json:"is_main"`
	Shoubyoumeis []ShoubyoumeiEntry `json:"shoubyoumeis"`
}

type ShoubyoumeiEntry struct {
	MasterShoubyoumei  MasterCodeName   `json:"master_shoubyoumei"`
	MasterShuushokugos []MasterCodeName `json:"master_shuushokugos"`
	Text               string           `json:"text"`
	FullText           string           `json:"full_text"`
	IsMain             bool             `json:"is_main"`
	IsWorpro           bool             `json:"is_worpro"`
	StartDate          DateValue        `json:"start_date"`
	Tenki              CodeName         `json:"tenki"`
	Comment            *string          `json:"comment"`
}

type MasterCodeName struct {
	Code Code   `json:"code"`
	Name string `json:"name"`
}
