package mappers

import (
	"ukeview/calendar"
	"ukeview/tekiyou"
)

// UnitValue は単位付きの数値表示です。値が無い項目は nil で表します。
type UnitValue struct {
	Value  string
	Unit   string
	Prefix string
	Suffix string
}

// ReceiptLabel はナビゲーションとセクション見出しのラベルです。
type ReceiptLabel struct {
	IDPart       string
	ShinryouYm   string
	NyuugaiLabel string
	PatientID    string
	PatientName  string
}

type Badge struct {
	Code string
	Name string
}

// ReceiptHeader はレセプト種別・特記事項などの見出しカードです。
type ReceiptHeader struct {
	ID          int
	ShinryouYm  calendar.DateDisplay
	Nyuugai     string
	TypeBadges  []Badge
	TokkiJikous []Badge
	NyuuinDate  string
	Byoushou    string
}

// PatientCard は患者情報カードです。Age は生年月日が無ければ nil です。
type PatientCard struct {
	PatientID    string
	Name         string
	NameKana     string
	SexName      string
	SexKind      string
	BirthDate    string
	Age          *calendar.Age
	IsBirthMonth bool
}

type HokenRow struct {
	Kubun                       string
	HokenjaBangou               string
	ShikakuBangou               string
	Jitsunissuu                 *UnitValue
	Tensuu                      *UnitValue
	KyuufuTaishouIchibuFutankin *UnitValue
	IchibuFutankin              *UnitValue
}

// HokenCard は医療保険・公費の請求情報カードです。
type HokenCard struct {
	Rows        []HokenRow
	DetailParts []string
}

// KyuufuRow は食事・生活療養の1行です。
type KyuufuRow struct {
	Kubun            string
	Kaisuu           *UnitValue
	GoukeiKingaku    *UnitValue
	HyoujunFutangaku *UnitValue
}

type HokenKyuufuRow struct {
	HokenRow
	Kaisuu           *UnitValue
	GoukeiKingaku    *UnitValue
	HyoujunFutangaku *UnitValue
}

// HokenKyuufuCard は横型レイアウトで保険と食事・生活療養をまとめたカードです。
type HokenKyuufuCard struct {
	Rows                []HokenKyuufuRow
	ShikakuRows         []HokenKyuufuRow
	DetailParts         []string
	ShowMealLifeColumns bool
}

type DiseaseRow struct {
	RowClass         string
	Index            int
	Code             string
	ShuushokugoCodes []string
	IsMain           bool
	IsUtagai         bool
	IsWorpro         bool
	FullText         string
	Comment          string
	StartDate        string
	TenkiClass       string
	TenkiName        string
}

// UkeHeader は請求データファイル(UKE)1件分の見出しです。
type UkeHeader struct {
	HospitalName   string
	SeikyuuYm      calendar.DateDisplay
	AuditPayerName string
	PrefectureName string
	DetailParts    []string
}

// ReceiptSection はレセプト1件分の表示データです。
// 任意のカードは表示する内容が無ければ nil / 空です。
type ReceiptSection struct {
	ID          string
	Label       ReceiptLabel
	Horizontal  bool
	Header      ReceiptHeader
	Patient     PatientCard
	Hoken       *HokenCard
	Kyuufu      []KyuufuRow
	HokenKyuufu *HokenKyuufuCard
	Diseases    []DiseaseRow
	Tekiyou     *tekiyou.Table
}

type ReceiptGroup struct {
	Uke      UkeHeader
	Receipts []ReceiptSection
}

type NavItem struct {
	ID    string
	Label ReceiptLabel
}

// Page はデータビュー1画面分の表示データです。
type Page struct {
	Layout   Layout
	NavItems []NavItem
	Groups   []ReceiptGroup
}

// ReceiptCount はページ内のレセプト件数です。
func (p Page) ReceiptCount() int { return len(p.NavItems) }
