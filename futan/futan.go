// Package futan は負担区分コードを保険スロット [保, 公1, 公2, 公3, 公4] に展開します。
package futan

import "ukeview/model"

// SlotCount は医療保険1 + 公費4 のスロット数です。
const SlotCount = 5

// Labels はスロットの見出しです。
var Labels = [SlotCount]string{"保", "公1", "公2", "公3", "公4"}

// Slots はスロットごとの有効/無効です。
type Slots [SlotCount]bool

// 左から 医保, 公1, 公2, 公3, 公4
var kubunBits = map[string]uint8{
	// 1者
	"1": 0b10000,
	"5": 0b01000,
	"6": 0b00100,
	"B": 0b00010,
	"C": 0b00001,
	// 2者
	"2": 0b11000,
	"3": 0b10100,
	"E": 0b10010,
	"G": 0b10001,
	"7": 0b01100,
	"H": 0b01010,
	"I": 0b01001,
	"J": 0b00110,
	"K": 0b00101,
	"L": 0b00011,
	// 3者
	"4": 0b11100,
	"M": 0b11010,
	"N": 0b11001,
	"O": 0b10110,
	"P": 0b10101,
	"Q": 0b10011,
	"R": 0b01110,
	"S": 0b01101,
	"T": 0b01011,
	"U": 0b00111,
	// 4者
	"V": 0b11110,
	"W": 0b11101,
	"X": 0b11011,
	"Y": 0b10111,
	"Z": 0b01111,
	// 5者
	"9": 0b11111,
}

var slotBits = [SlotCount]uint8{0b10000, 0b01000, 0b00100, 0b00010, 0b00001}

// Decode は負担区分コードをスロットに展開します。表に無いコードは全て false です。
func Decode(code string) Slots {
	bits := kubunBits[code]
	var s Slots
	for i, mask := range slotBits {
		s[i] = bits&mask != 0
	}
	return s
}

// ReceiptSlots はレセプトに存在する保険からスロットの有効/無効を求めます。
// 公費k は公費がk件以上あるときに有効です。
func ReceiptSlots(h model.Hokens) Slots {
	var s Slots
	s[0] = h.IryouHoken != nil
	for k := 1; k < SlotCount; k++ {
		s[k] = len(h.KouhiFutanIryous) >= k
	}
	return s
}
