// Package factsheet แยกตารางราคาและตารางปันผลออกจากหน้า factsheet
// แล้วคำนวณสถิติปันผลของหุ้นแต่ละตัว
package factsheet

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTableNotFound = errors.New("factsheet table not found")
	ErrDividendParse = errors.New("dividend table parse failed")
	ErrPriceParse    = errors.New("price parse failed")
)

// Block คือตารางหนึ่งตาราง เก็บข้อความของแต่ละช่องเป็นแถว
type Block [][]string

// Cell คืนค่าช่อง (row, col) หรือ "" ถ้าไม่มีช่องนั้น
func (b Block) Cell(row, col int) string {
	if row < 0 || row >= len(b) {
		return ""
	}
	if col < 0 || col >= len(b[row]) {
		return ""
	}
	return b[row][col]
}

// Row คืนทั้งแถว หรือ nil ถ้าไม่มีแถวนั้น
func (b Block) Row(row int) []string {
	if row < 0 || row >= len(b) {
		return nil
	}
	return b[row]
}

// Document คือตารางทั้งหมดของ factsheet หนึ่งหน้า เรียงตามลำดับในหน้า
type Document []Block

// TableKind คือชนิดของตารางที่รู้จัก
type TableKind int

const (
	KindUnknown TableKind = iota
	KindPrice
	KindDividend
)

func (k TableKind) String() string {
	switch k {
	case KindPrice:
		return "price"
	case KindDividend:
		return "dividend"
	default:
		return "unknown"
	}
}

const (
	priceMarker    = "Price"
	dividendMarker = "Dividend"
)

// Matches ตรวจว่าตารางเป็นชนิด kind หรือไม่ ตามคำที่อยู่ในช่องแรก
// ตารางปันผลมีหัวตารางจริงอยู่แถวที่ 1 จึงดูสองแถวแรก
func (b Block) Matches(kind TableKind) bool {
	switch kind {
	case KindPrice:
		return strings.Contains(b.Cell(0, 0), priceMarker)
	case KindDividend:
		return strings.Contains(b.Cell(0, 0), dividendMarker) ||
			strings.Contains(b.Cell(1, 0), dividendMarker)
	default:
		return false
	}
}

// Classify คืนชนิดของตาราง โดยตรวจชนิดปันผลก่อนชนิดราคา
func Classify(b Block) TableKind {
	for _, kind := range []TableKind{KindDividend, KindPrice} {
		if b.Matches(kind) {
			return kind
		}
	}
	return KindUnknown
}

// Find คืนตารางแรกใน doc ที่เป็นชนิด kind
func (d Document) Find(kind TableKind) (Block, error) {
	for _, b := range d {
		if b.Matches(kind) {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", kind, ErrTableNotFound)
}
