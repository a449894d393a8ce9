package factsheet

import (
	"fmt"
	"strings"
)

const (
	priceHeaderRow = 0
	priceDataRow   = 1
	rangeSeparator = " / "
	rangeMarker    = "52"
)

// ParsePrice อ่านราคาปัจจุบันจากช่องแรกของแถวข้อมูลในตารางราคา
func ParsePrice(b Block) (float64, error) {
	raw := b.Cell(priceDataRow, 0)
	price, err := parseNumber(raw)
	if err != nil {
		return 0, fmt.Errorf("price %q: %v: %w", raw, err, ErrPriceParse)
	}
	return price, nil
}

// RangeCell หาช่องราคาสูงสุด/ต่ำสุด 52 สัปดาห์ในตารางราคา
// ใช้คอลัมน์ที่หัวตารางมี "52" ถ้าไม่มีให้ใช้คอลัมน์ที่ 1
func RangeCell(b Block) string {
	col := 1
	for i, h := range b.Row(priceHeaderRow) {
		if strings.Contains(h, rangeMarker) {
			col = i
			break
		}
	}
	return b.Cell(priceDataRow, col)
}

// ParseRange52w คำนวณ (high - low) / high จากข้อความ "high / low"
// คืน ok=false เมื่ออ่านไม่ได้ ไม่ถือเป็น error ของหุ้นตัวนั้น
func ParseRange52w(s string) (float64, bool) {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	parts := strings.Split(s, rangeSeparator)
	if len(parts) != 2 {
		return 0, false
	}
	high, err := parseNumber(parts[0])
	if err != nil {
		return 0, false
	}
	low, err := parseNumber(parts[1])
	if err != nil {
		return 0, false
	}
	return (high - low) / high, true
}
