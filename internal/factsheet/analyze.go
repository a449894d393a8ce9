package factsheet

import (
	"github.com/AkapongAlone/set-dividend/internal/models"
)

// Analysis คือสิ่งที่อ่านได้จาก factsheet หนึ่งหน้า
type Analysis struct {
	Price         float64
	PriceRange52w *float64
	Records       []models.DividendRecord
	Stats         models.DividendStats

	// DividendErr ไม่เป็น nil เมื่อแปลงตารางปันผลไม่ได้ ในกรณีนี้ Records ว่าง
	DividendErr error
}

// Analyze หาตารางราคาและตารางปันผล แล้วคำนวณสถิติปันผล
// คืน error เมื่อหาตารางไม่เจอหรืออ่านราคาไม่ได้ ซึ่งทำให้หุ้นตัวนั้นถูกข้าม
func Analyze(doc Document) (Analysis, error) {
	var a Analysis

	priceTable, err := doc.Find(KindPrice)
	if err != nil {
		return a, err
	}
	dividendTable, err := doc.Find(KindDividend)
	if err != nil {
		return a, err
	}

	a.Price, err = ParsePrice(priceTable)
	if err != nil {
		return a, err
	}
	if r, ok := ParseRange52w(RangeCell(priceTable)); ok {
		a.PriceRange52w = &r
	}

	a.Records, a.DividendErr = NormalizeDividends(dividendTable)
	if a.DividendErr != nil {
		a.Records = nil
	}
	a.Stats = Derive(a.Price, a.Records)
	return a, nil
}
