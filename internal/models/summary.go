package models

import (
	"math"
	"time"
)

// Listing คือหุ้นหนึ่งตัวจากหน้า lookup ของตลาด
type Listing struct {
	Symbol string
	Name   string
	Market string
}

// DividendRecord คือแถวปันผลที่ผ่านการแปลงแล้ว
type DividendRecord struct {
	PaymentDate    time.Time
	OpStart        time.Time
	OpEnd          time.Time
	OpPeriodMonths int
	Amount         float64
	Currency       string
}

// DividendStats เก็บค่าสถิติปันผลและอัตราส่วนที่คำนวณจากราคา
type DividendStats struct {
	Amounts        []float64   // ใหม่สุดก่อน
	OpStartDates   []time.Time // ขนานกับ Amounts
	OpPeriodMonths int         // ของรายการล่าสุด, 0 ถ้าไม่มี

	SumDividend    float64
	AvgDividend    float64
	StdDividend    float64
	LatestDividend float64

	SumDividendRatio      float64
	AvgDividendRatio      float64
	AvgOverStd            float64
	LatestDividendRatio   float64
	LatestDividendOverStd float64
	SumOverStd            float64

	PaymentCount int
	LastPaid     *time.Time
}

// Summary คือผลลัพธ์หนึ่งแถวต่อหุ้นหนึ่งตัว
type Summary struct {
	Listing
	Price         float64
	PriceRange52w *float64 // nil เมื่ออ่านช่วงราคา 52 สัปดาห์ไม่ได้
	DividendStats

	FactsheetURL string
	HighlightURL string

	// Err ไม่เป็น nil เมื่อหุ้นตัวนี้ถูกข้าม (ดึงข้อมูลไม่ได้หรือหาตารางไม่เจอ)
	Err error
}

// Complete บอกว่ามีค่าที่คำนวณได้หรือไม่
func (s Summary) Complete() bool {
	return s.Err == nil
}

// AbsentSummary สร้างแถวสำหรับหุ้นที่ถูกข้าม โดยค่าที่คำนวณทั้งหมดเป็น NaN
func AbsentSummary(listing Listing, err error) Summary {
	nan := math.NaN()
	return Summary{
		Listing: listing,
		Price:   nan,
		DividendStats: DividendStats{
			SumDividend:           nan,
			AvgDividend:           nan,
			StdDividend:           nan,
			LatestDividend:        nan,
			SumDividendRatio:      nan,
			AvgDividendRatio:      nan,
			AvgOverStd:            nan,
			LatestDividendRatio:   nan,
			LatestDividendOverStd: nan,
			SumOverStd:            nan,
		},
		Err: err,
	}
}
