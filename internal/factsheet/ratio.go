package factsheet

import (
	"math"
	"time"

	"github.com/AkapongAlone/set-dividend/internal/models"
)

// Mean คืนค่าเฉลี่ย ลำดับว่างได้ NaN
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return Sum(xs) / float64(len(xs))
}

// Sum คืนผลรวม ลำดับว่างได้ 0
func Sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

// PopulationStd คืนส่วนเบี่ยงเบนมาตรฐานของประชากร (หารด้วย n) ลำดับว่างได้ NaN
func PopulationStd(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	mean := Mean(xs)
	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}

// Derive คำนวณสถิติปันผลจากราคาและรายการปันผล (ใหม่สุดก่อน)
//
// หารด้วยศูนย์ได้ Inf หรือ NaN ตามปกติของ float64 ไม่มีการ panic
// latest ใช้ 0 เมื่อไม่มีปันผล ส่วน avg เป็น NaN
func Derive(price float64, records []models.DividendRecord) models.DividendStats {
	st := models.DividendStats{
		Amounts:      make([]float64, 0, len(records)),
		OpStartDates: make([]time.Time, 0, len(records)),
		PaymentCount: len(records),
	}
	for _, r := range records {
		st.Amounts = append(st.Amounts, r.Amount)
		st.OpStartDates = append(st.OpStartDates, r.OpStart)
	}

	if len(records) > 0 {
		newest := records[0]
		st.LatestDividend = newest.Amount
		st.OpPeriodMonths = newest.OpPeriodMonths
		lastPaid := newest.OpEnd
		st.LastPaid = &lastPaid
	}

	st.SumDividend = Sum(st.Amounts)
	st.AvgDividend = Mean(st.Amounts)
	st.StdDividend = PopulationStd(st.Amounts)

	annualize := 12 / float64(st.OpPeriodMonths)

	st.SumDividendRatio = st.SumDividend / price
	st.AvgDividendRatio = st.AvgDividend * annualize / price
	st.AvgOverStd = st.AvgDividendRatio / st.StdDividend
	st.LatestDividendRatio = st.LatestDividend * annualize / price
	st.LatestDividendOverStd = st.LatestDividendRatio / st.StdDividend
	st.SumOverStd = st.SumDividend / st.StdDividend

	return st
}
