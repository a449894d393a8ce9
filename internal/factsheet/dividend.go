package factsheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AkapongAlone/set-dividend/internal/models"
)

const (
	noInformation     = "No Information Found"
	periodSeparator   = " - "
	DomesticCurrency  = "Baht"
	dividendHeaderRow = 1
	dividendDataRow   = 2
)

// คอลัมน์ของตารางปันผล ใช้ตำแหน่งนี้เมื่อหาชื่อคอลัมน์ในหัวตารางไม่เจอ
var dividendColumns = []struct {
	header   string
	fallback int
}{
	{"Payment Date", 0},
	{"Operation Period", 1},
	{"Dividend/Share", 2},
	{"Unit", 3},
}

// รูปแบบวันที่ที่พบในหน้า factsheet วันที่แบบตัวเลขเป็นวัน/เดือน/ปี
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate แปลงข้อความวันที่ตามรูปแบบใน dateLayouts
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// OpPeriodMonths นับจำนวนเดือนแบบรวมเดือนต้นและเดือนท้าย (ม.ค.-มี.ค. = 3)
func OpPeriodMonths(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}

// ParseOperationPeriod แยกข้อความ "start - end" ออกเป็นวันที่สองค่า
func ParseOperationPeriod(s string) (time.Time, time.Time, error) {
	parts := strings.Split(s, periodSeparator)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("operation period %q: want two dates separated by %q", s, periodSeparator)
	}
	start, err := ParseDate(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// NormalizeDividends แปลงตารางปันผลเป็นรายการปันผลสกุลบาท เรียงตามลำดับเดิมในตาราง
//
// ถ้าแถวใดแถวหนึ่งแปลงไม่ได้ จะไม่คืนรายการใดเลยและคืน error ที่ห่อ ErrDividendParse
// ตารางที่ขึ้นว่า "No Information Found" คือไม่มีประวัติปันผล ไม่ใช่ error
func NormalizeDividends(b Block) ([]models.DividendRecord, error) {
	if len(b) <= dividendDataRow {
		return nil, nil
	}
	if strings.TrimSpace(b.Cell(dividendDataRow, 0)) == noInformation {
		return nil, nil
	}

	cols := resolveColumns(b[dividendHeaderRow])
	paymentCol, periodCol, amountCol, unitCol := cols[0], cols[1], cols[2], cols[3]

	var records []models.DividendRecord
	for i, row := range b[dividendDataRow:] {
		// แถวว่างทั้งแถวถูกข้าม ไม่นับเป็นแถวที่แปลงไม่ได้
		if blankRow(row) {
			continue
		}
		rowNum := i + dividendDataRow

		payment, err := ParseDate(b.Cell(rowNum, paymentCol))
		if err != nil {
			return nil, fmt.Errorf("row %d payment date: %v: %w", rowNum, err, ErrDividendParse)
		}
		start, end, err := ParseOperationPeriod(b.Cell(rowNum, periodCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: %v: %w", rowNum, err, ErrDividendParse)
		}

		unit := strings.TrimSpace(b.Cell(rowNum, unitCol))
		if unit != DomesticCurrency {
			continue
		}

		amount, err := parseNumber(b.Cell(rowNum, amountCol))
		if err != nil {
			return nil, fmt.Errorf("row %d dividend/share: %v: %w", rowNum, err, ErrDividendParse)
		}

		records = append(records, models.DividendRecord{
			PaymentDate:    payment,
			OpStart:        start,
			OpEnd:          end,
			OpPeriodMonths: OpPeriodMonths(start, end),
			Amount:         amount,
			Currency:       unit,
		})
	}
	return records, nil
}

func resolveColumns(header []string) []int {
	cols := make([]int, len(dividendColumns))
	for i, c := range dividendColumns {
		cols[i] = c.fallback
		for j, h := range header {
			if strings.TrimSpace(h) == c.header {
				cols[i] = j
				break
			}
		}
	}
	return cols
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseNumber อ่านตัวเลขที่อาจมีเครื่องหมายจุลภาคคั่นหลักพัน
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(s, 64)
}
