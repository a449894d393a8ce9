// Package export เขียนผลลัพธ์ของหนึ่งรอบออกไปยังไฟล์ CSV, ไฟล์ log ข้อผิดพลาด และ MongoDB
package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/AkapongAlone/set-dividend/internal/models"
)

const dateLayout = "2006-01-02"

// Row คือหนึ่งแถวของไฟล์ CSV ลำดับฟิลด์คือลำดับคอลัมน์
type Row struct {
	Symbol                string `csv:"symbol"`
	Name                  string `csv:"name"`
	Market                string `csv:"market"`
	Price                 string `csv:"price"`
	Dividends             string `csv:"dividends"`
	OpStartDates          string `csv:"op_start_dates"`
	OpPeriodMonths        string `csv:"op_period_months"`
	SumDividend           string `csv:"sum_dividend"`
	AvgDividend           string `csv:"avg_dividend"`
	StdDividend           string `csv:"std_dividend"`
	LatestDividend        string `csv:"latest_dividend"`
	SumDividendRatio      string `csv:"sum_dividend_ratio"`
	AvgDividendRatio      string `csv:"avg_dividend_ratio"`
	AvgOverStd            string `csv:"avg_over_std"`
	LatestDividendRatio   string `csv:"latest_dividend_ratio"`
	LatestDividendOverStd string `csv:"latest_dividend_over_std"`
	SumOverStd            string `csv:"sum_over_std"`
	PriceRange52w         string `csv:"price_range_52w"`
	PaymentCount          string `csv:"payment_count"`
	LastPaid              string `csv:"last_paid"`
	FactsheetURL          string `csv:"factsheet_url"`
	HighlightURL          string `csv:"highlight_url"`
}

// NewRow แปลง Summary เป็นแถว CSV หุ้นที่ถูกข้ามจะมีแต่ชื่อและ URL
func NewRow(s models.Summary) Row {
	row := Row{
		Symbol:       s.Symbol,
		Name:         s.Name,
		Market:       s.Market,
		FactsheetURL: s.FactsheetURL,
		HighlightURL: s.HighlightURL,
	}
	if !s.Complete() {
		return row
	}

	dividends := make([]string, len(s.Amounts))
	for i, a := range s.Amounts {
		dividends[i] = formatFloat(a)
	}
	starts := make([]string, len(s.OpStartDates))
	for i, d := range s.OpStartDates {
		starts[i] = d.Format(dateLayout)
	}

	row.Price = formatFloat(s.Price)
	row.Dividends = strings.Join(dividends, ";")
	row.OpStartDates = strings.Join(starts, ";")
	row.OpPeriodMonths = strconv.Itoa(s.OpPeriodMonths)
	row.SumDividend = formatFloat(s.SumDividend)
	row.AvgDividend = formatFloat(s.AvgDividend)
	row.StdDividend = formatFloat(s.StdDividend)
	row.LatestDividend = formatFloat(s.LatestDividend)
	row.SumDividendRatio = formatFloat(s.SumDividendRatio)
	row.AvgDividendRatio = formatFloat(s.AvgDividendRatio)
	row.AvgOverStd = formatFloat(s.AvgOverStd)
	row.LatestDividendRatio = formatFloat(s.LatestDividendRatio)
	row.LatestDividendOverStd = formatFloat(s.LatestDividendOverStd)
	row.SumOverStd = formatFloat(s.SumOverStd)
	if s.PriceRange52w != nil {
		row.PriceRange52w = formatFloat(*s.PriceRange52w)
	}
	row.PaymentCount = strconv.Itoa(s.PaymentCount)
	if s.LastPaid != nil {
		row.LastPaid = s.LastPaid.Format(dateLayout)
	}
	return row
}

// WriteCSV เขียนผลลัพธ์ทั้งหมดลง w
func WriteCSV(w io.Writer, summaries []models.Summary) error {
	rows := make([]Row, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, NewRow(s))
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("ไม่สามารถเขียนข้อมูล CSV: %w", err)
	}
	return nil
}

// ExportToCSV ส่งออกผลลัพธ์เป็นไฟล์ CSV (มี BOM เพื่อให้ Excel อ่านภาษาไทยได้)
// ถ้าไม่ระบุชื่อไฟล์จะตั้งชื่อตามเวลา
func ExportToCSV(summaries []models.Summary, filename string) (string, error) {
	if len(summaries) == 0 {
		return "", fmt.Errorf("ไม่มีข้อมูลสำหรับส่งออก")
	}

	if filename == "" {
		filename = fmt.Sprintf("analysis_%s.csv", time.Now().Format("20060102_150405"))
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("ไม่สามารถสร้างโฟลเดอร์ %s: %w", dir, err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("ไม่สามารถสร้างไฟล์ CSV: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", err
	}
	if err := WriteCSV(file, summaries); err != nil {
		return "", err
	}
	return filename, file.Close()
}

// formatFloat แปลงตัวเลขเป็นข้อความ ค่ามากแสดงทศนิยมน้อยลง
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case f == 0:
		return "0"
	case f >= 1000000 || f <= -1000000:
		return strconv.FormatFloat(f, 'f', 0, 64)
	case f >= 1000 || f <= -1000:
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	return strconv.FormatFloat(f, 'f', 6, 64)
}
