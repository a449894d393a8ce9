package setclient

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/AkapongAlone/set-dividend/internal/factsheet"
)

// ParseTables อ่าน HTML แล้วแปลงทุก <table> เป็น Block ตามลำดับในหน้า
// ข้อความในแต่ละช่องถูกยุบช่องว่างให้เหลือช่องเดียว ตารางที่ไม่มีแถวถูกทิ้ง
func ParseTables(r io.Reader) (factsheet.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("แปลง HTML ไม่สำเร็จ: %w", err)
	}

	var tables factsheet.Document
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var block factsheet.Block
		// ไม่เอาแถวของตารางที่ซ้อนอยู่ข้างใน
		table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
			return tr.Closest("table").IsSelection(table)
		}).Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, cleanText(cell.Text()))
			})
			if len(row) > 0 {
				block = append(block, row)
			}
		})
		if len(block) > 0 {
			tables = append(tables, block)
		}
	})
	return tables, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
