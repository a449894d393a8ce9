package pipeline

import (
	"fmt"

	"github.com/AkapongAlone/set-dividend/internal/factsheet"
	"github.com/AkapongAlone/set-dividend/internal/models"
)

// Factsheets คือ factsheet ของทุกหุ้นในหนึ่งรอบ สร้างครั้งเดียวแล้วอ่านอย่างเดียว
type Factsheets struct {
	docs map[string]factsheet.Document
	errs map[string]error
}

func newFactsheets(listings []models.Listing, docs []factsheet.Document, errs []error) Factsheets {
	f := Factsheets{
		docs: make(map[string]factsheet.Document, len(listings)),
		errs: make(map[string]error),
	}
	for i, l := range listings {
		if errs[i] != nil {
			f.errs[l.Symbol] = errs[i]
			continue
		}
		f.docs[l.Symbol] = docs[i]
	}
	return f
}

// Get คืน factsheet ของหุ้น หรือ error ที่เกิดตอนดึง
func (f Factsheets) Get(symbol string) (factsheet.Document, error) {
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	doc, ok := f.docs[symbol]
	// symbol ที่ไม่ได้อยู่ในรายชื่อตอนดึง
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNotFetched)
	}
	return doc, nil
}

// Len คืนจำนวนหุ้นที่ดึงสำเร็จ
func (f Factsheets) Len() int {
	return len(f.docs)
}
