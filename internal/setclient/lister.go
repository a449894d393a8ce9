package setclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/AkapongAlone/set-dividend/internal/factsheet"
	"github.com/AkapongAlone/set-dividend/internal/models"
)

// Prefixes คือหน้าตัวอักษรของหน้า lookup หุ้นที่ขึ้นต้นด้วยตัวเลขอยู่ในหน้า NUMBER
func Prefixes() []string {
	prefixes := []string{"NUMBER"}
	for c := 'A'; c <= 'Z'; c++ {
		prefixes = append(prefixes, string(c))
	}
	return prefixes
}

// ListSymbols ดึงรายชื่อหุ้นทั้งหมดจากทุกหน้า lookup
// ถ้าหน้าใดหน้าหนึ่งดึงไม่ได้จะคืน error เพราะรายชื่อไม่ครบ
func (c *Client) ListSymbols(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	seen := make(map[string]bool)

	for _, prefix := range Prefixes() {
		target := c.lookupURL(prefix)
		doc, err := c.getTables(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("ดึงหน้า lookup %s ไม่สำเร็จ: %w", prefix, err)
		}
		page, err := listingsFromTable(doc)
		if err != nil {
			return nil, fmt.Errorf("หน้า lookup %s: %w", prefix, err)
		}
		for _, l := range page {
			if seen[l.Symbol] {
				continue
			}
			seen[l.Symbol] = true
			listings = append(listings, l)
		}
		c.logger.Debug().Str("prefix", prefix).Int("count", len(page)).Msg("อ่านหน้า lookup แล้ว")
	}
	return listings, nil
}

// listingsFromTable อ่านรายชื่อหุ้นจากตารางแรกของหน้า lookup
func listingsFromTable(doc factsheet.Document) ([]models.Listing, error) {
	if len(doc) == 0 {
		return nil, nil
	}
	table := doc[0]

	symbolCol, nameCol, marketCol := -1, -1, -1
	for i, h := range table.Row(0) {
		switch {
		case symbolCol < 0 && strings.EqualFold(h, "Symbol"):
			symbolCol = i
		case nameCol < 0 && (strings.Contains(h, "Name") || strings.Contains(h, "Company")):
			nameCol = i
		case marketCol < 0 && strings.EqualFold(h, "Market"):
			marketCol = i
		}
	}
	if symbolCol < 0 {
		return nil, fmt.Errorf("ไม่พบคอลัมน์ Symbol")
	}

	var listings []models.Listing
	for row := 1; row < len(table); row++ {
		symbol := table.Cell(row, symbolCol)
		if symbol == "" {
			continue
		}
		listings = append(listings, models.Listing{
			Symbol: symbol,
			Name:   table.Cell(row, nameCol),
			Market: table.Cell(row, marketCol),
		})
	}
	return listings, nil
}
