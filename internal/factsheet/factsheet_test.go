package factsheet

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkapongAlone/set-dividend/internal/models"
)

func dividendBlock(rows ...[]string) Block {
	b := Block{
		{"Dividend"},
		{"Payment Date", "Operation Period", "Dividend/Share", "Unit"},
	}
	return append(b, rows...)
}

func priceBlock(price, rng string) Block {
	return Block{
		{"Price (Baht)", "52 Week High / Low (Baht)"},
		{price, rng},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  TableKind
	}{
		{"price", priceBlock("10", ""), KindPrice},
		{"dividend title row", dividendBlock(), KindDividend},
		{"dividend on second row", Block{{"Type"}, {"Dividend Type"}}, KindDividend},
		{"unknown", Block{{"Profile"}, {"Name"}}, KindUnknown},
		{"empty", Block{}, KindUnknown},
		{"marker is case sensitive", Block{{"price"}}, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.block))
		})
	}
}

func TestDocumentFind(t *testing.T) {
	doc := Document{
		{{"Company Profile"}},
		priceBlock("25.50", "30.00 / 20.00"),
		dividendBlock(),
	}

	b, err := doc.Find(KindPrice)
	require.NoError(t, err)
	assert.Equal(t, "25.50", b.Cell(1, 0))

	b, err = doc.Find(KindDividend)
	require.NoError(t, err)
	assert.Equal(t, "Dividend", b.Cell(0, 0))

	_, err = Document{{{"Company Profile"}}}.Find(KindDividend)
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestNormalizeDividends_NoInformation(t *testing.T) {
	records, err := NormalizeDividends(dividendBlock([]string{"No Information Found"}))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNormalizeDividends_CurrencyFilter(t *testing.T) {
	b := dividendBlock(
		[]string{"2021-05-10", "2020-07-01 - 2020-12-31", "0.50", "Baht"},
		[]string{"2020-11-10", "2020-01-01 - 2020-06-30", "0.02", "USD"},
	)
	records, err := NormalizeDividends(b)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, 0.5, r.Amount)
	assert.Equal(t, "Baht", r.Currency)
	assert.Equal(t, date(2021, time.May, 10), r.PaymentDate)
	assert.Equal(t, 6, r.OpPeriodMonths)
}

func TestNormalizeDividends_KeepsTableOrder(t *testing.T) {
	b := dividendBlock(
		[]string{"10/05/2021", "01/07/2020 - 31/12/2020", "1,200.00", "Baht"},
		[]string{"", "", "", ""},
		[]string{"10/11/2020", "01/01/2020 - 30/06/2020", "0.75", "Baht"},
	)
	records, err := NormalizeDividends(b)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1200.0, records[0].Amount)
	assert.Equal(t, 0.75, records[1].Amount)
	assert.Equal(t, date(2020, time.December, 31), records[0].OpEnd)
}

func TestNormalizeDividends_SkipsBlankRows(t *testing.T) {
	b := dividendBlock(
		[]string{" ", "\t", "", ""},
		[]string{"2021-05-10", "2020-07-01 - 2020-12-31", "0.50", "Baht"},
		[]string{},
	)
	records, err := NormalizeDividends(b)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0.5, records[0].Amount)
}

func TestNormalizeDividends_HeaderOrder(t *testing.T) {
	b := Block{
		{"Dividend"},
		{"Operation Period", "Dividend/Share", "Unit", "Payment Date", "Type"},
		{"2020-01-01 - 2020-03-31", "0.30", "Baht", "2020-05-01", "Cash Dividend"},
	}
	records, err := NormalizeDividends(b)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0.3, records[0].Amount)
	assert.Equal(t, 3, records[0].OpPeriodMonths)
	assert.Equal(t, date(2020, time.May, 1), records[0].PaymentDate)
}

func TestNormalizeDividends_AllOrNothing(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"bad payment date", []string{"soon", "2020-01-01 - 2020-06-30", "0.1", "Baht"}},
		{"missing separator", []string{"2020-08-01", "2020-01-01 to 2020-06-30", "0.1", "Baht"}},
		{"bad period date", []string{"2020-08-01", "2020-01-01 - later", "0.1", "Baht"}},
		{"bad amount", []string{"2020-08-01", "2020-01-01 - 2020-06-30", "-", "Baht"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := dividendBlock(
				[]string{"2021-05-10", "2020-07-01 - 2020-12-31", "0.50", "Baht"},
				tt.row,
			)
			records, err := NormalizeDividends(b)
			assert.True(t, errors.Is(err, ErrDividendParse), "got %v", err)
			assert.Nil(t, records)
		})
	}
}

func TestOpPeriodMonths(t *testing.T) {
	assert.Equal(t, 3, OpPeriodMonths(date(2020, time.January, 15), date(2020, time.March, 20)))
	assert.Equal(t, 1, OpPeriodMonths(date(2020, time.January, 1), date(2020, time.January, 31)))
	assert.Equal(t, 6, OpPeriodMonths(date(2020, time.October, 1), date(2021, time.March, 31)))
	assert.Equal(t, 12, OpPeriodMonths(date(2020, time.January, 1), date(2020, time.December, 31)))
}

func TestParseDate(t *testing.T) {
	for in, want := range map[string]time.Time{
		"2020-01-15":   date(2020, time.January, 15),
		"15/01/2020":   date(2020, time.January, 15),
		"5/1/2020":     date(2020, time.January, 5),
		"15 Jan 2020":  date(2020, time.January, 15),
		"Jan 15, 2020": date(2020, time.January, 15),
		" 2020-01-15 ": date(2020, time.January, 15),
	} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDate("13/13/2020")
	assert.Error(t, err)
}

func TestParseRange52w(t *testing.T) {
	r, ok := ParseRange52w("120.00 / 100.00")
	require.True(t, ok)
	assert.InDelta(t, 0.1667, r, 1e-4)

	r, ok = ParseRange52w("120.00\u00a0/\u00a0100.00")
	require.True(t, ok)
	assert.InDelta(t, 0.1667, r, 1e-4)

	for _, bad := range []string{"120.00-100.00", "", "abc / 100", "120 / -"} {
		_, ok := ParseRange52w(bad)
		assert.False(t, ok, bad)
	}
}

func TestParsePrice(t *testing.T) {
	p, err := ParsePrice(priceBlock("1,025.50", ""))
	require.NoError(t, err)
	assert.Equal(t, 1025.5, p)

	_, err = ParsePrice(priceBlock("-", ""))
	assert.True(t, errors.Is(err, ErrPriceParse))
}

func TestRangeCell(t *testing.T) {
	b := Block{
		{"Price (Baht)", "P/E", "52 Week High / Low"},
		{"10", "12.3", "12.00 / 8.00"},
	}
	assert.Equal(t, "12.00 / 8.00", RangeCell(b))
	assert.Equal(t, "9 / 7", RangeCell(Block{{"Price"}, {"8", "9 / 7"}}))
}

func TestDerive_Empty(t *testing.T) {
	st := Derive(100, nil)

	assert.Equal(t, 0.0, st.LatestDividend)
	assert.True(t, math.IsNaN(st.AvgDividend))
	assert.True(t, math.IsNaN(st.StdDividend))
	assert.True(t, math.IsNaN(st.AvgOverStd))
	assert.True(t, math.IsNaN(st.AvgDividendRatio))
	assert.True(t, math.IsNaN(st.LatestDividendRatio))
	assert.Equal(t, 0, st.OpPeriodMonths)
	assert.Equal(t, 0, st.PaymentCount)
	assert.Equal(t, 0.0, st.SumDividend)
	assert.Nil(t, st.LastPaid)
	assert.Empty(t, st.Amounts)
}

func TestDerive_AverageRatio(t *testing.T) {
	records := []models.DividendRecord{
		{OpStart: date(2020, time.July, 1), OpEnd: date(2020, time.December, 31), OpPeriodMonths: 6, Amount: 5},
		{OpStart: date(2020, time.January, 1), OpEnd: date(2020, time.June, 30), OpPeriodMonths: 6, Amount: 4},
	}
	st := Derive(100, records)

	assert.Equal(t, []float64{5, 4}, st.Amounts)
	assert.Equal(t, []time.Time{date(2020, time.July, 1), date(2020, time.January, 1)}, st.OpStartDates)
	assert.InDelta(t, 4.5, st.AvgDividend, 1e-12)
	assert.InDelta(t, 0.09, st.AvgDividendRatio, 1e-12)
	assert.InDelta(t, 0.5, st.StdDividend, 1e-12)
	assert.InDelta(t, 0.18, st.AvgOverStd, 1e-12)
	assert.InDelta(t, 0.10, st.LatestDividendRatio, 1e-12)
	assert.InDelta(t, 0.20, st.LatestDividendOverStd, 1e-12)
	assert.InDelta(t, 9.0, st.SumDividend, 1e-12)
	assert.InDelta(t, 0.09, st.SumDividendRatio, 1e-12)
	assert.InDelta(t, 18.0, st.SumOverStd, 1e-12)
	assert.Equal(t, 5.0, st.LatestDividend)
	assert.Equal(t, 6, st.OpPeriodMonths)
	assert.Equal(t, 2, st.PaymentCount)
	require.NotNil(t, st.LastPaid)
	assert.Equal(t, date(2020, time.December, 31), *st.LastPaid)
}

func TestDerive_SingleRecordHasZeroStd(t *testing.T) {
	st := Derive(50, []models.DividendRecord{{OpPeriodMonths: 12, Amount: 2}})
	assert.Equal(t, 0.0, st.StdDividend)
	assert.True(t, math.IsInf(st.AvgOverStd, 1))
}

func TestDerive_ZeroPeriod(t *testing.T) {
	st := Derive(50, []models.DividendRecord{{OpPeriodMonths: 0, Amount: 2}})
	assert.True(t, math.IsInf(st.AvgDividendRatio, 1))
}

func TestAnalyze(t *testing.T) {
	doc := Document{
		{{"Company Profile"}},
		priceBlock("100", "120.00 / 100.00"),
		dividendBlock(
			[]string{"2021-05-10", "2020-07-01 - 2020-12-31", "5", "Baht"},
			[]string{"2020-11-10", "2020-01-01 - 2020-06-30", "4", "Baht"},
		),
	}
	a, err := Analyze(doc)
	require.NoError(t, err)
	assert.NoError(t, a.DividendErr)
	assert.Equal(t, 100.0, a.Price)
	require.NotNil(t, a.PriceRange52w)
	assert.InDelta(t, 0.1667, *a.PriceRange52w, 1e-4)
	assert.InDelta(t, 0.09, a.Stats.AvgDividendRatio, 1e-12)
}

func TestAnalyze_BadRangeIsAbsent(t *testing.T) {
	doc := Document{priceBlock("100", "n/a"), dividendBlock([]string{"No Information Found"})}
	a, err := Analyze(doc)
	require.NoError(t, err)
	assert.Nil(t, a.PriceRange52w)
	assert.Equal(t, 0.0, a.Stats.LatestDividend)
}

func TestAnalyze_DividendParseFailureKeepsPrice(t *testing.T) {
	doc := Document{
		priceBlock("100", "120 / 90"),
		dividendBlock([]string{"bad", "2020-01-01 - 2020-06-30", "1", "Baht"}),
	}
	a, err := Analyze(doc)
	require.NoError(t, err)
	assert.True(t, errors.Is(a.DividendErr, ErrDividendParse))
	assert.Empty(t, a.Records)
	assert.Equal(t, 100.0, a.Price)
	assert.True(t, math.IsNaN(a.Stats.AvgDividend))
}

func TestAnalyze_MissingTables(t *testing.T) {
	_, err := Analyze(Document{dividendBlock()})
	assert.True(t, errors.Is(err, ErrTableNotFound))

	_, err = Analyze(Document{priceBlock("1", "")})
	assert.True(t, errors.Is(err, ErrTableNotFound))

	_, err = Analyze(Document{priceBlock("x", ""), dividendBlock()})
	assert.True(t, errors.Is(err, ErrPriceParse))
}
