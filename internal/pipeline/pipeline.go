// Package pipeline รันขั้นตอนทั้งหมดของหนึ่งรอบ: รายชื่อหุ้น → ดึง factsheet → คำนวณ
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phuslu/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/AkapongAlone/set-dividend/internal/factsheet"
	"github.com/AkapongAlone/set-dividend/internal/models"
)

// Lister ให้รายชื่อหุ้นทั้งหมด
type Lister interface {
	ListSymbols(ctx context.Context) ([]models.Listing, error)
}

// Fetcher ดึง factsheet ของหุ้นหนึ่งตัว
type Fetcher interface {
	FetchFactsheet(ctx context.Context, symbol string) (factsheet.Document, error)
}

// Linker สร้าง URL ที่ส่งออกไปพร้อมผลลัพธ์
type Linker interface {
	FactsheetURL(symbol string) string
	HighlightURL(symbol string) string
}

const DefaultWorkers = 20

// Stage บอกว่าความผิดพลาดเกิดที่ขั้นไหน
type Stage string

const (
	StageFetch    Stage = "fetch"
	StageExtract  Stage = "extract"
	StageDividend Stage = "dividend"
)

// Failure คือความผิดพลาดของหุ้นหนึ่งตัวที่ไม่ทำให้ทั้งรอบหยุด
type Failure struct {
	Symbol string
	Stage  Stage
	Err    error
}

// Result คือผลของหนึ่งรอบ Summaries เรียงตามลำดับของ Lister
type Result struct {
	Summaries []models.Summary
	Failures  []Failure
	Started   time.Time
	Finished  time.Time
}

// Complete นับหุ้นที่คำนวณได้ครบ
func (r Result) Complete() int {
	n := 0
	for _, s := range r.Summaries {
		if s.Complete() {
			n++
		}
	}
	return n
}

type Pipeline struct {
	lister  Lister
	fetcher Fetcher
	linker  Linker
	workers int
	logger  *log.Logger
}

func New(lister Lister, fetcher Fetcher, linker Linker, workers int, logger *log.Logger) *Pipeline {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &Pipeline{
		lister:  lister,
		fetcher: fetcher,
		linker:  linker,
		workers: workers,
		logger:  logger,
	}
}

// Run ทำงานหนึ่งรอบ คืน error เมื่อดึงรายชื่อหุ้นไม่ได้ หรือ ctx ถูกยกเลิกระหว่างดึง factsheet
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	res := Result{Started: time.Now()}

	// 1. ดึงรายชื่อหุ้นทั้งหมด
	listings, err := p.lister.ListSymbols(ctx)
	if err != nil {
		return res, fmt.Errorf("ไม่สามารถดึงรายชื่อหุ้นได้: %w", err)
	}
	p.logger.Info().Int("symbols", len(listings)).Msg("พบหุ้นทั้งหมด")

	// 2. ดึง factsheet แบบขนาน
	sheets := p.FetchAll(ctx, listings)
	// ถูกยกเลิกระหว่างดึงข้อมูล ผลที่ได้ไม่ครบ ห้ามส่งออก
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("ถูกยกเลิกระหว่างดึง factsheet: %w", err)
	}

	// 3. คำนวณทีละตัวตามลำดับเดิม
	res.Summaries = make([]models.Summary, 0, len(listings))
	for _, l := range listings {
		summary, failures := p.summarize(l, sheets)
		res.Summaries = append(res.Summaries, summary)
		res.Failures = append(res.Failures, failures...)
	}

	res.Finished = time.Now()
	p.logger.Info().
		Int("symbols", len(listings)).
		Int("complete", res.Complete()).
		Int("failures", len(res.Failures)).
		Dur("elapsed", res.Finished.Sub(res.Started)).
		Msg("ทำงานเสร็จ")
	return res, nil
}

// FetchAll ดึง factsheet ของทุกหุ้นพร้อมกันไม่เกินจำนวน worker
// แต่ละ goroutine เขียนเฉพาะช่องของตัวเองใน slice จึงไม่ต้องใช้ lock
func (p *Pipeline) FetchAll(ctx context.Context, listings []models.Listing) Factsheets {
	docs := make([]factsheet.Document, len(listings))
	errs := make([]error, len(listings))

	wp := pool.New().WithContext(ctx).WithMaxGoroutines(p.workers)
	for i, l := range listings {
		i, symbol := i, l.Symbol
		wp.Go(func(ctx context.Context) error {
			p.logger.Debug().Str("symbol", symbol).Int("n", i+1).Int("total", len(listings)).Msg("กำลังดึงข้อมูล")
			docs[i], errs[i] = p.fetcher.FetchFactsheet(ctx, symbol)
			// ไม่คืน error เพื่อไม่ให้หุ้นตัวอื่นถูกยกเลิก
			return nil
		})
	}
	_ = wp.Wait()

	return newFactsheets(listings, docs, errs)
}

func (p *Pipeline) summarize(l models.Listing, sheets Factsheets) (models.Summary, []Failure) {
	var failures []Failure

	doc, err := sheets.Get(l.Symbol)
	if err != nil {
		p.logger.Warn().Str("symbol", l.Symbol).Err(err).Msg("ดึง factsheet ไม่สำเร็จ")
		return p.withLinks(models.AbsentSummary(l, err)), []Failure{{Symbol: l.Symbol, Stage: StageFetch, Err: err}}
	}

	a, err := factsheet.Analyze(doc)
	if err != nil {
		p.logger.Warn().Str("symbol", l.Symbol).Err(err).Msg("อ่าน factsheet ไม่ได้")
		return p.withLinks(models.AbsentSummary(l, err)), []Failure{{Symbol: l.Symbol, Stage: StageExtract, Err: err}}
	}
	if a.DividendErr != nil {
		p.logger.Warn().Str("symbol", l.Symbol).Err(a.DividendErr).Msg("แปลงตารางปันผลไม่ได้ ใช้ประวัติปันผลว่าง")
		failures = append(failures, Failure{Symbol: l.Symbol, Stage: StageDividend, Err: a.DividendErr})
	}

	return p.withLinks(models.Summary{
		Listing:       l,
		Price:         a.Price,
		PriceRange52w: a.PriceRange52w,
		DividendStats: a.Stats,
	}), failures
}

func (p *Pipeline) withLinks(s models.Summary) models.Summary {
	if p.linker != nil {
		s.FactsheetURL = p.linker.FactsheetURL(s.Symbol)
		s.HighlightURL = p.linker.HighlightURL(s.Symbol)
	}
	return s
}

// ErrNotFetched คือหุ้นที่ไม่ได้อยู่ในรายชื่อตอน FetchAll
// Run ถามเฉพาะหุ้นที่ดึงแล้ว จึงเจอ error นี้เมื่อเรียก Get ด้วย symbol อื่นเท่านั้น
var ErrNotFetched = errors.New("factsheet not fetched")
