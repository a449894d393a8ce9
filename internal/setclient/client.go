// Package setclient ดึงหน้า lookup และหน้า factsheet ของตลาดหลักทรัพย์
package setclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/time/rate"

	"github.com/AkapongAlone/set-dividend/internal/factsheet"
)

const (
	SymbolPlaceholder = "{symbol}"
	PrefixPlaceholder = "{prefix}"
)

// Options คือค่าที่ใช้สร้าง Client
type Options struct {
	LookupURL    string // ต้องมี {prefix}
	FactsheetURL string // ต้องมี {symbol}
	HighlightURL string // ต้องมี {symbol}

	Timeout      time.Duration
	RateInterval time.Duration
	RateBurst    int

	Logger *log.Logger
}

// Client เรียกหน้าเว็บผ่าน rate limiter ตัวเดียวกันทุก request
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	opts    Options
	logger  *log.Logger
}

func New(opts Options) *Client {
	limit := rate.Inf
	if opts.RateInterval > 0 {
		limit = rate.Every(opts.RateInterval)
	}
	burst := opts.RateBurst
	if burst < 1 {
		burst = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		opts:    opts,
		logger:  logger,
	}
}

// FactsheetURL คืน URL หน้า factsheet ของหุ้น
func (c *Client) FactsheetURL(symbol string) string {
	return expand(c.opts.FactsheetURL, SymbolPlaceholder, symbol)
}

// HighlightURL คืน URL หน้า company highlight ของหุ้น
func (c *Client) HighlightURL(symbol string) string {
	return expand(c.opts.HighlightURL, SymbolPlaceholder, symbol)
}

func (c *Client) lookupURL(prefix string) string {
	return expand(c.opts.LookupURL, PrefixPlaceholder, prefix)
}

func expand(template, placeholder, value string) string {
	return strings.ReplaceAll(template, placeholder, url.QueryEscape(value))
}

// FetchFactsheet ดึงหน้า factsheet แล้วแปลงทุกตารางเป็น factsheet.Document
func (c *Client) FetchFactsheet(ctx context.Context, symbol string) (factsheet.Document, error) {
	target := c.FactsheetURL(symbol)
	doc, err := c.getTables(ctx, target)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, URL: target, Err: err}
	}
	return doc, nil
}

func (c *Client) getTables(ctx context.Context, target string) (factsheet.Document, error) {
	// จำกัดอัตราการเรียก
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("สร้างคำขอไม่สำเร็จ: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ส่งคำขอไม่สำเร็จ: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	c.logger.Debug().Str("url", target).Int("status", resp.StatusCode).Msg("ดึงหน้าเว็บสำเร็จ")
	return ParseTables(resp.Body)
}

// StatusError คือคำตอบที่ไม่ใช่ 2xx
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("เว็บตอบสถานะ: %d", e.StatusCode)
}

// FetchError ห่อความผิดพลาดของเครือข่ายหรือ HTTP ของหุ้นตัวใดตัวหนึ่ง
type FetchError struct {
	Symbol string
	URL    string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
