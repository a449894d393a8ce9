package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"github.com/AkapongAlone/set-dividend/internal/setclient"
)

const (
	DefaultLookupURL    = "https://www.set.or.th/set/commonslookup.do?language=en&country=US&prefix={prefix}"
	DefaultFactsheetURL = "https://www.set.or.th/set/factsheet.do?symbol={symbol}&ssoPageId=3&language=en&country=US"
	DefaultHighlightURL = "https://www.set.or.th/set/companyhighlight.do?symbol={symbol}&ssoPageId=5&language=en&country=US"
)

// Config คือค่าตั้งของหนึ่งรอบการทำงาน
type Config struct {
	LookupURL    string
	FactsheetURL string
	HighlightURL string

	Output   string
	ErrorLog string

	Workers      int
	RateInterval time.Duration
	RateBurst    int
	HTTPTimeout  time.Duration

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	LogLevel string
}

// Default คืนค่าตั้งเริ่มต้น
func Default() Config {
	return Config{
		LookupURL:       DefaultLookupURL,
		FactsheetURL:    DefaultFactsheetURL,
		HighlightURL:    DefaultHighlightURL,
		Output:          "./reports/analysis.csv",
		ErrorLog:        "fetch_errors.log",
		Workers:         20,
		RateInterval:    50 * time.Millisecond, // 20 req/sec
		RateBurst:       10,
		HTTPTimeout:     30 * time.Second,
		MongoDatabase:   "set_dividend",
		MongoCollection: "summaries",
		LogLevel:        "info",
	}
}

// LoadEnv โหลดไฟล์ .env ถ้ามี ไฟล์ที่ไม่มีอยู่ไม่ถือเป็น error
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Flags คือ flag ของคำสั่ง ทุกตัวอ่านค่าจาก environment ได้
func Flags() []cli.Flag {
	d := Default()
	return []cli.Flag{
		cli.StringFlag{Name: "lookup-url", Value: d.LookupURL, EnvVar: "SET_LOOKUP_URL", Usage: "lookup page URL, {prefix} is replaced"},
		cli.StringFlag{Name: "factsheet-url", Value: d.FactsheetURL, EnvVar: "SET_FACTSHEET_URL", Usage: "factsheet URL, {symbol} is replaced"},
		cli.StringFlag{Name: "highlight-url", Value: d.HighlightURL, EnvVar: "SET_HIGHLIGHT_URL", Usage: "company highlight URL, {symbol} is replaced"},
		cli.StringFlag{Name: "output, o", Value: d.Output, EnvVar: "EXPORT_FILEPATH", Usage: "CSV output path"},
		cli.StringFlag{Name: "error-log", Value: d.ErrorLog, EnvVar: "ERROR_LOG", Usage: "per-symbol failure log path"},
		cli.IntFlag{Name: "workers, w", Value: d.Workers, EnvVar: "WORKERS", Usage: "concurrent factsheet fetches"},
		cli.DurationFlag{Name: "rate-interval", Value: d.RateInterval, EnvVar: "RATE_INTERVAL", Usage: "minimum interval between requests"},
		cli.IntFlag{Name: "rate-burst", Value: d.RateBurst, EnvVar: "RATE_BURST", Usage: "request burst size"},
		cli.DurationFlag{Name: "http-timeout", Value: d.HTTPTimeout, EnvVar: "HTTP_TIMEOUT", Usage: "per-request timeout"},
		cli.StringFlag{Name: "mongo-uri", EnvVar: "MONGO_URI", Usage: "store summaries in MongoDB when set"},
		cli.StringFlag{Name: "mongo-db", Value: d.MongoDatabase, EnvVar: "MONGO_DB"},
		cli.StringFlag{Name: "mongo-collection", Value: d.MongoCollection, EnvVar: "MONGO_COLLECTION"},
		cli.StringFlag{Name: "log-level", Value: d.LogLevel, EnvVar: "LOG_LEVEL", Usage: "debug, info, warn or error"},
	}
}

// FromContext อ่านค่าจาก flag
func FromContext(c *cli.Context) Config {
	return Config{
		LookupURL:       c.String("lookup-url"),
		FactsheetURL:    c.String("factsheet-url"),
		HighlightURL:    c.String("highlight-url"),
		Output:          c.String("output"),
		ErrorLog:        c.String("error-log"),
		Workers:         c.Int("workers"),
		RateInterval:    c.Duration("rate-interval"),
		RateBurst:       c.Int("rate-burst"),
		HTTPTimeout:     c.Duration("http-timeout"),
		MongoURI:        c.String("mongo-uri"),
		MongoDatabase:   c.String("mongo-db"),
		MongoCollection: c.String("mongo-collection"),
		LogLevel:        c.String("log-level"),
	}
}

// Validate ตรวจค่าตั้งทั้งหมด และรวม error ทุกข้อไว้ด้วยกัน
func (c Config) Validate() error {
	var errs []error
	for _, u := range []struct{ name, value, placeholder string }{
		{"lookup-url", c.LookupURL, setclient.PrefixPlaceholder},
		{"factsheet-url", c.FactsheetURL, setclient.SymbolPlaceholder},
		{"highlight-url", c.HighlightURL, setclient.SymbolPlaceholder},
	} {
		if !strings.Contains(u.value, u.placeholder) {
			errs = append(errs, fmt.Errorf("%s must contain %s", u.name, u.placeholder))
		}
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output must not be empty"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("rate-burst must be at least 1, got %d", c.RateBurst))
	}
	if c.RateInterval < 0 {
		errs = append(errs, fmt.Errorf("rate-interval must not be negative"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http-timeout must be positive"))
	}
	if c.MongoURI != "" && (c.MongoDatabase == "" || c.MongoCollection == "") {
		errs = append(errs, errors.New("mongo-db and mongo-collection are required with mongo-uri"))
	}
	return errors.Join(errs...)
}

// ClientOptions แปลงเป็นค่าตั้งของ setclient
func (c Config) ClientOptions() setclient.Options {
	return setclient.Options{
		LookupURL:    c.LookupURL,
		FactsheetURL: c.FactsheetURL,
		HighlightURL: c.HighlightURL,
		Timeout:      c.HTTPTimeout,
		RateInterval: c.RateInterval,
		RateBurst:    c.RateBurst,
	}
}
