package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phuslu/log"
	"github.com/urfave/cli"

	"github.com/AkapongAlone/set-dividend/internal/config"
	"github.com/AkapongAlone/set-dividend/internal/export"
	"github.com/AkapongAlone/set-dividend/internal/logging"
	"github.com/AkapongAlone/set-dividend/internal/pipeline"
	"github.com/AkapongAlone/set-dividend/internal/setclient"
)

func main() {
	config.LoadEnv()

	app := cli.NewApp()
	app.Name = "setdividend"
	app.Usage = "scrape SET factsheets and export dividend ratios to CSV"
	app.Flags = config.Flags()
	app.Action = func(c *cli.Context) error {
		cfg := config.FromContext(c)
		if err := cfg.Validate(); err != nil {
			return cli.NewExitError(fmt.Sprintf("ค่าตั้งไม่ถูกต้อง: %v", err), 2)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, cfg, logging.New(cfg.LogLevel))
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	opts := cfg.ClientOptions()
	opts.Logger = logger
	client := setclient.New(opts)

	p := pipeline.New(client, client, client, cfg.Workers, logger)
	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	path, err := export.ExportToCSV(res.Summaries, cfg.Output)
	if err != nil {
		return err
	}
	logger.Info().Str("file", path).Int("rows", len(res.Summaries)).Msg("ส่งออกข้อมูลเรียบร้อยแล้ว")

	if err := export.WriteFailureLog(cfg.ErrorLog, res.Started, res.Failures); err != nil {
		logger.Warn().Err(err).Msg("บันทึกไฟล์ข้อผิดพลาดไม่สำเร็จ")
	} else if len(res.Failures) > 0 {
		logger.Info().Int("failures", len(res.Failures)).Str("file", cfg.ErrorLog).Msg("พบข้อผิดพลาด บันทึกไว้แล้ว")
	}

	if cfg.MongoURI == "" {
		return nil
	}
	store, err := export.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())
	return store.SaveSummaries(ctx, res.Started, res.Summaries)
}
