package export

import (
	"context"
	"fmt"
	"time"

	"github.com/phuslu/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/AkapongAlone/set-dividend/internal/models"
)

// bulkWriter คือส่วนของ *mongo.Collection ที่ MongoStore ใช้
type bulkWriter interface {
	BulkWrite(ctx context.Context, writes []mongo.WriteModel, opts ...options.Lister[options.BulkWriteOptions]) (*mongo.BulkWriteResult, error)
}

// MongoStore เก็บผลลัพธ์ล่าสุดของแต่ละหุ้นไว้ใน collection เดียว
type MongoStore struct {
	client *mongo.Client
	coll   bulkWriter
	logger *log.Logger
}

// NewMongoStore เชื่อมต่อและ ping MongoDB ก่อนใช้งาน
func NewMongoStore(ctx context.Context, uri, database, collection string, logger *log.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("ไม่สามารถเชื่อมต่อกับ MongoDB ได้: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ไม่สามารถ ping ไปยัง MongoDB ได้: %w", err)
	}

	logger.Info().Str("database", database).Str("collection", collection).Msg("เชื่อมต่อกับ MongoDB สำเร็จแล้ว")
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
		logger: logger,
	}, nil
}

// SaveSummaries upsert หนึ่งเอกสารต่อหุ้น โดยใช้ symbol เป็นคีย์
func (m *MongoStore) SaveSummaries(ctx context.Context, runAt time.Time, summaries []models.Summary) error {
	if len(summaries) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(summaries))
	for _, s := range summaries {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "symbol", Value: s.Symbol}}).
			SetReplacement(summaryDocument(s, runAt)).
			SetUpsert(true))
	}

	res, err := m.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("บันทึกลง MongoDB ไม่สำเร็จ: %w", err)
	}
	m.logger.Info().
		Int64("upserted", res.UpsertedCount).
		Int64("modified", res.ModifiedCount).
		Msg("บันทึกลง MongoDB แล้ว")
	return nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

func summaryDocument(s models.Summary, runAt time.Time) bson.M {
	doc := bson.M{
		"symbol":        s.Symbol,
		"name":          s.Name,
		"market":        s.Market,
		"factsheet_url": s.FactsheetURL,
		"highlight_url": s.HighlightURL,
		"run_at":        runAt,
		"error":         "",
	}
	if !s.Complete() {
		doc["error"] = s.Err.Error()
		return doc
	}

	doc["price"] = s.Price
	doc["price_range_52w"] = s.PriceRange52w
	doc["dividends"] = s.Amounts
	doc["op_start_dates"] = s.OpStartDates
	doc["op_period_months"] = s.OpPeriodMonths
	doc["sum_dividend"] = s.SumDividend
	doc["avg_dividend"] = s.AvgDividend
	doc["std_dividend"] = s.StdDividend
	doc["latest_dividend"] = s.LatestDividend
	doc["sum_dividend_ratio"] = s.SumDividendRatio
	doc["avg_dividend_ratio"] = s.AvgDividendRatio
	doc["avg_over_std"] = s.AvgOverStd
	doc["latest_dividend_ratio"] = s.LatestDividendRatio
	doc["latest_dividend_over_std"] = s.LatestDividendOverStd
	doc["sum_over_std"] = s.SumOverStd
	doc["payment_count"] = s.PaymentCount
	doc["last_paid"] = s.LastPaid
	return doc
}
