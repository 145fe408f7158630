package query

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/database/mongoclient"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/base/metrics"
	"github.com/x-xyz/spotmarket/domain"
)

const (
	queryMaxTime  = 20 * time.Second
	slowThreshold = 500 * time.Millisecond
)

var (
	timeNow = time.Now
)

type impl struct {
	client *mongoclient.Client
	met    metrics.Service
}

// New initializes an impl
func New(client *mongoclient.Client) Mongo {
	return &impl{
		client: client,
		met:    metrics.New("mongo"),
	}
}

func (im *impl) collection(table domain.Table) *mongo.Collection {
	return im.client.Database().Collection(string(table))
}

func (im *impl) FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error {
	defer im.met.BumpTime("time", "func", "findone", "table", string(table)).End()
	defer slowLog(context, string(table), "findone", query, "")()

	opts := options.FindOne().SetMaxTime(queryMaxTime)
	if err := im.collection(table).FindOne(context, query, opts).Decode(result); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		context.WithFields(log.Fields{"err": err, "table": table, "query": query}).Error("FindOne failed")
		return err
	}
	return nil
}

func (im *impl) Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error {
	defer im.met.BumpTime("time", "func", "upsert", "table", string(table)).End()
	defer slowLog(context, string(table), "upsert", selector, "")()

	opts := options.Replace().SetUpsert(true)
	if _, err := im.collection(table).ReplaceOne(context, selector, update, opts); err != nil {
		context.WithFields(log.Fields{"err": err, "table": table, "selector": selector}).Error("ReplaceOne failed")
		return err
	}
	return nil
}

func sortOption(sort string) bson.D {
	if sort == "" {
		return nil
	}
	if sort[0] == '-' {
		return bson.D{{Key: sort[1:], Value: -1}}
	}
	return bson.D{{Key: sort, Value: 1}}
}

func (im *impl) Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error {
	defer im.met.BumpTime("time", "func", "search", "table", string(table)).End()
	defer slowLog(context, string(table), "search", query, sort)()

	opts := options.Find().SetMaxTime(queryMaxTime).SetLimit(int64(limit)).SetSkip(int64(offset))
	if s := sortOption(sort); s != nil {
		opts.SetSort(s)
	}
	cursor, err := im.collection(table).Find(context, query, opts)
	if err != nil {
		context.WithFields(log.Fields{"err": err, "table": table, "query": query}).Error("Find failed")
		return err
	}
	defer cursor.Close(context)

	if err := cursor.All(context, results); err != nil {
		context.WithFields(log.Fields{"err": err, "table": table}).Error("cursor.All failed")
		return err
	}
	return nil
}

func (im *impl) EnsureIndex(context ctx.Ctx, table domain.Table, unique bool, keys ...string) error {
	idx := bson.D{}
	for _, k := range keys {
		idx = append(idx, bson.E{Key: k, Value: 1})
	}
	model := mongo.IndexModel{
		Keys:    idx,
		Options: options.Index().SetUnique(unique),
	}
	if _, err := im.collection(table).Indexes().CreateOne(context, model); err != nil {
		context.WithFields(log.Fields{"err": err, "table": table, "keys": keys}).Error("Indexes.CreateOne failed")
		return err
	}
	return nil
}

func slowLog(context ctx.Ctx, table, action string, query interface{}, sort string) func() {
	start := timeNow()

	return func() {
		elapsed := time.Since(start)
		if elapsed >= slowThreshold {
			context.WithFields(log.Fields{
				"table":      table,
				"action":     action,
				"startTime":  start.Unix(),
				"durationMs": elapsed.Milliseconds(),
				"query":      query,
				"sort":       sort,
			}).Warn("mongo slowlog")
		}
	}
}
