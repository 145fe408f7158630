package mongoclient

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/x-xyz/spotmarket/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second
	mgConnTimeout   = 10 * time.Second
)

// Config of the audit database
type Config struct {
	Uri         string `mapstructure:"uri"`
	AuthDb      string `mapstructure:"auth_db"`
	Db          string `mapstructure:"db"`
	SetSafe     bool   `mapstructure:"set_safe"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
}

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// Database returns the configured database
func (c *Client) Database() *mongo.Database {
	return c.Client.Database(c.DbName)
}

// MustConnectMongoClient returns MongoDB connection client if connected successfully, or it will trigger panic
func MustConnectMongoClient(cfg Config) *Client {
	cli, err := ConnectMongoClient(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": cfg.Uri, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// ConnectMongoClient returns mongo driver client
func ConnectMongoClient(cfg Config) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mgConnTimeout)
	defer cancel()

	connSetting, err := connstring.Parse(cfg.Uri)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"mongoURI": cfg.Uri,
			"dbName":   cfg.Db,
			"err":      err,
		}).Error("fail to parse connstring")
		return nil, err
	}

	clientOpts := options.Client().ApplyURI(cfg.Uri).SetSocketTimeout(mgSocketTimeout).SetRetryWrites(true)

	// If AuthSource is not set in connstring, set it to AuthDb
	if connSetting.Username != "" && connSetting.AuthSource == "" && cfg.AuthDb != "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              cfg.AuthDb,
		})
	}
	if cfg.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.SetSafe {
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"mongoHosts": connSetting.Hosts,
			"dbName":     cfg.Db,
			"err":        err,
		}).Error("fail to connect mongo db")
		return nil, err
	}

	if _, err := client.Database(cfg.Db).ListCollectionNames(ctx, bson.D{}); err != nil {
		log.Log().WithFields(log.Fields{
			"mongoHosts": connSetting.Hosts,
			"dbName":     cfg.Db,
			"err":        err,
		}).Error("fail to test mongo db")
		return nil, err
	}

	log.Log().WithFields(log.Fields{
		"mongoHosts": connSetting.Hosts,
		"db":         cfg.Db,
	}).Info("mongo connected")
	return &Client{
		Client: client,
		DbName: cfg.Db,
	}, nil
}
