// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package mongo

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	mstore "github.com/mendersoftware/go-lib-micro/store"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/store"
)

const (
	DbVersion = "1.0.0"

	DbName         = "carts"
	DbCartsColl    = "carts"
	DbCountersColl = "counters"

	DbCartId              = "_id"
	DbCartReservedOrderId = "reserved_order_id"
	DbCartMaskedId        = "masked_id"
	DbCartCreatedAt       = "created_at"

	DbCounterSeq = "seq"

	// counter document holding the last assigned cart ID
	counterCartId = "cart_id"
)

type DataStoreMongoConfig struct {
	// connection string
	ConnectionString string

	// SSL support
	SSL           bool
	SSLSkipVerify bool

	// Overwrites credentials provided in connection string if provided
	Username string
	Password string
}

type DataStoreMongo struct {
	client      *mongo.Client
	automigrate bool
}

func NewDataStoreMongoWithSession(client *mongo.Client) store.DataStore {
	return &DataStoreMongo{client: client}
}

func NewDataStoreMongo(config DataStoreMongoConfig) (store.DataStore, error) {
	clientOptions := mopts.Client()
	mongoURL := config.ConnectionString
	if !strings.Contains(mongoURL, "://") {
		mongoURL = "mongodb://" + mongoURL
	}
	clientOptions.ApplyURI(mongoURL)

	if config.Username != "" {
		credentials := mopts.Credential{
			Username: config.Username,
		}
		if config.Password != "" {
			credentials.Password = config.Password
			credentials.PasswordSet = true
		}
		clientOptions.SetAuth(credentials)
	}

	if config.SSL {
		tlsConfig := &tls.Config{}
		tlsConfig.InsecureSkipVerify = config.SSLSkipVerify
		clientOptions.SetTLSConfig(tlsConfig)
	}

	// Set 10s timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo server")
	}

	// Validate connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "error reaching mongo server")
	}

	return &DataStoreMongo{client: client}, nil
}

func (db *DataStoreMongo) Ping(ctx context.Context) error {
	res := db.client.Database(DbName).RunCommand(ctx, bson.M{"ping": 1})
	return res.Err()
}

func (db *DataStoreMongo) carts(ctx context.Context) *mongo.Collection {
	return db.client.
		Database(mstore.DbFromContext(ctx, DbName)).
		Collection(DbCartsColl)
}

func (db *DataStoreMongo) GetCart(ctx context.Context, id model.CartID) (*model.Cart, error) {
	var res model.Cart
	err := db.carts(ctx).FindOne(ctx, bson.M{DbCartId: id}).Decode(&res)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch cart")
	}
	return &res, nil
}

func (db *DataStoreMongo) GetCarts(ctx context.Context) ([]model.Cart, error) {
	opts := mopts.Find().SetSort(bson.D{{Key: DbCartId, Value: 1}})
	cursor, err := db.carts(ctx).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search carts")
	}
	defer cursor.Close(ctx)

	res := []model.Cart{}
	if err = cursor.All(ctx, &res); err != nil {
		return nil, errors.Wrap(err, "failed to fetch cart list")
	}
	return res, nil
}

// nextCartID atomically increments the tenant's cart ID counter.
func (db *DataStoreMongo) nextCartID(ctx context.Context) (model.CartID, error) {
	database := db.client.Database(mstore.DbFromContext(ctx, DbName))
	opts := mopts.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(mopts.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := database.Collection(DbCountersColl).FindOneAndUpdate(ctx,
		bson.M{"_id": counterCartId},
		bson.M{"$inc": bson.M{DbCounterSeq: int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, errors.Wrap(err, "failed to allocate cart id")
	}
	return model.CartID(counter.Seq), nil
}

// reserveCartID moves the counter past an explicitly chosen ID.
func (db *DataStoreMongo) reserveCartID(ctx context.Context, id model.CartID) error {
	database := db.client.Database(mstore.DbFromContext(ctx, DbName))
	_, err := database.Collection(DbCountersColl).UpdateOne(ctx,
		bson.M{"_id": counterCartId},
		bson.M{"$max": bson.M{DbCounterSeq: int64(id)}},
		mopts.Update().SetUpsert(true),
	)
	return errors.Wrap(err, "failed to reserve cart id")
}

func (db *DataStoreMongo) AddCart(ctx context.Context, cart *model.Cart) error {
	var err error
	if cart.ID == 0 {
		cart.ID, err = db.nextCartID(ctx)
	} else {
		err = db.reserveCartID(ctx, cart.ID)
	}
	if err != nil {
		return err
	}

	_, err = db.carts(ctx).InsertOne(ctx, cart)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrCartExists
		}
		return errors.Wrap(err, "failed to store cart")
	}
	return nil
}

func (db *DataStoreMongo) DeleteCart(ctx context.Context, id model.CartID) error {
	res, err := db.carts(ctx).DeleteOne(ctx, bson.M{DbCartId: id})
	if err != nil {
		return errors.Wrap(err, "failed to remove cart")
	}
	if res.DeletedCount == 0 {
		return store.ErrCartNotFound
	}
	return nil
}
