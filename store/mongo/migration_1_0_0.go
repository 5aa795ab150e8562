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

	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	mstore "github.com/mendersoftware/go-lib-micro/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
)

const (
	IndexNameReservedOrderId = "reserved_order_id"
	IndexNameMaskedId        = "masked_id"
	IndexNameCreatedAt       = "created_at"
)

type migration_1_0_0 struct {
	ms  *DataStoreMongo
	ctx context.Context
}

// Up creates the cart lookup indexes: the reserved order ID used by
// fixtures, the unique guest masked ID and the creation timestamp.
func (m *migration_1_0_0) Up(from migrate.Version) error {
	databaseName := mstore.DbFromContext(m.ctx, DbName)
	coll := m.ms.client.Database(databaseName).Collection(DbCartsColl)

	_, err := coll.Indexes().CreateMany(m.ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: DbCartReservedOrderId, Value: 1}},
			Options: mopts.Index().
				SetName(IndexNameReservedOrderId).
				SetSparse(true),
		},
		{
			Keys: bson.D{{Key: DbCartMaskedId, Value: 1}},
			Options: mopts.Index().
				SetName(IndexNameMaskedId).
				SetUnique(true).
				SetSparse(true),
		},
		{
			Keys: bson.D{{Key: DbCartCreatedAt, Value: 1}},
			Options: mopts.Index().
				SetName(IndexNameCreatedAt),
		},
	})
	return err
}

func (m *migration_1_0_0) Version() migrate.Version {
	return migrate.MakeVersion(1, 0, 0)
}
