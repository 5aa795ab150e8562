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

	"github.com/pkg/errors"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	mstore "github.com/mendersoftware/go-lib-micro/store"

	"github.com/mendersoftware/carts/store"
)

// WithAutomigrate returns a copy of the datastore that applies pending
// migrations instead of only checking the schema version.
func (db *DataStoreMongo) WithAutomigrate() store.DataStore {
	cp := *db
	cp.automigrate = true
	return &cp
}

// cartMigrations lists the schema steps of a carts database, oldest first.
// ctx must carry the identity of the tenant owning the database.
func (db *DataStoreMongo) cartMigrations(ctx context.Context) []migrate.Migration {
	return []migrate.Migration{
		&migration_1_0_0{ms: db, ctx: ctx},
	}
}

// tenantDatabases lists the carts databases on the server. Without any
// tenant database the default one is migrated.
func (db *DataStoreMongo) tenantDatabases(ctx context.Context) ([]string, error) {
	names, err := migrate.GetTenantDbs(ctx, db.client, mstore.IsTenantDb(DbName))
	if err != nil {
		return nil, errors.Wrap(err, "failed go retrieve tenant DBs")
	}
	if len(names) == 0 {
		return []string{DbName}, nil
	}
	return names, nil
}

func (db *DataStoreMongo) migrateTenant(
	ctx context.Context,
	target migrate.Version,
	tenantID string,
) error {
	database := mstore.DbNameForTenant(tenantID, DbName)
	l := log.FromContext(ctx).F(log.Ctx{
		"database":    database,
		"automigrate": db.automigrate,
	})
	l.Infof("bringing carts schema to %s", target)

	ctx = identity.WithContext(ctx, &identity.Identity{Tenant: tenantID})
	migrator := &migrate.SimpleMigrator{
		Client:      db.client,
		Db:          database,
		Automigrate: db.automigrate,
	}
	err := migrator.Apply(ctx, target, db.cartMigrations(ctx))
	if err != nil {
		if migrate.IsErrNeedsMigration(err) {
			l.Warn("schema is outdated, start with --automigrate to upgrade it")
		}
		return errors.Wrap(err, "failed to apply migrations")
	}
	return nil
}

// MigrateTenant brings the database of a single tenant to version,
// creating it if needed.
func (db *DataStoreMongo) MigrateTenant(
	ctx context.Context,
	version string,
	tenantId string,
) error {
	target, err := migrate.NewVersion(version)
	if err != nil {
		return errors.Wrap(err, "failed to parse service version")
	}
	return db.migrateTenant(ctx, *target, tenantId)
}

// Migrate brings every carts database on the server to version.
func (db *DataStoreMongo) Migrate(ctx context.Context, version string) error {
	target, err := migrate.NewVersion(version)
	if err != nil {
		return errors.Wrap(err, "failed to parse service version")
	}

	databases, err := db.tenantDatabases(ctx)
	if err != nil {
		return err
	}
	for _, database := range databases {
		tenantID := mstore.TenantFromDbName(database, DbName)
		if err := db.migrateTenant(ctx, *target, tenantID); err != nil {
			return errors.Wrapf(err, "failed to migrate %s", database)
		}
	}
	return nil
}
