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

// Package memory is a process-local cart store for development setups and
// tests. Carts are partitioned per tenant like the database-per-tenant
// layout of the mongo store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"

	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/store"
)

type tenantCarts struct {
	carts  map[model.CartID]model.Cart
	lastID model.CartID
}

type DataStoreMemory struct {
	mu      sync.RWMutex
	tenants map[string]*tenantCarts
}

func NewDataStoreMemory() *DataStoreMemory {
	return &DataStoreMemory{
		tenants: make(map[string]*tenantCarts),
	}
}

func tenantFromContext(ctx context.Context) string {
	if id := identity.FromContext(ctx); id != nil {
		return id.Tenant
	}
	return ""
}

// tenant returns the partition of the calling tenant; callers hold mu.
func (db *DataStoreMemory) tenant(ctx context.Context, create bool) *tenantCarts {
	name := tenantFromContext(ctx)
	t, ok := db.tenants[name]
	if !ok && create {
		t = &tenantCarts{carts: make(map[model.CartID]model.Cart)}
		db.tenants[name] = t
	}
	return t
}

func (db *DataStoreMemory) Ping(ctx context.Context) error {
	return nil
}

func (db *DataStoreMemory) GetCart(ctx context.Context, id model.CartID) (*model.Cart, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t := db.tenant(ctx, false)
	if t == nil {
		return nil, nil
	}
	cart, ok := t.carts[id]
	if !ok {
		return nil, nil
	}
	return &cart, nil
}

func (db *DataStoreMemory) GetCarts(ctx context.Context) ([]model.Cart, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	res := []model.Cart{}
	t := db.tenant(ctx, false)
	if t == nil {
		return res, nil
	}
	for _, cart := range t.carts {
		res = append(res, cart)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (db *DataStoreMemory) AddCart(ctx context.Context, cart *model.Cart) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	t := db.tenant(ctx, true)
	if cart.ID == 0 {
		cart.ID = t.lastID + 1
	} else if _, exists := t.carts[cart.ID]; exists {
		return store.ErrCartExists
	}
	if cart.ID > t.lastID {
		t.lastID = cart.ID
	}
	t.carts[cart.ID] = *cart
	return nil
}

func (db *DataStoreMemory) DeleteCart(ctx context.Context, id model.CartID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	t := db.tenant(ctx, false)
	if t == nil {
		return store.ErrCartNotFound
	}
	if _, ok := t.carts[id]; !ok {
		return store.ErrCartNotFound
	}
	delete(t.carts, id)
	return nil
}

// MigrateTenant has no schema to migrate; it only provisions the tenant
// partition.
func (db *DataStoreMemory) MigrateTenant(ctx context.Context, version string, tenantId string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	log.FromContext(ctx).Infof("provisioning in-memory carts for tenant %q", tenantId)
	if _, ok := db.tenants[tenantId]; !ok {
		db.tenants[tenantId] = &tenantCarts{carts: make(map[model.CartID]model.Cart)}
	}
	return nil
}

func (db *DataStoreMemory) Migrate(ctx context.Context, version string) error {
	return db.MigrateTenant(ctx, version, "")
}

func (db *DataStoreMemory) WithAutomigrate() store.DataStore {
	return db
}
