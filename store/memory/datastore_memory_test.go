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

package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/stretchr/testify/assert"

	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/store"
)

func TestMemoryAddGetCart(t *testing.T) {
	ctx := context.Background()
	db := NewDataStoreMemory()

	cart, err := db.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, cart)

	first := &model.Cart{ReservedOrderID: "test01", Subtotal: 20}
	assert.NoError(t, db.AddCart(ctx, first))
	assert.Equal(t, model.CartID(1), first.ID)

	explicit := &model.Cart{ID: 10}
	assert.NoError(t, db.AddCart(ctx, explicit))

	next := &model.Cart{}
	assert.NoError(t, db.AddCart(ctx, next))
	assert.Equal(t, model.CartID(11), next.ID)

	err = db.AddCart(ctx, &model.Cart{ID: 10})
	assert.Equal(t, store.ErrCartExists, err)

	cart, err = db.GetCart(ctx, first.ID)
	assert.NoError(t, err)
	assert.Equal(t, first, cart)

	// returned carts are copies
	cart.Subtotal = 99
	again, _ := db.GetCart(ctx, first.ID)
	assert.Equal(t, 20.0, again.Subtotal)
}

func TestMemoryGetCartsOrderedByID(t *testing.T) {
	ctx := context.Background()
	db := NewDataStoreMemory()

	carts, err := db.GetCarts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []model.Cart{}, carts)

	for _, id := range []model.CartID{5, 2, 9, 1} {
		assert.NoError(t, db.AddCart(ctx, &model.Cart{ID: id}))
	}
	carts, err = db.GetCarts(ctx)
	assert.NoError(t, err)
	var ids []model.CartID
	for _, c := range carts {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []model.CartID{1, 2, 5, 9}, ids)
}

func TestMemoryDeleteCart(t *testing.T) {
	ctx := context.Background()
	db := NewDataStoreMemory()

	assert.Equal(t, store.ErrCartNotFound, db.DeleteCart(ctx, 1))

	cart := &model.Cart{}
	assert.NoError(t, db.AddCart(ctx, cart))
	assert.NoError(t, db.DeleteCart(ctx, cart.ID))
	assert.Equal(t, store.ErrCartNotFound, db.DeleteCart(ctx, cart.ID))

	got, err := db.GetCart(ctx, cart.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryTenants(t *testing.T) {
	db := NewDataStoreMemory()
	ctxFoo := identity.WithContext(context.Background(), &identity.Identity{Tenant: "foo"})
	ctxBar := identity.WithContext(context.Background(), &identity.Identity{Tenant: "bar"})

	assert.NoError(t, db.MigrateTenant(context.Background(), "1.0.0", "bar"))

	cart := &model.Cart{}
	assert.NoError(t, db.AddCart(ctxFoo, cart))

	got, err := db.GetCart(ctxBar, cart.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	carts, err := db.GetCarts(ctxBar)
	assert.NoError(t, err)
	assert.Empty(t, carts)

	carts, err = db.GetCarts(ctxFoo)
	assert.NoError(t, err)
	assert.Len(t, carts, 1)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	db := NewDataStoreMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, db.AddCart(ctx, &model.Cart{}))
		}()
		go func() {
			defer wg.Done()
			_, err := db.GetCarts(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	carts, err := db.GetCarts(ctx)
	assert.NoError(t, err)
	assert.Len(t, carts, 20)
	assert.Equal(t, model.CartID(20), carts[19].ID)
}
