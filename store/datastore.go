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

package store

import (
	"context"
	"errors"

	"github.com/mendersoftware/carts/model"
)

var (
	// cart not found
	ErrCartNotFound = errors.New("cart not found")

	// ErrCartExists is returned when adding a cart whose ID is taken.
	ErrCartExists = errors.New("cart already exists")
)

//go:generate ../utils/mockgen.sh
type DataStore interface {
	Ping(ctx context.Context) error

	// find a cart with given `id`, returns the cart or nil,
	// if cart was not found, error and returned cart are nil
	GetCart(ctx context.Context, id model.CartID) (*model.Cart, error)

	// GetCarts returns every cart in the store ordered by ID.
	GetCarts(ctx context.Context) ([]model.Cart, error)

	// insert cart into data store; a zero ID is replaced by the next
	// free one, which is written back to cart.ID
	AddCart(ctx context.Context, cart *model.Cart) error

	// DeleteCart removes the cart, returns ErrCartNotFound if there is
	// none with the given ID.
	DeleteCart(ctx context.Context, id model.CartID) error

	MigrateTenant(ctx context.Context, version string, tenantId string) error

	Migrate(ctx context.Context, version string) error

	WithAutomigrate() DataStore
}
