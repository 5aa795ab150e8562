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

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/query"
	"github.com/mendersoftware/carts/store"
	"github.com/mendersoftware/carts/store/mongo"
)

// this cart repository service interface
//
//go:generate ../utils/mockgen.sh
type CartRepository interface {
	HealthCheck(ctx context.Context) error
	GetCart(ctx context.Context, id model.CartID) (*model.Cart, error)
	SearchCarts(ctx context.Context, sc model.SearchCriteria) (*model.CartSearchResult, error)
	AddCart(ctx context.Context, cart *model.Cart) error
	DeleteCart(ctx context.Context, id model.CartID) error
	CreateTenant(ctx context.Context, tenant model.NewTenant) error
}

type repository struct {
	db     store.DataStore
	fields query.Fields[model.Cart]
	clock  func() time.Time
}

func NewCartRepository(d store.DataStore, fields query.Fields[model.Cart]) CartRepository {
	return &repository{
		db:     d,
		fields: fields,
		clock:  time.Now,
	}
}

func (r *repository) HealthCheck(ctx context.Context) error {
	err := r.db.Ping(ctx)
	if err != nil {
		return errors.Wrap(err, "error reaching cart store")
	}
	return nil
}

func (r *repository) GetCart(ctx context.Context, id model.CartID) (*model.Cart, error) {
	cart, err := r.db.GetCart(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch cart")
	}
	if cart == nil {
		return nil, newCartNotFound(id)
	}
	return cart, nil
}

func (r *repository) SearchCarts(
	ctx context.Context,
	sc model.SearchCriteria,
) (*model.CartSearchResult, error) {
	if err := sc.Validate(); err != nil {
		return nil, &InvalidSearchError{err: err}
	}

	carts, err := r.db.GetCarts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch carts")
	}

	items, total, err := query.Search(carts, sc, r.fields)
	if err != nil {
		var fieldErr *query.InvalidFieldError
		if errors.As(err, &fieldErr) {
			return nil, &InvalidSearchError{Field: fieldErr.Field, err: err}
		}
		return nil, errors.Wrap(err, "failed to search carts")
	}

	return &model.CartSearchResult{
		Items:          items,
		SearchCriteria: sc,
		TotalCount:     total,
	}, nil
}

func (r *repository) AddCart(ctx context.Context, cart *model.Cart) error {
	if cart == nil {
		return errors.New("no cart given")
	}
	if err := cart.Validate(); err != nil {
		return errors.Wrap(err, "invalid cart")
	}

	now := r.clock().UTC()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	if cart.UpdatedAt.IsZero() {
		cart.UpdatedAt = cart.CreatedAt
	}
	if cart.MaskedID == "" {
		cart.MaskedID = uuid.NewString()
	}

	err := r.db.AddCart(ctx, cart)
	if err != nil {
		return errors.Wrap(err, "failed to add cart")
	}
	return nil
}

func (r *repository) DeleteCart(ctx context.Context, id model.CartID) error {
	err := r.db.DeleteCart(ctx, id)
	if err == store.ErrCartNotFound {
		return newCartNotFound(id)
	} else if err != nil {
		return errors.Wrap(err, "failed to delete cart")
	}
	return nil
}

func (r *repository) CreateTenant(ctx context.Context, tenant model.NewTenant) error {
	if err := r.db.WithAutomigrate().
		MigrateTenant(ctx, mongo.DbVersion, tenant.ID); err != nil {
		return errors.Wrapf(err, "failed to apply migrations for tenant %v", tenant.ID)
	}
	return nil
}
