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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/store"
	"github.com/mendersoftware/carts/store/memory"
	mstore "github.com/mendersoftware/carts/store/mocks"
	"github.com/mendersoftware/carts/store/mongo"
)

func repoForTest(d store.DataStore) *repository {
	r := NewCartRepository(d, store.CartFields()).(*repository)
	r.clock = func() time.Time {
		return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	}
	return r
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		dbErr  error
		outErr string
	}{
		"ok": {},
		"error, store unreachable": {
			dbErr:  errors.New("connection refused"),
			outErr: "error reaching cart store: connection refused",
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			ctx := context.TODO()
			db := mstore.NewDataStore(t)
			db.On("Ping", ctx).Return(tc.dbErr)

			err := repoForTest(db).HealthCheck(ctx)
			if tc.outErr != "" {
				assert.EqualError(t, err, tc.outErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetCart(t *testing.T) {
	t.Parallel()

	cart := &model.Cart{ID: 3, ReservedOrderID: "test01", Subtotal: 20}
	testCases := map[string]struct {
		id      model.CartID
		dbCart  *model.Cart
		dbErr   error
		outCart *model.Cart
		outErr  string
	}{
		"found": {
			id:      3,
			dbCart:  cart,
			outCart: cart,
		},
		"not found": {
			id:     9999,
			outErr: "No such entity with cartId = 9999",
		},
		"store error": {
			id:     3,
			dbErr:  errors.New("db connection failed"),
			outErr: "failed to fetch cart: db connection failed",
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			ctx := context.TODO()
			db := mstore.NewDataStore(t)
			db.On("GetCart", ctx, tc.id).Return(tc.dbCart, tc.dbErr)

			out, err := repoForTest(db).GetCart(ctx, tc.id)
			if tc.outErr != "" {
				assert.EqualError(t, err, tc.outErr)
				assert.Nil(t, out)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.outCart, out)
			}
		})
	}
}

func TestGetCartNotFoundError(t *testing.T) {
	db := memory.NewDataStoreMemory()
	_, err := repoForTest(db).GetCart(context.Background(), 9999)

	var notFound *NotFoundError
	if assert.ErrorAs(t, err, &notFound) {
		assert.Equal(t, model.CartEntityName, notFound.Entity)
		assert.Equal(t, "cartId", notFound.Field)
		assert.Equal(t, "9999", notFound.Value)
	}
}

func TestGetCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := repoForTest(memory.NewDataStoreMemory())

	cart := &model.Cart{ReservedOrderID: "test01", Subtotal: 20, GrandTotal: 25}
	assert.NoError(t, r.AddCart(ctx, cart))

	out, err := r.GetCart(ctx, cart.ID)
	assert.NoError(t, err)
	assert.Equal(t, cart, out)
}

// seeded returns a repository over a memory store holding a single cart
// created now, with subtotal 20 and grand total 25.
func seeded(t *testing.T) (*repository, *model.Cart) {
	r := repoForTest(memory.NewDataStoreMemory())
	cart := &model.Cart{
		ReservedOrderID: "test01",
		Subtotal:        20,
		GrandTotal:      25,
	}
	assert.NoError(t, r.AddCart(context.Background(), cart))
	return r, cart
}

func TestSearchCarts(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour).Format("2006-01-02 15:04:05")
	tomorrow := now.Add(24 * time.Hour).Format("2006-01-02 15:04:05")

	filter := func(field string, cond model.ConditionType, v interface{}) model.Filter {
		return model.NewFilterBuilder().
			Field(field).ConditionType(cond).Value(v).Create()
	}
	byCreatedAt := model.NewSearchCriteriaBuilder().
		AddFilters(filter(model.CartFieldCreatedAt, model.CondGteq, yesterday)).
		AddFilters(filter(model.CartFieldCreatedAt, model.CondLteq, tomorrow))

	testCases := map[string]struct {
		sc         model.SearchCriteria
		outCount   int
		outItems   int
		outErr     string
		outInvalid bool
	}{
		"and of or groups": {
			sc: byCreatedAt.
				AddFilters(
					filter(model.CartFieldGrandTotal, model.CondGteq, 15),
					filter(model.CartFieldSubtotal, model.CondEq, 20),
				).
				SortOrders(model.NewSortOrderBuilder().
					Field(model.CartFieldSubtotal).Direction(model.SortAsc).Create()).
				Create(),
			outCount: 1,
			outItems: 1,
		},
		"no group matches": {
			sc: byCreatedAt.
				AddFilters(filter(model.CartFieldSubtotal, model.CondGt, 20)).
				Create(),
		},
		"empty group matches nothing": {
			sc: model.NewSearchCriteriaBuilder().AddFilters().Create(),
		},
		"no groups match everything": {
			sc:       model.NewSearchCriteriaBuilder().Create(),
			outCount: 1,
			outItems: 1,
		},
		"page past the end": {
			sc: model.NewSearchCriteriaBuilder().
				PageSize(1).CurrentPage(2).Create(),
			outCount: 1,
		},
		"invalid field": {
			sc: model.NewSearchCriteriaBuilder().
				AddFilters(filter("invalid_field", model.CondEq, 0)).
				Create(),
			outErr:     "Invalid search field: invalid_field",
			outInvalid: true,
		},
		"invalid sort field": {
			sc: model.NewSearchCriteriaBuilder().
				SortOrders(model.SortOrder{Field: "totals"}).
				Create(),
			outErr:     "Invalid search field: totals",
			outInvalid: true,
		},
		"unknown condition type": {
			sc: model.NewSearchCriteriaBuilder().
				AddFilters(filter("subtotal", "bogus", 20)).
				Create(),
			outErr: "Invalid search criteria: filter_groups: (0: (filters: " +
				"(0: (condition_type: must be a valid value.).).).).",
			outInvalid: true,
		},
		"invalid page": {
			sc: model.NewSearchCriteriaBuilder().
				CurrentPage(0).Create(),
			outErr:     "Invalid search criteria: current_page: must be no less than 1.",
			outInvalid: true,
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			r, cart := seeded(t)

			res, err := r.SearchCarts(context.Background(), tc.sc)
			if tc.outErr != "" {
				assert.EqualError(t, err, tc.outErr)
				assert.Nil(t, res)
				var invalid *InvalidSearchError
				assert.Equal(t, tc.outInvalid, errors.As(err, &invalid))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.outCount, res.TotalCount)
			assert.Len(t, res.Items, tc.outItems)
			if tc.outItems > 0 {
				assert.Equal(t, *cart, res.Items[0])
			}
			assert.Equal(t, tc.sc, res.SearchCriteria)
		})
	}
}

func TestSearchCartsStoreError(t *testing.T) {
	ctx := context.TODO()
	db := mstore.NewDataStore(t)
	db.On("GetCarts", ctx).Return(nil, errors.New("db connection failed"))

	res, err := repoForTest(db).SearchCarts(ctx, model.SearchCriteria{})
	assert.EqualError(t, err, "failed to fetch carts: db connection failed")
	assert.Nil(t, res)
}

func TestAddCart(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	testCases := map[string]struct {
		cart   *model.Cart
		dbErr  error
		outErr string
		check  func(t *testing.T, c *model.Cart)
	}{
		"ok, defaults filled in": {
			cart: &model.Cart{ReservedOrderID: "test01"},
			check: func(t *testing.T, c *model.Cart) {
				now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
				assert.Equal(t, now, c.CreatedAt)
				assert.Equal(t, now, c.UpdatedAt)
				assert.Len(t, c.MaskedID, 36)
			},
		},
		"ok, timestamps kept": {
			cart: &model.Cart{
				CreatedAt: created,
				MaskedID:  "9b0f2a4c-8bd4-4c5e-9d3b-0d8a6e9f1c2a",
			},
			check: func(t *testing.T, c *model.Cart) {
				assert.Equal(t, created, c.CreatedAt)
				assert.Equal(t, created, c.UpdatedAt)
				assert.Equal(t, "9b0f2a4c-8bd4-4c5e-9d3b-0d8a6e9f1c2a", c.MaskedID)
			},
		},
		"error, no cart": {
			outErr: "no cart given",
		},
		"error, invalid cart": {
			cart:   &model.Cart{CustomerEmail: "not-an-email"},
			outErr: "invalid cart: customer_email: must be a valid email address.",
		},
		"error, store": {
			cart:   &model.Cart{},
			dbErr:  store.ErrCartExists,
			outErr: "failed to add cart: cart already exists",
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			ctx := context.TODO()
			db := mstore.NewDataStore(t)
			if tc.cart != nil && (tc.outErr == "" || tc.dbErr != nil) {
				db.On("AddCart", ctx, mock.AnythingOfType("*model.Cart")).
					Return(tc.dbErr)
			}

			err := repoForTest(db).AddCart(ctx, tc.cart)
			if tc.outErr != "" {
				assert.EqualError(t, err, tc.outErr)
				return
			}
			assert.NoError(t, err)
			tc.check(t, tc.cart)
		})
	}
}

func TestDeleteCart(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		dbErr  error
		outErr string
	}{
		"ok": {},
		"not found": {
			dbErr:  store.ErrCartNotFound,
			outErr: "No such entity with cartId = 7",
		},
		"store error": {
			dbErr:  errors.New("db connection failed"),
			outErr: "failed to delete cart: db connection failed",
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			ctx := context.TODO()
			db := mstore.NewDataStore(t)
			db.On("DeleteCart", ctx, model.CartID(7)).Return(tc.dbErr)

			err := repoForTest(db).DeleteCart(ctx, 7)
			if tc.outErr != "" {
				assert.EqualError(t, err, tc.outErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateTenant(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		tenant model.NewTenant
		dbErr  error
		outErr string
	}{
		"ok": {
			tenant: model.NewTenant{ID: "foobar"},
		},
		"error": {
			tenant: model.NewTenant{ID: "foobar"},
			dbErr:  errors.New("cannot apply migrations"),
			outErr: "failed to apply migrations for tenant foobar: cannot apply migrations",
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			ctx := context.TODO()
			db := mstore.NewDataStore(t)
			db.On("WithAutomigrate").Return(db)
			db.On("MigrateTenant", ctx, mongo.DbVersion, tc.tenant.ID).
				Return(tc.dbErr)

			err := repoForTest(db).CreateTenant(ctx, tc.tenant)
			if tc.outErr != "" {
				assert.EqualError(t, err, tc.outErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
