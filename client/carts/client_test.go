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

package carts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/requestid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	apihttp "github.com/mendersoftware/carts/api/http"
	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/repository"
	"github.com/mendersoftware/carts/store"
	"github.com/mendersoftware/carts/store/memory"
)

// newCartsServer serves the carts API over an in-memory store.
func newCartsServer(t *testing.T) *httptest.Server {
	repo := repository.NewCartRepository(memory.NewDataStoreMemory(), store.CartFields())
	app, err := apihttp.NewCartsApiHandlers(repo).GetApp()
	assert.NoError(t, err)

	api := rest.NewApi()
	api.Use(&requestid.RequestIdMiddleware{})
	api.SetApp(app)

	srv := httptest.NewServer(api.MakeHandler())
	t.Cleanup(srv.Close)
	return srv
}

func TestCartRepositoryFunctional(t *testing.T) {
	t.Parallel()

	srv := newCartsServer(t)
	client := NewClient(srv.URL)
	ctx := context.Background()

	assert.NoError(t, client.CheckHealth(ctx))

	today := time.Now().UTC().Truncate(time.Second)
	added, err := client.AddCart(ctx, &model.Cart{
		ReservedOrderID: "test01",
		IsActive:        true,
		Subtotal:        20,
		GrandTotal:      25,
		CreatedAt:       today,
	})
	assert.NoError(t, err)
	if !assert.NotNil(t, added) {
		return
	}
	assert.NotZero(t, added.ID)
	assert.NotEmpty(t, added.MaskedID)
	assert.Equal(t, today, added.CreatedAt)

	_, err = client.AddCart(ctx, &model.Cart{
		ReservedOrderID: "test02",
		Subtotal:        5,
		GrandTotal:      5,
		CreatedAt:       today,
	})
	assert.NoError(t, err)

	t.Run("get cart", func(t *testing.T) {
		cart, err := client.GetCart(ctx, added.ID)
		assert.NoError(t, err)
		assert.Equal(t, added, cart)
	})

	t.Run("search by totals and creation date", func(t *testing.T) {
		day := 24 * time.Hour
		sc := model.NewSearchCriteriaBuilder().
			AddFilters(
				model.NewFilterBuilder().
					Field(model.CartFieldGrandTotal).
					ConditionType(model.CondGteq).
					Value(15).
					Create(),
				model.NewFilterBuilder().
					Field(model.CartFieldSubtotal).
					ConditionType(model.CondEq).
					Value(20).
					Create(),
			).
			AddFilters(model.NewFilterBuilder().
				Field(model.CartFieldCreatedAt).
				ConditionType(model.CondGteq).
				Value(today.Add(-day).Format("2006-01-02")).
				Create()).
			AddFilters(model.NewFilterBuilder().
				Field(model.CartFieldCreatedAt).
				ConditionType(model.CondLteq).
				Value(today.Add(day).Format("2006-01-02")).
				Create()).
			SortOrders(model.NewSortOrderBuilder().
				Field(model.CartFieldSubtotal).
				Direction(model.SortAsc).
				Create()).
			Create()

		res, err := client.SearchCarts(ctx, sc)
		assert.NoError(t, err)
		if assert.NotNil(t, res) {
			assert.Equal(t, 1, res.TotalCount)
			assert.Equal(t, []model.Cart{*added}, res.Items)
			assert.Len(t, res.SearchCriteria.FilterGroups, 3)
		}
	})

	t.Run("search by invalid field", func(t *testing.T) {
		sc := model.NewSearchCriteriaBuilder().
			AddFilters(model.NewFilterBuilder().
				Field("invalid_field").
				ConditionType(model.CondEq).
				Value(0).
				Create()).
			Create()

		res, err := client.SearchCarts(ctx, sc)
		assert.Nil(t, res)
		assert.EqualError(t, err, "carts: Invalid search field: invalid_field")

		var cerr *Error
		if assert.True(t, errors.As(err, &cerr)) {
			assert.Equal(t, http.StatusBadRequest, cerr.StatusCode)
		}
	})

	t.Run("get missing cart", func(t *testing.T) {
		cart, err := client.GetCart(ctx, 9999)
		assert.Nil(t, cart)
		assert.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "No such entity with cartId = 9999")
	})
}

func TestClientTenantCarts(t *testing.T) {
	t.Parallel()

	srv := newCartsServer(t)
	client := NewClient(srv.URL + "/")
	ctx := context.Background()
	tenantCtx := identity.WithContext(ctx, &identity.Identity{Tenant: "acme"})

	assert.NoError(t, client.CreateTenant(ctx, "acme"))
	err := client.CreateTenant(ctx, "")
	var cerr *Error
	if assert.True(t, errors.As(err, &cerr)) {
		assert.Equal(t, http.StatusBadRequest, cerr.StatusCode)
	}

	cart, err := client.AddCart(tenantCtx, &model.Cart{ID: 7})
	assert.NoError(t, err)
	assert.Equal(t, model.CartID(7), cart.ID)

	_, err = client.AddCart(tenantCtx, &model.Cart{ID: 7})
	if assert.True(t, errors.As(err, &cerr)) {
		assert.Equal(t, http.StatusConflict, cerr.StatusCode)
	}

	cart, err = client.GetCart(tenantCtx, 7)
	assert.NoError(t, err)
	if assert.NotNil(t, cart) {
		assert.Equal(t, model.CartID(7), cart.ID)
	}
	res, err := client.SearchCarts(tenantCtx, model.NewSearchCriteriaBuilder().Create())
	assert.NoError(t, err)
	if assert.NotNil(t, res) {
		assert.Equal(t, 1, res.TotalCount)
	}

	// carts of other tenants are invisible
	_, err = client.GetCart(ctx, 7)
	assert.True(t, IsNotFound(err))
	res, err = client.SearchCarts(ctx, model.NewSearchCriteriaBuilder().Create())
	assert.NoError(t, err)
	if assert.NotNil(t, res) {
		assert.Equal(t, 0, res.TotalCount)
	}
	assert.True(t, IsNotFound(client.DeleteCart(ctx, 7)))

	assert.NoError(t, client.DeleteCart(tenantCtx, 7))
	assert.True(t, IsNotFound(client.DeleteCart(tenantCtx, 7)))
}

func TestClientRequestID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "reqid1", r.Header.Get(requestid.RequestIdHeader))
		assert.Equal(t, "/api/internal/v1/carts/3", r.URL.Path)
		assert.Equal(t, "tenant1", r.URL.Query().Get("tenant_id"))
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx := requestid.WithContext(context.Background(), "reqid1")
	ctx = identity.WithContext(ctx, &identity.Identity{Tenant: "tenant1"})
	assert.NoError(t, NewClient(srv.URL).DeleteCart(ctx, 3))
}

func TestClientErrors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		code int
		body string

		err string
	}{
		"api error": {
			code: http.StatusServiceUnavailable,
			body: `{"error": "error reaching cart store", "request_id": "r"}`,
			err:  "carts: error reaching cart store",
		},
		"not json": {
			code: http.StatusBadGateway,
			body: "<html>bad gateway</html>",
			err:  "carts: unexpected HTTP status from carts service: 502 Bad Gateway",
		},
		"empty error": {
			code: http.StatusInternalServerError,
			body: "{}",
			err:  "carts: unexpected HTTP status from carts service: 500 Internal Server Error",
		},
		"unexpected success": {
			code: http.StatusOK,
			err:  "carts: unexpected HTTP status from carts service: 200 OK",
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL).CheckHealth(context.Background())
			assert.EqualError(t, err, tc.err)
		})
	}
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).GetCart(context.Background(), 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "carts: GET /V1/carts/1 failed")
	assert.False(t, IsNotFound(err))
}

func TestClientBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "three"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, ClientOptions{Client: &http.Client{Timeout: time.Second}})
	_, err := client.GetCart(context.Background(), 3)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "carts: failed to decode response")
}
