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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/requestid"
	"github.com/mendersoftware/go-lib-micro/rest_utils"
	"github.com/pkg/errors"

	apihttp "github.com/mendersoftware/carts/api/http"
	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/utils"
)

const (
	CartsURI = "/V1/carts"
	CartURI  = "/V1/carts/:cartId"

	HealthURI  = "/api/internal/v1/health"
	AddCartURI = "/api/internal/v1/carts"
	DelCartURI = "/api/internal/v1/carts/:cartId"
	TenantsURI = "/api/internal/v1/tenants"
)

const (
	defaultTimeout = time.Duration(5) * time.Second
)

// Error is a non-successful response of the carts service.
type Error struct {
	StatusCode int
	rest_utils.ApiError
}

func (e *Error) Error() string {
	return "carts: " + e.Err
}

// IsNotFound tells if err was caused by a 404 response.
func IsNotFound(err error) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.StatusCode == http.StatusNotFound
}

// Client is the carts service client
type Client interface {
	CheckHealth(ctx context.Context) error
	GetCart(ctx context.Context, id model.CartID) (*model.Cart, error)
	SearchCarts(ctx context.Context, sc model.SearchCriteria) (*model.CartSearchResult, error)
	AddCart(ctx context.Context, cart *model.Cart) (*model.Cart, error)
	DeleteCart(ctx context.Context, id model.CartID) error
	CreateTenant(ctx context.Context, tenantID string) error
}

type ClientOptions struct {
	Client *http.Client
}

// NewClient returns a new carts client
func NewClient(url string, opts ...ClientOptions) Client {
	var clientOpts = ClientOptions{
		Client: &http.Client{},
	}
	for _, opt := range opts {
		if opt.Client != nil {
			clientOpts.Client = opt.Client
		}
	}

	return &client{
		url:    strings.TrimSuffix(url, "/"),
		client: *clientOpts.Client,
	}
}

type client struct {
	url    string
	client http.Client
}

func cartPath(template string, id model.CartID) string {
	return strings.Replace(template, ":cartId", id.String(), 1)
}

// tenantQuery addresses requests to the tenant in ctx.
func tenantQuery(ctx context.Context) url.Values {
	q := url.Values{}
	if id := identity.FromContext(ctx); id != nil && id.Tenant != "" {
		q.Set("tenant_id", id.Tenant)
	}
	return q
}

func (c *client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body interface{},
	expected int,
	out interface{},
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "carts: failed to serialize request")
		}
		payload = bytes.NewReader(b)
	}

	uri := utils.JoinURL(c.url, path)
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, uri, payload)
	if err != nil {
		return errors.Wrap(err, "carts: error preparing HTTP request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		req.Header.Set(requestid.RequestIdHeader, reqID)
	}

	rsp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "carts: %s %s failed", method, path)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != expected {
		cerr := &Error{StatusCode: rsp.StatusCode}
		if err := json.NewDecoder(rsp.Body).Decode(&cerr.ApiError); err != nil ||
			cerr.Err == "" {
			return errors.Errorf(
				"carts: unexpected HTTP status from carts service: %s",
				rsp.Status,
			)
		}
		return cerr
	}
	if out != nil {
		if err := json.NewDecoder(rsp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "carts: failed to decode response")
		}
	}
	return nil
}

func (c *client) CheckHealth(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, HealthURI, nil, nil, http.StatusNoContent, nil)
}

func (c *client) GetCart(ctx context.Context, id model.CartID) (*model.Cart, error) {
	var dto apihttp.CartDto
	err := c.do(ctx, http.MethodGet, cartPath(CartURI, id), tenantQuery(ctx),
		nil, http.StatusOK, &dto)
	if err != nil {
		return nil, err
	}
	return dto.Cart(), nil
}

func (c *client) SearchCarts(
	ctx context.Context,
	sc model.SearchCriteria,
) (*model.CartSearchResult, error) {
	var dto apihttp.SearchResultDto
	err := c.do(ctx, http.MethodPut, CartsURI, tenantQuery(ctx),
		apihttp.SearchRequest{SearchCriteria: sc},
		http.StatusOK, &dto)
	if err != nil {
		return nil, err
	}

	res := &model.CartSearchResult{
		Items:          make([]model.Cart, 0, len(dto.Items)),
		SearchCriteria: dto.SearchCriteria,
		TotalCount:     dto.TotalCount,
	}
	for i := range dto.Items {
		res.Items = append(res.Items, *dto.Items[i].Cart())
	}
	return res, nil
}

func (c *client) AddCart(ctx context.Context, cart *model.Cart) (*model.Cart, error) {
	var dto apihttp.CartDto
	err := c.do(ctx, http.MethodPost, AddCartURI, tenantQuery(ctx),
		apihttp.NewCartDto(cart), http.StatusCreated, &dto)
	if err != nil {
		return nil, err
	}
	return dto.Cart(), nil
}

func (c *client) DeleteCart(ctx context.Context, id model.CartID) error {
	return c.do(ctx, http.MethodDelete, cartPath(DelCartURI, id), tenantQuery(ctx),
		nil, http.StatusNoContent, nil)
}

func (c *client) CreateTenant(ctx context.Context, tenantID string) error {
	return c.do(ctx, http.MethodPost, TenantsURI, nil,
		model.NewTenant{ID: tenantID}, http.StatusCreated, nil)
}
