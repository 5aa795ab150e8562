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

package http

import (
	"net/http"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"
	u "github.com/mendersoftware/go-lib-micro/rest_utils"
	"github.com/pkg/errors"

	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/repository"
	"github.com/mendersoftware/carts/store"
	"github.com/mendersoftware/carts/utils"
)

const (
	uriCarts = "/V1/carts"
	uriCart  = "/V1/carts/:cartId"

	uriInternalHealth  = "/api/internal/v1/health"
	uriInternalCarts   = "/api/internal/v1/carts"
	uriInternalCart    = "/api/internal/v1/carts/:cartId"
	uriInternalTenants = "/api/internal/v1/tenants"

	queryParamTenantID = "tenant_id"
)

type cartsHandlers struct {
	carts repository.CartRepository
}

// return an ApiHandler for the cart repository
func NewCartsApiHandlers(c repository.CartRepository) ApiHandler {
	return &cartsHandlers{
		carts: c,
	}
}

func (h *cartsHandlers) GetApp() (rest.App, error) {
	routes := []*rest.Route{
		rest.Get(uriCart, h.GetCartHandler),
		rest.Put(uriCarts, h.SearchCartsHandler),
		rest.Get(uriCarts, h.SearchCartsQueryHandler),

		rest.Get(uriInternalHealth, h.HealthCheckHandler),
		rest.Post(uriInternalCarts, h.AddCartHandler),
		rest.Delete(uriInternalCart, h.DeleteCartHandler),
		rest.Post(uriInternalTenants, h.CreateTenantHandler),
	}

	app, err := rest.MakeRouter(
		// augment routes with OPTIONS handler
		AutogenOptionsRoutes(routes, AllowHeaderOptionsGenerator)...,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create router")
	}

	return app, nil
}

// restErrWithLog picks the response status from the error kind.
func restErrWithLog(w rest.ResponseWriter, r *rest.Request, l *log.Logger, err error) {
	var (
		notFound *repository.NotFoundError
		invalid  *repository.InvalidSearchError
	)
	switch {
	case errors.As(err, &notFound):
		u.RestErrWithLog(w, r, l, err, http.StatusNotFound)
	case errors.As(err, &invalid):
		u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
	default:
		u.RestErrWithLogInternal(w, r, l, err)
	}
}

func parseCartID(r *rest.Request) (model.CartID, error) {
	id, err := model.ParseCartID(r.PathParam("cartId"))
	if err != nil {
		return 0, errors.New("invalid cart id")
	}
	return id, nil
}

func (h *cartsHandlers) GetCartHandler(w rest.ResponseWriter, r *rest.Request) {
	ctx := r.Context()

	l := log.FromContext(ctx)

	if !scopeToCaller(w, r, l) {
		return
	}

	id, err := parseCartID(r)
	if err != nil {
		u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), id)
	if err != nil {
		restErrWithLog(w, r, l, err)
		return
	}

	_ = w.WriteJson(NewCartDto(cart))
}

func (h *cartsHandlers) SearchCartsHandler(w rest.ResponseWriter, r *rest.Request) {
	ctx := r.Context()

	l := log.FromContext(ctx)

	if !scopeToCaller(w, r, l) {
		return
	}

	var req SearchRequest
	if err := r.DecodeJsonPayload(&req); err != nil {
		u.RestErrWithLog(
			w, r, l, errors.Wrap(err, "failed to decode search criteria"),
			http.StatusBadRequest)
		return
	}

	h.search(w, r, req.SearchCriteria)
}

func (h *cartsHandlers) SearchCartsQueryHandler(w rest.ResponseWriter, r *rest.Request) {
	l := log.FromContext(r.Context())

	if !scopeToCaller(w, r, l) {
		return
	}

	sc, err := parseSearchCriteria(r)
	if err != nil {
		u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
		return
	}

	h.search(w, r, sc)
}

func (h *cartsHandlers) search(w rest.ResponseWriter, r *rest.Request, sc model.SearchCriteria) {
	ctx := r.Context()

	l := log.FromContext(ctx)

	res, err := h.carts.SearchCarts(ctx, sc)
	if err != nil {
		restErrWithLog(w, r, l, err)
		return
	}

	_ = w.WriteJson(NewSearchResultDto(res))
}

func (h *cartsHandlers) HealthCheckHandler(w rest.ResponseWriter, r *rest.Request) {
	ctx := r.Context()

	l := log.FromContext(ctx)

	if err := h.carts.HealthCheck(ctx); err != nil {
		u.RestErrWithLog(w, r, l, err, http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// withTenant scopes an internal request to the tenant named by the
// tenant_id query parameter, if any.
func withTenant(r *rest.Request) error {
	tenantID, err := utils.ParseQueryParmStr(r, queryParamTenantID, false, nil)
	if err != nil {
		return err
	}
	if tenantID != "" {
		ctx := identity.WithContext(r.Context(), &identity.Identity{
			Tenant: tenantID,
		})
		r.Request = r.Request.WithContext(ctx)
	}
	return nil
}

// scopeToCaller scopes a public request to the caller's tenant: the tenant
// claim of the bearer token, or the tenant_id query parameter when there
// is no token. It responds with an error and returns false otherwise.
func scopeToCaller(w rest.ResponseWriter, r *rest.Request, l *log.Logger) bool {
	if r.Header.Get("Authorization") == "" {
		if err := withTenant(r); err != nil {
			u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
			return false
		}
		return true
	}

	idata, err := utils.IdentityFromRequest(r.Request)
	if err != nil {
		u.RestErrWithLogMsg(w, r, l, err, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if idata.Tenant != "" {
		r.Request = r.Request.WithContext(
			identity.WithContext(r.Context(), &idata))
	}
	return true
}

func parseCart(r *rest.Request) (*model.Cart, error) {
	var dto CartDto

	err := r.DecodeJsonPayload(&dto)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode request body")
	}

	cart := dto.Cart()
	if err := cart.Validate(); err != nil {
		return nil, err
	}

	return cart, nil
}

func (h *cartsHandlers) AddCartHandler(w rest.ResponseWriter, r *rest.Request) {
	l := log.FromContext(r.Context())

	if err := withTenant(r); err != nil {
		u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
		return
	}

	cart, err := parseCart(r)
	if err != nil {
		u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
		return
	}

	err = h.carts.AddCart(r.Context(), cart)
	if err != nil {
		if errors.Cause(err) == store.ErrCartExists {
			u.RestErrWithLog(w, r, l, err, http.StatusConflict)
			return
		}
		u.RestErrWithLogInternal(w, r, l, err)
		return
	}

	loc := utils.BuildURL(r, uriCart, map[string]string{
		":cartId": cart.ID.String(),
	})
	w.Header().Add("Location", loc.String())
	w.WriteHeader(http.StatusCreated)
	_ = w.WriteJson(NewCartDto(cart))
}

func (h *cartsHandlers) DeleteCartHandler(w rest.ResponseWriter, r *rest.Request) {
	l := log.FromContext(r.Context())

	if err := withTenant(r); err != nil {
		u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
		return
	}

	id, err := parseCartID(r)
	if err != nil {
		u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
		return
	}

	if err := h.carts.DeleteCart(r.Context(), id); err != nil {
		restErrWithLog(w, r, l, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *cartsHandlers) CreateTenantHandler(w rest.ResponseWriter, r *rest.Request) {
	ctx := r.Context()

	l := log.FromContext(ctx)

	var newTenant model.NewTenant

	if err := r.DecodeJsonPayload(&newTenant); err != nil {
		u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
		return
	}
	if err := newTenant.Validate(); err != nil {
		u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
		return
	}

	err := h.carts.CreateTenant(ctx, newTenant)
	if err != nil {
		u.RestErrWithLogInternal(w, r, l, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
