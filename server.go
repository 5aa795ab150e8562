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

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	api_http "github.com/mendersoftware/carts/api/http"
	"github.com/mendersoftware/carts/api/soap"
	"github.com/mendersoftware/carts/config"
	"github.com/mendersoftware/carts/fixtures"
	"github.com/mendersoftware/carts/repository"
	"github.com/mendersoftware/carts/store"
	"github.com/mendersoftware/carts/store/memory"
	"github.com/mendersoftware/carts/store/mongo"
)

func SetupAPI(stacktype string) (*rest.Api, error) {
	api := rest.NewApi()
	if err := SetupMiddleware(api, stacktype); err != nil {
		return nil, errors.Wrap(err, "failed to setup middleware")
	}

	//this will override the framework's error resp to the desired one:
	// {"error": "msg"}
	// instead of:
	// {"Error": "msg"}
	rest.ErrorFieldName = "error"

	return api, nil
}

// NewRouter serves the REST API and the SOAP endpoint at soapPath.
func NewRouter(c config.Reader, repo repository.CartRepository) (http.Handler, error) {
	api, err := SetupAPI(c.GetString(SettingMiddleware))
	if err != nil {
		return nil, errors.Wrap(err, "API setup failed")
	}

	apph, err := api_http.NewCartsApiHandlers(repo).GetApp()
	if err != nil {
		return nil, errors.Wrap(err, "carts API handlers setup failed")
	}
	api.SetApp(apph)

	mux := http.NewServeMux()
	mux.Handle(c.GetString(SettingSoapPath), soap.NewHandler(repo))
	mux.Handle("/", api.MakeHandler())
	return mux, nil
}

func makeDataStore(c config.Reader) (store.DataStore, error) {
	switch kind := c.GetString(SettingStore); kind {
	case StoreMongo:
		db, err := mongo.NewDataStoreMongo(makeDataStoreConfig())
		if err != nil {
			return nil, errors.Wrap(err, "database connection failed")
		}
		return db, nil
	case StoreMemory:
		return memory.NewDataStoreMemory(), nil
	default:
		return nil, errors.Errorf("unknown store type: %s", kind)
	}
}

// seedFixtures loads the configured fixtures file into repo, if any.
func seedFixtures(ctx context.Context, c config.Reader, repo repository.CartRepository) error {
	path := c.GetString(SettingFixtures)
	if path == "" {
		return nil
	}
	f, err := fixtures.Load(path)
	if err != nil {
		return err
	}
	_, err = fixtures.Seed(ctx, repo, f, time.Now())
	return errors.Wrapf(err, "failed to seed fixtures from %s", path)
}

func RunServer(c config.Reader, db store.DataStore) error {
	l := log.New(log.Ctx{})

	repo := repository.NewCartRepository(db, store.CartFields())

	if err := seedFixtures(log.WithContext(context.Background(), l), c, repo); err != nil {
		return err
	}

	router, err := NewRouter(c, repo)
	if err != nil {
		return err
	}

	addr := c.GetString(SettingListen)
	l.Printf("listening on %s", addr)

	return http.ListenAndServe(addr, router)
}
