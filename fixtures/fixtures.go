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

// Package fixtures loads cart fixtures from YAML files and seeds them
// into a cart repository.
//
// Timestamps may be absolute ("2026-10-15 08:30:00", RFC3339) or
// relative to the load time: "now", "now-24h", "now+90m".
package fixtures

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/query"
)

// Time is a fixture timestamp, resolved against a reference time.
type Time string

func (t Time) Resolve(now time.Time) (time.Time, error) {
	s := strings.TrimSpace(string(t))
	if s == "" {
		return time.Time{}, nil
	}
	if strings.HasPrefix(s, "now") {
		rest := strings.TrimPrefix(s, "now")
		if rest == "" {
			return now.UTC(), nil
		}
		d, err := time.ParseDuration(rest)
		if err != nil {
			return time.Time{}, errors.Errorf("invalid relative time %q", s)
		}
		return now.Add(d).UTC(), nil
	}
	for _, layout := range []string{query.TimeLayout, time.RFC3339Nano} {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, errors.Errorf("invalid time %q", s)
}

type Cart struct {
	ID              int64   `yaml:"id,omitempty"`
	StoreID         int     `yaml:"store_id,omitempty"`
	ReservedOrderID string  `yaml:"reserved_order_id,omitempty"`
	MaskedID        string  `yaml:"masked_id,omitempty"`
	IsActive        bool    `yaml:"is_active"`
	IsVirtual       bool    `yaml:"is_virtual,omitempty"`
	OrigOrderID     int64   `yaml:"orig_order_id,omitempty"`
	ItemsCount      int     `yaml:"items_count,omitempty"`
	ItemsQty        float64 `yaml:"items_qty,omitempty"`
	Subtotal        float64 `yaml:"subtotal"`
	BaseSubtotal    float64 `yaml:"base_subtotal,omitempty"`
	GrandTotal      float64 `yaml:"grand_total"`
	BaseGrandTotal  float64 `yaml:"base_grand_total,omitempty"`
	CustomerEmail   string  `yaml:"customer_email,omitempty"`
	CustomerIsGuest bool    `yaml:"customer_is_guest,omitempty"`
	CreatedAt       Time    `yaml:"created_at,omitempty"`
	UpdatedAt       Time    `yaml:"updated_at,omitempty"`
}

// File is the layout of a fixtures file.
type File struct {
	// tenant the carts are seeded for; empty for the default one
	Tenant string `yaml:"tenant,omitempty"`
	Carts  []Cart `yaml:"carts"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read fixtures")
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal fixtures")
	}
	return &f, nil
}

// Model converts the fixture to a cart with timestamps resolved
// against now.
func (c Cart) Model(now time.Time) (*model.Cart, error) {
	created, err := c.CreatedAt.Resolve(now)
	if err != nil {
		return nil, errors.Wrap(err, "created_at")
	}
	updated, err := c.UpdatedAt.Resolve(now)
	if err != nil {
		return nil, errors.Wrap(err, "updated_at")
	}
	return &model.Cart{
		ID:              model.CartID(c.ID),
		StoreID:         c.StoreID,
		ReservedOrderID: c.ReservedOrderID,
		MaskedID:        c.MaskedID,
		IsActive:        c.IsActive,
		IsVirtual:       c.IsVirtual,
		OrigOrderID:     c.OrigOrderID,
		ItemsCount:      c.ItemsCount,
		ItemsQty:        c.ItemsQty,
		Subtotal:        c.Subtotal,
		BaseSubtotal:    c.BaseSubtotal,
		GrandTotal:      c.GrandTotal,
		BaseGrandTotal:  c.BaseGrandTotal,
		CustomerEmail:   c.CustomerEmail,
		CustomerIsGuest: c.CustomerIsGuest,
		CreatedAt:       created,
		UpdatedAt:       updated,
	}, nil
}

// Models resolves every fixture in the file.
func (f *File) Models(now time.Time) ([]model.Cart, error) {
	carts := make([]model.Cart, 0, len(f.Carts))
	for i, c := range f.Carts {
		cart, err := c.Model(now)
		if err != nil {
			return nil, errors.Wrapf(err, "fixture %d", i)
		}
		carts = append(carts, *cart)
	}
	return carts, nil
}

// Seeder is the part of the cart repository fixtures are written to.
type Seeder interface {
	AddCart(ctx context.Context, cart *model.Cart) error
	CreateTenant(ctx context.Context, tenant model.NewTenant) error
}

// Seed adds the carts of f to the repository and returns their IDs.
func Seed(ctx context.Context, s Seeder, f *File, now time.Time) ([]model.CartID, error) {
	l := log.FromContext(ctx)

	carts, err := f.Models(now)
	if err != nil {
		return nil, err
	}
	if f.Tenant != "" {
		if err := s.CreateTenant(ctx, model.NewTenant{ID: f.Tenant}); err != nil {
			return nil, errors.Wrapf(err, "failed to create tenant %s", f.Tenant)
		}
		ctx = identity.WithContext(ctx, &identity.Identity{Tenant: f.Tenant})
	}

	ids := make([]model.CartID, 0, len(carts))
	for i := range carts {
		if err := s.AddCart(ctx, &carts[i]); err != nil {
			return ids, errors.Wrapf(err, "failed to seed cart %d", i)
		}
		ids = append(ids, carts[i].ID)
	}
	l.Infof("seeded %d carts", len(ids))
	return ids, nil
}
