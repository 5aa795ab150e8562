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
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/query"
)

// Timestamp is a UTC time rendered as "2006-01-02 15:04:05"; the zero
// time is rendered as null.
type Timestamp time.Time

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	t := time.Time(ts)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(query.TimeLayout))
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "timestamp must be a string")
	}
	if s == nil || *s == "" {
		*ts = Timestamp{}
		return nil
	}
	t, err := time.ParseInLocation(query.TimeLayout, *s, time.UTC)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, *s)
		if err != nil {
			return errors.Errorf("invalid timestamp %q", *s)
		}
	}
	*ts = Timestamp(t.UTC())
	return nil
}

type TotalsDto struct {
	Subtotal       float64 `json:"subtotal"`
	BaseSubtotal   float64 `json:"base_subtotal"`
	GrandTotal     float64 `json:"grand_total"`
	BaseGrandTotal float64 `json:"base_grand_total"`
}

// CartDto is the wire representation of a cart.
type CartDto struct {
	ID              int64     `json:"id"`
	StoreID         int       `json:"store_id"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
	IsActive        bool      `json:"is_active"`
	IsVirtual       bool      `json:"is_virtual"`
	OrigOrderID     int64     `json:"orig_order_id"`
	ItemsCount      int       `json:"items_count"`
	ItemsQty        float64   `json:"items_qty"`
	ReservedOrderID string    `json:"reserved_order_id,omitempty"`
	MaskedID        string    `json:"masked_id,omitempty"`
	CustomerIsGuest bool      `json:"customer_is_guest"`
	CustomerEmail   string    `json:"customer_email,omitempty"`
	Totals          TotalsDto `json:"totals"`
}

func NewCartDto(c *model.Cart) *CartDto {
	return &CartDto{
		ID:              int64(c.ID),
		StoreID:         c.StoreID,
		CreatedAt:       Timestamp(c.CreatedAt),
		UpdatedAt:       Timestamp(c.UpdatedAt),
		IsActive:        c.IsActive,
		IsVirtual:       c.IsVirtual,
		OrigOrderID:     c.OrigOrderID,
		ItemsCount:      c.ItemsCount,
		ItemsQty:        c.ItemsQty,
		ReservedOrderID: c.ReservedOrderID,
		MaskedID:        c.MaskedID,
		CustomerIsGuest: c.CustomerIsGuest,
		CustomerEmail:   c.CustomerEmail,
		Totals: TotalsDto{
			Subtotal:       c.Subtotal,
			BaseSubtotal:   c.BaseSubtotal,
			GrandTotal:     c.GrandTotal,
			BaseGrandTotal: c.BaseGrandTotal,
		},
	}
}

func (d *CartDto) Cart() *model.Cart {
	return &model.Cart{
		ID:              model.CartID(d.ID),
		StoreID:         d.StoreID,
		ReservedOrderID: d.ReservedOrderID,
		MaskedID:        d.MaskedID,
		IsActive:        d.IsActive,
		IsVirtual:       d.IsVirtual,
		OrigOrderID:     d.OrigOrderID,
		ItemsCount:      d.ItemsCount,
		ItemsQty:        d.ItemsQty,
		Subtotal:        d.Totals.Subtotal,
		BaseSubtotal:    d.Totals.BaseSubtotal,
		GrandTotal:      d.Totals.GrandTotal,
		BaseGrandTotal:  d.Totals.BaseGrandTotal,
		CustomerEmail:   d.CustomerEmail,
		CustomerIsGuest: d.CustomerIsGuest,
		CreatedAt:       time.Time(d.CreatedAt),
		UpdatedAt:       time.Time(d.UpdatedAt),
	}
}

type SearchResultDto struct {
	Items          []CartDto            `json:"items"`
	SearchCriteria model.SearchCriteria `json:"search_criteria"`
	TotalCount     int                  `json:"total_count"`
}

func NewSearchResultDto(res *model.CartSearchResult) *SearchResultDto {
	dto := &SearchResultDto{
		Items:          make([]CartDto, 0, len(res.Items)),
		SearchCriteria: res.SearchCriteria,
		TotalCount:     res.TotalCount,
	}
	for i := range res.Items {
		dto.Items = append(dto.Items, *NewCartDto(&res.Items[i]))
	}
	return dto
}

// SearchRequest is the body of the search endpoint.
type SearchRequest struct {
	SearchCriteria model.SearchCriteria `json:"searchCriteria"`
}
