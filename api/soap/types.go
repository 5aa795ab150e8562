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

package soap

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/query"
)

type envelope struct {
	XMLName xml.Name
	Body    struct {
		Inner []byte `xml:",innerxml"`
	} `xml:"Body"`
}

type responseEnvelope struct {
	XMLName xml.Name     `xml:"env:Envelope"`
	EnvNS   string       `xml:"xmlns:env,attr"`
	NS      string       `xml:"xmlns:ns1,attr,omitempty"`
	Body    responseBody `xml:"env:Body"`
}

// responseBody holds a response or fault; the element name comes from
// the content's XMLName.
type responseBody struct {
	Content interface{}
}

type faultCode struct {
	Value string `xml:"env:Value"`
}

type faultReason struct {
	Text struct {
		Lang  string `xml:"xml:lang,attr"`
		Value string `xml:",chardata"`
	} `xml:"env:Text"`
}

type fault struct {
	XMLName xml.Name    `xml:"env:Fault"`
	Code    faultCode   `xml:"env:Code"`
	Reason  faultReason `xml:"env:Reason"`
}

type getRequest struct {
	CartID string `xml:"cartId"`
}

type getListRequest struct {
	SearchCriteria searchCriteriaXML `xml:"searchCriteria"`
}

type filterXML struct {
	Field         string  `xml:"field"`
	Value         *string `xml:"value"`
	ConditionType string  `xml:"conditionType,omitempty"`
}

type filterGroupXML struct {
	Filters []filterXML `xml:"filters>item"`
}

type sortOrderXML struct {
	Field     string `xml:"field"`
	Direction string `xml:"direction,omitempty"`
}

type searchCriteriaXML struct {
	FilterGroups []filterGroupXML `xml:"filterGroups>item"`
	SortOrders   []sortOrderXML   `xml:"sortOrders>item,omitempty"`
	PageSize     *int             `xml:"pageSize,omitempty"`
	CurrentPage  *int             `xml:"currentPage,omitempty"`
}

func (sc searchCriteriaXML) model() model.SearchCriteria {
	out := model.SearchCriteria{
		PageSize:    sc.PageSize,
		CurrentPage: sc.CurrentPage,
	}
	for _, g := range sc.FilterGroups {
		group := model.FilterGroup{Filters: []model.Filter{}}
		for _, f := range g.Filters {
			filter := model.Filter{
				Field:         f.Field,
				ConditionType: model.ConditionType(f.ConditionType),
			}
			if f.Value != nil {
				filter.Value = *f.Value
			}
			group.Filters = append(group.Filters, filter)
		}
		out.FilterGroups = append(out.FilterGroups, group)
	}
	for _, o := range sc.SortOrders {
		out.SortOrders = append(out.SortOrders, model.SortOrder{
			Field:     o.Field,
			Direction: model.SortDirection(o.Direction),
		})
	}
	return out
}

// renderValue flattens a filter value to its text form; lists become
// comma separated.
func renderValue(v interface{}) *string {
	if v == nil {
		return nil
	}
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case []interface{}:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = fmt.Sprint(p)
		}
		s = strings.Join(parts, ",")
	default:
		s = fmt.Sprint(val)
	}
	return &s
}

func newSearchCriteriaXML(sc model.SearchCriteria) searchCriteriaXML {
	out := searchCriteriaXML{
		PageSize:    sc.PageSize,
		CurrentPage: sc.CurrentPage,
	}
	for _, g := range sc.FilterGroups {
		var group filterGroupXML
		for _, f := range g.Filters {
			group.Filters = append(group.Filters, filterXML{
				Field:         f.Field,
				Value:         renderValue(f.Value),
				ConditionType: string(f.ConditionType),
			})
		}
		out.FilterGroups = append(out.FilterGroups, group)
	}
	for _, o := range sc.SortOrders {
		out.SortOrders = append(out.SortOrders, sortOrderXML{
			Field:     o.Field,
			Direction: string(o.Direction),
		})
	}
	return out
}

type totalsXML struct {
	Subtotal       float64 `xml:"subtotal"`
	BaseSubtotal   float64 `xml:"baseSubtotal"`
	GrandTotal     float64 `xml:"grandTotal"`
	BaseGrandTotal float64 `xml:"baseGrandTotal"`
}

type cartXML struct {
	ID              int64     `xml:"id"`
	StoreID         int       `xml:"storeId"`
	CreatedAt       string    `xml:"createdAt,omitempty"`
	UpdatedAt       string    `xml:"updatedAt,omitempty"`
	IsActive        bool      `xml:"isActive"`
	IsVirtual       bool      `xml:"isVirtual"`
	OrigOrderID     int64     `xml:"origOrderId"`
	ItemsCount      int       `xml:"itemsCount"`
	ItemsQty        float64   `xml:"itemsQty"`
	ReservedOrderID string    `xml:"reservedOrderId,omitempty"`
	MaskedID        string    `xml:"maskedId,omitempty"`
	CustomerIsGuest bool      `xml:"customerIsGuest"`
	CustomerEmail   string    `xml:"customerEmail,omitempty"`
	Totals          totalsXML `xml:"totals"`
}

func formatTime(c *model.Cart, created bool) string {
	t := c.UpdatedAt
	if created {
		t = c.CreatedAt
	}
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(query.TimeLayout)
}

func newCartXML(c *model.Cart) cartXML {
	return cartXML{
		ID:              int64(c.ID),
		StoreID:         c.StoreID,
		CreatedAt:       formatTime(c, true),
		UpdatedAt:       formatTime(c, false),
		IsActive:        c.IsActive,
		IsVirtual:       c.IsVirtual,
		OrigOrderID:     c.OrigOrderID,
		ItemsCount:      c.ItemsCount,
		ItemsQty:        c.ItemsQty,
		ReservedOrderID: c.ReservedOrderID,
		MaskedID:        c.MaskedID,
		CustomerIsGuest: c.CustomerIsGuest,
		CustomerEmail:   c.CustomerEmail,
		Totals: totalsXML{
			Subtotal:       c.Subtotal,
			BaseSubtotal:   c.BaseSubtotal,
			GrandTotal:     c.GrandTotal,
			BaseGrandTotal: c.BaseGrandTotal,
		},
	}
}

type getResponse struct {
	XMLName xml.Name
	Result  cartXML `xml:"result"`
}

type searchResultXML struct {
	Items          []cartXML         `xml:"items>item"`
	SearchCriteria searchCriteriaXML `xml:"searchCriteria"`
	TotalCount     int               `xml:"totalCount"`
}

type getListResponse struct {
	XMLName xml.Name
	Result  searchResultXML `xml:"result"`
}
