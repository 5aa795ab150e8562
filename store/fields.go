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
	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/query"
)

func optionalString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// CartFields returns the registry of searchable cart fields.
func CartFields() query.Fields[model.Cart] {
	return query.Fields[model.Cart]{
		model.CartFieldID: {
			Kind:  query.KindNumber,
			Value: func(c *model.Cart) interface{} { return int64(c.ID) },
		},
		model.CartFieldStoreID: {
			Kind:  query.KindNumber,
			Value: func(c *model.Cart) interface{} { return c.StoreID },
		},
		model.CartFieldReservedOrderID: {
			Kind:  query.KindString,
			Value: func(c *model.Cart) interface{} { return optionalString(c.ReservedOrderID) },
		},
		model.CartFieldMaskedID: {
			Kind:  query.KindString,
			Value: func(c *model.Cart) interface{} { return optionalString(c.MaskedID) },
		},
		model.CartFieldIsActive: {
			Kind:  query.KindBool,
			Value: func(c *model.Cart) interface{} { return c.IsActive },
		},
		model.CartFieldIsVirtual: {
			Kind:  query.KindBool,
			Value: func(c *model.Cart) interface{} { return c.IsVirtual },
		},
		model.CartFieldOrigOrderID: {
			Kind:  query.KindNumber,
			Value: func(c *model.Cart) interface{} { return c.OrigOrderID },
		},
		model.CartFieldItemsCount: {
			Kind:  query.KindNumber,
			Value: func(c *model.Cart) interface{} { return c.ItemsCount },
		},
		model.CartFieldItemsQty: {
			Kind:  query.KindNumber,
			Value: func(c *model.Cart) interface{} { return c.ItemsQty },
		},
		model.CartFieldSubtotal: {
			Kind:  query.KindNumber,
			Value: func(c *model.Cart) interface{} { return c.Subtotal },
		},
		model.CartFieldBaseSubtotal: {
			Kind:  query.KindNumber,
			Value: func(c *model.Cart) interface{} { return c.BaseSubtotal },
		},
		model.CartFieldGrandTotal: {
			Kind:  query.KindNumber,
			Value: func(c *model.Cart) interface{} { return c.GrandTotal },
		},
		model.CartFieldBaseGrandTotal: {
			Kind:  query.KindNumber,
			Value: func(c *model.Cart) interface{} { return c.BaseGrandTotal },
		},
		model.CartFieldCustomerEmail: {
			Kind:  query.KindString,
			Value: func(c *model.Cart) interface{} { return optionalString(c.CustomerEmail) },
		},
		model.CartFieldCustomerIsGuest: {
			Kind:  query.KindBool,
			Value: func(c *model.Cart) interface{} { return c.CustomerIsGuest },
		},
		model.CartFieldCreatedAt: {
			Kind: query.KindTime,
			Value: func(c *model.Cart) interface{} {
				if c.CreatedAt.IsZero() {
					return nil
				}
				return c.CreatedAt
			},
		},
		model.CartFieldUpdatedAt: {
			Kind: query.KindTime,
			Value: func(c *model.Cart) interface{} {
				if c.UpdatedAt.IsZero() {
					return nil
				}
				return c.UpdatedAt
			},
		},
	}
}
