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

package model

import (
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	CartFieldID              = "id"
	CartFieldStoreID         = "store_id"
	CartFieldReservedOrderID = "reserved_order_id"
	CartFieldMaskedID        = "masked_id"
	CartFieldIsActive        = "is_active"
	CartFieldIsVirtual       = "is_virtual"
	CartFieldOrigOrderID     = "orig_order_id"
	CartFieldItemsCount      = "items_count"
	CartFieldItemsQty        = "items_qty"
	CartFieldSubtotal        = "subtotal"
	CartFieldBaseSubtotal    = "base_subtotal"
	CartFieldGrandTotal      = "grand_total"
	CartFieldBaseGrandTotal  = "base_grand_total"
	CartFieldCustomerEmail   = "customer_email"
	CartFieldCustomerIsGuest = "customer_is_guest"
	CartFieldCreatedAt       = "created_at"
	CartFieldUpdatedAt       = "updated_at"
)

// CartEntityName is the entity name reported in lookup errors.
const CartEntityName = "cart"

type CartID int64

func (id CartID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseCartID parses the decimal representation of a cart id.
func ParseCartID(s string) (CartID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return CartID(id), nil
}

// Cart is a shopping cart (quote) as kept by the store.
type Cart struct {
	//store-assigned cart ID
	ID CartID `json:"id" bson:"_id"`

	StoreID int `json:"store_id" bson:"store_id"`

	//order increment ID reserved for the cart at checkout
	ReservedOrderID string `json:"reserved_order_id,omitempty" bson:"reserved_order_id,omitempty"`

	//opaque ID handed out to guest customers
	MaskedID string `json:"masked_id,omitempty" bson:"masked_id,omitempty"`

	IsActive    bool  `json:"is_active" bson:"is_active"`
	IsVirtual   bool  `json:"is_virtual" bson:"is_virtual"`
	OrigOrderID int64 `json:"orig_order_id" bson:"orig_order_id"`

	ItemsCount int     `json:"items_count" bson:"items_count"`
	ItemsQty   float64 `json:"items_qty" bson:"items_qty"`

	Subtotal       float64 `json:"subtotal" bson:"subtotal"`
	BaseSubtotal   float64 `json:"base_subtotal" bson:"base_subtotal"`
	GrandTotal     float64 `json:"grand_total" bson:"grand_total"`
	BaseGrandTotal float64 `json:"base_grand_total" bson:"base_grand_total"`

	CustomerEmail   string `json:"customer_email,omitempty" bson:"customer_email,omitempty"`
	CustomerIsGuest bool   `json:"customer_is_guest" bson:"customer_is_guest"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	//Timestamp of the last cart update.
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (c Cart) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Min(CartID(0))),
		validation.Field(&c.StoreID, validation.Min(0)),
		validation.Field(&c.ReservedOrderID, validation.Length(0, 64)),
		validation.Field(&c.MaskedID, is.UUID),
		validation.Field(&c.ItemsCount, validation.Min(0)),
		validation.Field(&c.ItemsQty, validation.Min(0.0)),
		validation.Field(&c.CustomerEmail, is.EmailFormat),
	)
}
