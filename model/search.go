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
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

type ConditionType string

const (
	CondEq      ConditionType = "eq"
	CondNeq     ConditionType = "neq"
	CondGt      ConditionType = "gt"
	CondGteq    ConditionType = "gteq"
	CondLt      ConditionType = "lt"
	CondLteq    ConditionType = "lteq"
	CondLike    ConditionType = "like"
	CondNlike   ConditionType = "nlike"
	CondIn      ConditionType = "in"
	CondNin     ConditionType = "nin"
	CondNull    ConditionType = "null"
	CondNotNull ConditionType = "notnull"
	CondMoreq   ConditionType = "moreq"
	CondFrom    ConditionType = "from"
	CondTo      ConditionType = "to"
)

var validConditionTypes = []interface{}{
	CondEq, CondNeq, CondGt, CondGteq, CondLt, CondLteq,
	CondLike, CondNlike, CondIn, CondNin, CondNull, CondNotNull,
	CondMoreq, CondFrom, CondTo,
}

// Canonical resolves aliases and the empty condition type, which means
// equality.
func (c ConditionType) Canonical() ConditionType {
	switch ConditionType(strings.ToLower(string(c))) {
	case "":
		return CondEq
	case CondMoreq, CondFrom:
		return CondGteq
	case CondTo:
		return CondLteq
	default:
		return ConditionType(strings.ToLower(string(c)))
	}
}

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// Canonical returns the upper case direction; empty means ascending.
func (d SortDirection) Canonical() SortDirection {
	if d == "" {
		return SortAsc
	}
	return SortDirection(strings.ToUpper(string(d)))
}

// Filter is a single predicate on an entity field.
type Filter struct {
	Field         string        `json:"field"`
	Value         interface{}   `json:"value"`
	ConditionType ConditionType `json:"condition_type,omitempty"`
}

// FilterGroup matches an entity if any of its filters does.
type FilterGroup struct {
	Filters []Filter `json:"filters"`
}

type SortOrder struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction,omitempty"`
}

// SearchCriteria matches an entity if every filter group does.
type SearchCriteria struct {
	FilterGroups []FilterGroup `json:"filter_groups"`
	SortOrders   []SortOrder   `json:"sort_orders,omitempty"`
	PageSize     *int          `json:"page_size,omitempty"`
	CurrentPage  *int          `json:"current_page,omitempty"`
}

func (f Filter) Validate() error {
	cond := f.ConditionType.Canonical()
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Field, validation.Required),
		validation.Field(&f.ConditionType,
			validation.By(func(interface{}) error {
				return validation.Validate(cond, validation.In(validConditionTypes...))
			})),
	)
	if err != nil {
		return err
	}
	switch cond {
	case CondNull, CondNotNull:
	default:
		if f.Value == nil {
			return errors.Errorf("value: required by condition %q.", cond)
		}
	}
	return nil
}

func (g FilterGroup) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Filters),
	)
}

func (s SortOrder) Validate() error {
	dir := s.Direction.Canonical()
	return validation.ValidateStruct(&s,
		validation.Field(&s.Field, validation.Required),
		validation.Field(&s.Direction,
			validation.By(func(interface{}) error {
				return validation.Validate(dir, validation.In(SortAsc, SortDesc))
			})),
	)
}

func (sc SearchCriteria) Validate() error {
	return validation.ValidateStruct(&sc,
		validation.Field(&sc.FilterGroups),
		validation.Field(&sc.SortOrders),
		validation.Field(&sc.PageSize, validation.By(intNoLessThan(0))),
		validation.Field(&sc.CurrentPage, validation.By(intNoLessThan(1))),
	)
}

// intNoLessThan checks optional integers; validation.Min treats zero as
// empty and would let it through.
func intNoLessThan(min int) validation.RuleFunc {
	return func(value interface{}) error {
		v, _ := value.(*int)
		if v != nil && *v < min {
			return errors.Errorf("must be no less than %d", min)
		}
		return nil
	}
}

// CartSearchResult is a single page of carts matching a search.
type CartSearchResult struct {
	Items          []Cart         `json:"items"`
	SearchCriteria SearchCriteria `json:"search_criteria"`
	TotalCount     int            `json:"total_count"`
}
