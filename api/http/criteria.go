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
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/pkg/errors"

	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/utils"
)

const (
	queryParamCriteria = "searchCriteria"

	keyFilterGroups  = "filter_groups"
	keyFilters       = "filters"
	keySortOrders    = "sort_orders"
	keyPageSize      = "page_size"
	keyCurrentPage   = "current_page"
	keyField         = "field"
	keyValue         = "value"
	keyConditionType = "condition_type"
	keyDirection     = "direction"

	maxPageSize = math.MaxInt32
)

// camelCase spellings accepted next to the snake_case ones
var criteriaKeyAliases = map[string]string{
	"filterGroups":  keyFilterGroups,
	"sortOrders":    keySortOrders,
	"pageSize":      keyPageSize,
	"currentPage":   keyCurrentPage,
	"conditionType": keyConditionType,
}

// splitCriteriaKey turns "searchCriteria[a][b][c]" into [a b c].
func splitCriteriaKey(key string) ([]string, bool) {
	prefix := queryParamCriteria + "["
	if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, "]") {
		return nil, false
	}
	parts := strings.Split(key[len(prefix):len(key)-1], "][")
	for i, p := range parts {
		if p == "" || strings.ContainsAny(p, "[]") {
			return nil, false
		}
		if alias, ok := criteriaKeyAliases[p]; ok {
			parts[i] = alias
		}
	}
	return parts, true
}

type criteriaParams struct {
	filters map[int]map[int]*model.Filter
	orders  map[int]*model.SortOrder
}

func (p *criteriaParams) filter(group, idx int) *model.Filter {
	g, ok := p.filters[group]
	if !ok {
		g = make(map[int]*model.Filter)
		p.filters[group] = g
	}
	f, ok := g[idx]
	if !ok {
		f = &model.Filter{}
		g[idx] = f
	}
	return f
}

func (p *criteriaParams) order(idx int) *model.SortOrder {
	o, ok := p.orders[idx]
	if !ok {
		o = &model.SortOrder{}
		p.orders[idx] = o
	}
	return o
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func parseIndex(s string) (int, bool) {
	i, err := strconv.Atoi(s)
	return i, err == nil && i >= 0
}

// parseSearchCriteria reads search criteria encoded in the query string
// with the bracket notation, e.g.
//
//	searchCriteria[filter_groups][0][filters][0][field]=subtotal
//	searchCriteria[filter_groups][0][filters][0][value]=20
//	searchCriteria[sort_orders][0][field]=created_at
//	searchCriteria[page_size]=10
//
// Indices order groups, filters and sort orders; gaps are allowed.
func parseSearchCriteria(r *rest.Request) (model.SearchCriteria, error) {
	var sc model.SearchCriteria
	params := criteriaParams{
		filters: make(map[int]map[int]*model.Filter),
		orders:  make(map[int]*model.SortOrder),
	}

	for key, values := range r.URL.Query() {
		if key != queryParamCriteria && !strings.HasPrefix(key, queryParamCriteria+"[") {
			continue
		}
		parts, ok := splitCriteriaKey(key)
		if !ok {
			return sc, errors.New(utils.MsgQueryParmInvalid(key))
		}
		value := values[0]

		switch {
		case len(parts) == 5 && parts[0] == keyFilterGroups && parts[2] == keyFilters:
			group, ok1 := parseIndex(parts[1])
			idx, ok2 := parseIndex(parts[3])
			if !ok1 || !ok2 {
				return sc, errors.New(utils.MsgQueryParmInvalid(key))
			}
			f := params.filter(group, idx)
			switch parts[4] {
			case keyField:
				f.Field = value
			case keyValue:
				f.Value = value
			case keyConditionType:
				f.ConditionType = model.ConditionType(value)
			default:
				return sc, errors.New(utils.MsgQueryParmInvalid(key))
			}

		case len(parts) == 3 && parts[0] == keySortOrders:
			idx, ok := parseIndex(parts[1])
			if !ok {
				return sc, errors.New(utils.MsgQueryParmInvalid(key))
			}
			o := params.order(idx)
			switch parts[2] {
			case keyField:
				o.Field = value
			case keyDirection:
				o.Direction = model.SortDirection(value)
			default:
				return sc, errors.New(utils.MsgQueryParmInvalid(key))
			}

		case len(parts) == 1 && parts[0] == keyPageSize:
			size, err := utils.ParseQueryParmUInt(r, key, false, 0, maxPageSize, 0)
			if err != nil {
				return sc, err
			}
			n := int(size)
			sc.PageSize = &n

		case len(parts) == 1 && parts[0] == keyCurrentPage:
			page, err := utils.ParseQueryParmUInt(r, key, false, 1, maxPageSize, 1)
			if err != nil {
				return sc, err
			}
			n := int(page)
			sc.CurrentPage = &n

		default:
			return sc, errors.New(utils.MsgQueryParmInvalid(key))
		}
	}

	for _, g := range sortedKeys(params.filters) {
		var group model.FilterGroup
		for _, i := range sortedKeys(params.filters[g]) {
			group.Filters = append(group.Filters, *params.filters[g][i])
		}
		sc.FilterGroups = append(sc.FilterGroups, group)
	}
	for _, i := range sortedKeys(params.orders) {
		sc.SortOrders = append(sc.SortOrders, *params.orders[i])
	}

	return sc, nil
}
