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

// Package query evaluates search criteria against in-memory collections:
// filter groups are AND-ed, the filters within a group are OR-ed, matches
// are stable-sorted by the sort orders and cut to the requested page.
package query

import (
	"regexp"
	"sort"

	"github.com/mendersoftware/carts/model"
)

// Search returns the page of items selected by sc together with the total
// number of matches before pagination. items is not modified.
//
// Every field named by a filter or a sort order must be present in fields,
// otherwise an *InvalidFieldError is returned and nothing is evaluated. An
// unsupported filter condition yields an *InvalidConditionError.
func Search[T any](items []T, sc model.SearchCriteria, fields Fields[T]) ([]T, int, error) {
	filter, err := compileGroups(sc.FilterGroups, fields)
	if err != nil {
		return nil, 0, err
	}
	keys, err := compileSort(sc.SortOrders, fields)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]row[T], 0, len(items))
	for i := range items {
		if filter.match(&items[i]) {
			matched = append(matched, row[T]{item: items[i]})
		}
	}

	if len(keys) > 0 {
		for i := range matched {
			matched[i].keys = make([]sortValue, len(keys))
			for k, key := range keys {
				v, ok := normalize(key.kind, key.value(&matched[i].item))
				matched[i].keys[k] = sortValue{value: v, ok: ok}
			}
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return less(keys, matched[i].keys, matched[j].keys)
		})
	}

	total := len(matched)
	start, end := pageBounds(total, sc.PageSize, sc.CurrentPage)
	page := make([]T, 0, end-start)
	for _, r := range matched[start:end] {
		page = append(page, r.item)
	}
	return page, total, nil
}

// pageBounds returns the slice bounds of the requested page. A missing or
// zero page size selects everything; a missing page number is the first.
func pageBounds(total int, pageSize, currentPage *int) (int, int) {
	if pageSize == nil || *pageSize <= 0 {
		return 0, total
	}
	size := *pageSize
	page := 1
	if currentPage != nil && *currentPage > 1 {
		page = *currentPage
	}
	pages := (total + size - 1) / size
	if page > pages {
		return total, total
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

type row[T any] struct {
	item T
	keys []sortValue
}

type sortValue struct {
	value value
	ok    bool
}

type sortKey[T any] struct {
	kind  Kind
	value func(*T) interface{}
	desc  bool
}

func compileSort[T any](orders []model.SortOrder, fields Fields[T]) ([]sortKey[T], error) {
	keys := make([]sortKey[T], 0, len(orders))
	for _, o := range orders {
		f, ok := fields[o.Field]
		if !ok {
			return nil, &InvalidFieldError{Field: o.Field}
		}
		keys = append(keys, sortKey[T]{
			kind:  f.Kind,
			value: f.Value,
			desc:  o.Direction.Canonical() == model.SortDesc,
		})
	}
	return keys, nil
}

// less orders missing values before present ones; descending keys reverse
// the whole order.
func less[T any](keys []sortKey[T], a, b []sortValue) bool {
	for k, key := range keys {
		var c int
		switch {
		case !a[k].ok && !b[k].ok:
			c = 0
		case !a[k].ok:
			c = -1
		case !b[k].ok:
			c = 1
		default:
			c = compare(a[k].value, b[k].value)
		}
		if c == 0 {
			continue
		}
		if key.desc {
			return c > 0
		}
		return c < 0
	}
	return false
}

type groups[T any] [][]predicate[T]

func (g groups[T]) match(item *T) bool {
	for _, group := range g {
		matched := false
		for _, p := range group {
			if p.match(item) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func compileGroups[T any](filterGroups []model.FilterGroup, fields Fields[T]) (groups[T], error) {
	compiled := make(groups[T], len(filterGroups))
	for i, g := range filterGroups {
		compiled[i] = make([]predicate[T], 0, len(g.Filters))
		for _, f := range g.Filters {
			p, err := compileFilter(f, fields)
			if err != nil {
				return nil, err
			}
			compiled[i] = append(compiled[i], p)
		}
	}
	return compiled, nil
}

type predicate[T any] struct {
	field   Field[T]
	cond    model.ConditionType
	operand value
	valid   bool
	list    []value
	like    *regexp.Regexp
}

func compileFilter[T any](f model.Filter, fields Fields[T]) (predicate[T], error) {
	field, ok := fields[f.Field]
	if !ok {
		return predicate[T]{}, &InvalidFieldError{Field: f.Field}
	}
	p := predicate[T]{
		field: field,
		cond:  f.ConditionType.Canonical(),
	}
	switch p.cond {
	case model.CondNull, model.CondNotNull:
		p.valid = true
	case model.CondLike, model.CondNlike:
		if !isNil(f.Value) {
			p.like = likePattern(toString(f.Value))
			p.valid = true
		}
	case model.CondIn, model.CondNin:
		if !isNil(f.Value) {
			for _, v := range listOf(f.Value) {
				if nv, ok := normalize(field.Kind, v); ok {
					p.list = append(p.list, nv)
				}
			}
			p.valid = len(p.list) > 0
		}
	case model.CondEq, model.CondNeq,
		model.CondGt, model.CondGteq, model.CondLt, model.CondLteq:
		p.operand, p.valid = normalize(field.Kind, f.Value)
	default:
		return predicate[T]{}, &InvalidConditionError{
			Field:     f.Field,
			Condition: f.ConditionType,
		}
	}
	return p, nil
}

func (p predicate[T]) match(item *T) bool {
	v, present := normalize(p.field.Kind, p.field.Value(item))
	switch p.cond {
	case model.CondNull:
		return !present
	case model.CondNotNull:
		return present
	}
	if !present || !p.valid {
		return false
	}
	switch p.cond {
	case model.CondEq:
		return compare(v, p.operand) == 0
	case model.CondNeq:
		return compare(v, p.operand) != 0
	case model.CondGt:
		return compare(v, p.operand) > 0
	case model.CondGteq:
		return compare(v, p.operand) >= 0
	case model.CondLt:
		return compare(v, p.operand) < 0
	case model.CondLteq:
		return compare(v, p.operand) <= 0
	case model.CondLike:
		return p.like.MatchString(v.render())
	case model.CondNlike:
		return !p.like.MatchString(v.render())
	case model.CondIn:
		return p.in(v)
	case model.CondNin:
		return !p.in(v)
	}
	return false
}

func (p predicate[T]) in(v value) bool {
	for _, candidate := range p.list {
		if compare(v, candidate) == 0 {
			return true
		}
	}
	return false
}
