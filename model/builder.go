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

// The builders below are plain values: every setter returns a modified
// copy and leaves the receiver untouched, so a partially configured builder
// can be shared and extended in several directions.

type FilterBuilder struct {
	filter Filter
}

func NewFilterBuilder() FilterBuilder {
	return FilterBuilder{}
}

func (b FilterBuilder) Field(name string) FilterBuilder {
	b.filter.Field = name
	return b
}

func (b FilterBuilder) ConditionType(cond ConditionType) FilterBuilder {
	b.filter.ConditionType = cond
	return b
}

func (b FilterBuilder) Value(value interface{}) FilterBuilder {
	b.filter.Value = value
	return b
}

func (b FilterBuilder) Create() Filter {
	return b.filter
}

type SortOrderBuilder struct {
	order SortOrder
}

func NewSortOrderBuilder() SortOrderBuilder {
	return SortOrderBuilder{}
}

func (b SortOrderBuilder) Field(name string) SortOrderBuilder {
	b.order.Field = name
	return b
}

func (b SortOrderBuilder) Direction(dir SortDirection) SortOrderBuilder {
	b.order.Direction = dir
	return b
}

func (b SortOrderBuilder) Create() SortOrder {
	return b.order
}

type SearchCriteriaBuilder struct {
	groups      []FilterGroup
	sortOrders  []SortOrder
	pageSize    *int
	currentPage *int
}

func NewSearchCriteriaBuilder() SearchCriteriaBuilder {
	return SearchCriteriaBuilder{}
}

// AddFilters appends a filter group made of the given alternatives.
func (b SearchCriteriaBuilder) AddFilters(filters ...Filter) SearchCriteriaBuilder {
	group := FilterGroup{Filters: append([]Filter{}, filters...)}
	groups := make([]FilterGroup, len(b.groups), len(b.groups)+1)
	copy(groups, b.groups)
	b.groups = append(groups, group)
	return b
}

func (b SearchCriteriaBuilder) SortOrders(orders ...SortOrder) SearchCriteriaBuilder {
	b.sortOrders = append([]SortOrder{}, orders...)
	return b
}

func (b SearchCriteriaBuilder) PageSize(size int) SearchCriteriaBuilder {
	b.pageSize = &size
	return b
}

func (b SearchCriteriaBuilder) CurrentPage(page int) SearchCriteriaBuilder {
	b.currentPage = &page
	return b
}

func (b SearchCriteriaBuilder) Create() SearchCriteria {
	sc := SearchCriteria{
		FilterGroups: make([]FilterGroup, len(b.groups)),
	}
	for i, g := range b.groups {
		sc.FilterGroups[i] = FilterGroup{
			Filters: append([]Filter{}, g.Filters...),
		}
	}
	if len(b.sortOrders) > 0 {
		sc.SortOrders = append([]SortOrder{}, b.sortOrders...)
	}
	if b.pageSize != nil {
		size := *b.pageSize
		sc.PageSize = &size
	}
	if b.currentPage != nil {
		page := *b.currentPage
		sc.CurrentPage = &page
	}
	return sc
}
