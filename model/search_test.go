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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionTypeCanonical(t *testing.T) {
	testCases := map[ConditionType]ConditionType{
		"":        CondEq,
		"EQ":      CondEq,
		"moreq":   CondGteq,
		"from":    CondGteq,
		"to":      CondLteq,
		"NotNull": CondNotNull,
		"nlike":   CondNlike,
		"bogus":   "bogus",
	}
	for in, out := range testCases {
		assert.Equal(t, out, in.Canonical(), "condition %q", in)
	}
}

func TestSortDirectionCanonical(t *testing.T) {
	assert.Equal(t, SortAsc, SortDirection("").Canonical())
	assert.Equal(t, SortDesc, SortDirection("desc").Canonical())
	assert.Equal(t, SortDirection("UP"), SortDirection("up").Canonical())
}

func intPtr(i int) *int {
	return &i
}

func TestSearchCriteriaValidate(t *testing.T) {
	testCases := map[string]struct {
		sc  SearchCriteria
		err string
	}{
		"empty": {},
		"ok": {
			sc: SearchCriteria{
				FilterGroups: []FilterGroup{
					{Filters: []Filter{
						{Field: "grand_total", Value: 15, ConditionType: "gteq"},
						{Field: "subtotal", Value: 20},
					}},
					{Filters: []Filter{{Field: "masked_id", ConditionType: "null"}}},
				},
				SortOrders:  []SortOrder{{Field: "subtotal", Direction: "desc"}},
				PageSize:    intPtr(0),
				CurrentPage: intPtr(1),
			},
		},
		"empty group": {
			sc: SearchCriteria{FilterGroups: []FilterGroup{{}}},
		},
		"negative page size": {
			sc:  SearchCriteria{PageSize: intPtr(-1)},
			err: "page_size: must be no less than 0.",
		},
		"page zero": {
			sc:  SearchCriteria{CurrentPage: intPtr(0)},
			err: "current_page: must be no less than 1.",
		},
		"bad condition": {
			sc: SearchCriteria{FilterGroups: []FilterGroup{
				{Filters: []Filter{{Field: "id", Value: 1, ConditionType: "around"}}},
			}},
			err: "condition_type: must be a valid value",
		},
		"missing field": {
			sc: SearchCriteria{FilterGroups: []FilterGroup{
				{Filters: []Filter{{Value: 1}}},
			}},
			err: "field: cannot be blank",
		},
		"missing value": {
			sc: SearchCriteria{FilterGroups: []FilterGroup{
				{Filters: []Filter{{Field: "id", ConditionType: "in"}}},
			}},
			err: `value: required by condition "in".`,
		},
		"bad direction": {
			sc:  SearchCriteria{SortOrders: []SortOrder{{Field: "id", Direction: "up"}}},
			err: "direction: must be a valid value",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := tc.sc.Validate()
			if tc.err == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.err)
			}
		})
	}
}
