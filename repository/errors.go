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

package repository

import (
	"fmt"

	"github.com/mendersoftware/carts/model"
)

// NotFoundError reports a lookup of an entity that does not exist.
type NotFoundError struct {
	Entity string
	Field  string
	Value  string
}

func newCartNotFound(id model.CartID) *NotFoundError {
	return &NotFoundError{
		Entity: model.CartEntityName,
		Field:  "cartId",
		Value:  id.String(),
	}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No such entity with %s = %s", e.Field, e.Value)
}

// InvalidSearchError reports search criteria that cannot be evaluated:
// an unknown field or a malformed criterion. Field is empty for the latter.
type InvalidSearchError struct {
	Field string
	err   error
}

func (e *InvalidSearchError) Error() string {
	if e.Field != "" {
		return "Invalid search field: " + e.Field
	}
	return "Invalid search criteria: " + e.err.Error()
}

func (e *InvalidSearchError) Unwrap() error {
	return e.err
}
