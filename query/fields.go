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

package query

import (
	"fmt"

	"github.com/mendersoftware/carts/model"
)

// Kind selects how field values are compared.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTime
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindTime:
		return "time"
	case KindBool:
		return "bool"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field describes a searchable field of T. Value returns the field value of
// an entity or nil if the entity has none; returned values must be of the
// Go type matching Kind: string, float64 (or any integer type), time.Time
// or bool.
type Field[T any] struct {
	Kind  Kind
	Value func(*T) interface{}
}

// Fields maps field names to their accessors; it is the set of names a
// search may refer to.
type Fields[T any] map[string]Field[T]

// InvalidFieldError is returned when a search refers to a field outside
// the known set.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field: %q", e.Field)
}

// InvalidConditionError is returned for a filter condition type the engine
// cannot evaluate.
type InvalidConditionError struct {
	Field     string
	Condition model.ConditionType
}

func (e *InvalidConditionError) Error() string {
	return fmt.Sprintf("invalid condition type %q for field %q", e.Condition, e.Field)
}
