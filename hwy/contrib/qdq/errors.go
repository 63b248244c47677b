// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package qdq

import "errors"

// ErrInvalidShape is returned when the column count is not a multiple
// of pack_count (2 for 4-bit, 4 for 2-bit): the row-packing would spill
// across row boundaries.
var ErrInvalidShape = errors.New("qdq: column count must be a multiple of pack_count")

// ErrUnsupportedBitWidth is returned for any qbits other than 2 or 4.
var ErrUnsupportedBitWidth = errors.New("qdq: bit width must be 2 or 4")

// ErrNotImplemented is returned by QuantizeRowWise: the name is
// reserved by the source layout this package models, but no row-wise
// packing algorithm is specified.
var ErrNotImplemented = errors.New("qdq: row-wise quantization is not implemented")
