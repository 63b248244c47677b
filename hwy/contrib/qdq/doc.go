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

// Package qdq implements the row-major, row-packed quantization layout
// consumed by graph-level Quantize/Dequantize operator pairs. Unlike
// blockwise's column-major transposed output, QDQ keeps the source's
// [rows, cols] logical shape: each block still runs down a column
// (block_size rows), but the bit-packing groups pack_count adjacent
// columns of the same row into one byte.
//
// pack_count is 2 for 4-bit and 4 for 2-bit; QuantizeColumnWise requires
// cols to be a multiple of pack_count so no row's packing spills into
// the next row.
package qdq
