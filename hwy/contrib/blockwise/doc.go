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

// Package blockwise implements the generic 4-bit blockwise quantizer: a
// row-major float32 matrix is cut into [B,1] (columnwise) or [1,B]
// (rowwise) blocks, each block reduced to its own (scale, zero point),
// and the quantized nibbles written to a column-major packed buffer
// consumed by a fused matmul kernel downstream.
//
// Every quantization axis (the direction the blocks run along, B
// elements deep) is handled uniformly as a single "q axis" with an
// orthogonal "other axis" of width one block each; columnwise and
// rowwise differ only in which matrix dimension plays which role. The
// packed buffer is always laid out [qRows, metaOther] column-major,
// where qRows = ceil(metaQ*B*qbits/8) packs two 4-bit values per byte
// along the q axis.
//
// Tiling pairs up to pack_count (2, for 4-bit) consecutive q-axis
// meta-blocks per tile so that their zero points share one byte.
package blockwise
