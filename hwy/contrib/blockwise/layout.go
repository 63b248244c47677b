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

package blockwise

// axisIndex splits a source (row, col) pair into (qIdx, otherIdx): the
// position along the quantization axis and the position along the
// orthogonal axis. Rowwise is columnwise transposed, so this one
// function serves both.
func axisIndex(columnwise bool, row, col int) (qIdx, otherIdx int) {
	if columnwise {
		return row, col
	}
	return col, row
}

// sourceIndex is the inverse of axisIndex.
func sourceIndex(columnwise bool, qIdx, otherIdx int) (row, col int) {
	if columnwise {
		return qIdx, otherIdx
	}
	return otherIdx, qIdx
}

// packedByte locates the byte and nibble-select (false=low, true=high)
// holding the packed payload nibble for a given q-axis/other-axis pair.
func packedByte(qRows, qIdx, otherIdx int) (byteIdx int, high bool) {
	return otherIdx*qRows + qIdx/2, qIdx%2 == 1
}

// scaleIndex is the column-major index into the scales slice for a
// given meta q-axis/other-axis pair.
func scaleIndex(metaQ, qMetaIdx, otherMetaIdx int) int {
	return otherMetaIdx*metaQ + qMetaIdx
}

// zpByte locates the byte and nibble-select holding the zero point for
// a given meta q-axis/other-axis pair; zero points pack pack_count per
// byte along the q-meta axis, one group of bytes per other-meta index.
func zpByte(zpPerOther, qMetaIdx, otherMetaIdx int) (byteIdx int, high bool) {
	return otherMetaIdx*zpPerOther + qMetaIdx/2, qMetaIdx%2 == 1
}
