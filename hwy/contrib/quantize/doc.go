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

// Package quantize holds the leaf primitives every low-bit packer in this
// module builds on: compile-time bit-width traits and the two range
// reduction routines that turn a scanned [min, max] into a (scale, zero
// point) pair.
//
// # Bit traits
//
// BitTraits[qbits] gives the maximum representable level, the symmetric
// midpoint, and how many quantized values share one output byte:
//
//	t := quantize.TraitsFor(4)
//	t.Max        // 15
//	t.Mid        // 8
//	t.PackCount  // 2
//
// # Range reduction
//
// RangeSymmetric sets the scale from the larger-magnitude endpoint m as
// m/mid: level 0 dequantizes to exactly -m, and m itself quantizes one
// level past the top and is clamped to it. RangeAsymmetric
// additionally anchors a zero point so that the value 0.0 round-trips
// exactly through quantize/dequantize.
package quantize
