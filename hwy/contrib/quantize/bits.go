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

package quantize

// BitTraits holds the compile-time constants implied by a bit width: how
// high a quantized level can go, where the symmetric midpoint sits, and how
// many quantized values are packed into a single output byte.
type BitTraits struct {
	QBits     int
	Max       int // (1<<QBits) - 1
	Mid       int // 1 << (QBits-1)
	PackCount int // 8 / QBits, only meaningful for QBits in {2,4,8}
}

// TraitsFor returns the BitTraits for qbits. Only 2, 4, and 8 are valid;
// any other width panics, since every caller in this module resolves qbits
// from a closed set of supported formats before reaching here.
func TraitsFor(qbits int) BitTraits {
	switch qbits {
	case 2, 4, 8:
		return BitTraits{
			QBits:     qbits,
			Max:       (1 << qbits) - 1,
			Mid:       1 << (qbits - 1),
			PackCount: 8 / qbits,
		}
	default:
		panic("quantize: unsupported bit width")
	}
}
