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

package q4gemm

import "github.com/samber/lo"

// QType selects which of the six Q4Gemm block layouts a buffer uses.
type QType int

const (
	// Sym is 32-wide symmetric: float32 scale only, no zero point.
	Sym QType = iota
	// Asym is 32-wide asymmetric: float32 scale plus a uint8 zero point.
	Asym
	// Sym64 is 64-wide symmetric.
	Sym64
	// Sym128 is 128-wide symmetric.
	Sym128
	// SymF16 is Sym with the scale stored as an IEEE 754 binary16 value
	// instead of float32, halving the per-block metadata overhead for
	// callers willing to accept binary16's reduced scale precision.
	SymF16
	// AsymF16 is Asym with a binary16 scale.
	AsymF16
)

// String renders a QType the way the CLI and test failure messages
// name it.
func (q QType) String() string {
	switch q {
	case Sym:
		return "sym"
	case Asym:
		return "asym"
	case Sym64:
		return "sym64"
	case Sym128:
		return "sym128"
	case SymF16:
		return "symf16"
	case AsymF16:
		return "asymf16"
	default:
		return "unknown"
	}
}

// blockDesc names a block layout's geometry; it carries no quantization
// semantics of its own.
type blockDesc struct {
	BlkLen     int
	Asymmetric bool
	ScaleF16   bool // scale stored as binary16 (2 bytes) instead of float32 (4 bytes)
	BlobSize   int  // bytes: scale + optional 1-byte zp + BlkLen/2 payload
}

var descriptors = map[QType]blockDesc{
	Sym:     {BlkLen: 32, Asymmetric: false, BlobSize: 4 + 16},
	Asym:    {BlkLen: 32, Asymmetric: true, BlobSize: 4 + 1 + 16},
	Sym64:   {BlkLen: 64, Asymmetric: false, BlobSize: 4 + 32},
	Sym128:  {BlkLen: 128, Asymmetric: false, BlobSize: 4 + 64},
	SymF16:  {BlkLen: 32, Asymmetric: false, ScaleF16: true, BlobSize: 2 + 16},
	AsymF16: {BlkLen: 32, Asymmetric: true, ScaleF16: true, BlobSize: 2 + 1 + 16},
}

// descFor returns the block descriptor for qtype and whether qtype is
// recognized. Unknown values fall back to the Asym descriptor (mirroring
// the reference implementation's switch-default) but ok is false so
// callers can distinguish "no kernel for this format" from Asym itself.
func descFor(qtype QType) (d blockDesc, ok bool) {
	d, ok = descriptors[qtype]
	if !ok {
		return descriptors[Asym], false
	}
	return d, true
}

// SupportedQTypes lists the recognized QType values, for CLI help text
// and diagnostics that need to enumerate what this build can pack.
func SupportedQTypes() []QType {
	return lo.Keys(descriptors)
}

// divRoundUp computes ceil(a/b) for positive b.
func divRoundUp(a, b int) int {
	return (a + b - 1) / b
}
