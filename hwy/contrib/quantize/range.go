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

import (
	"math"

	"github.com/ajroetker/go-blockquant/hwy"
)

// ScanAbsMax finds the block element of largest magnitude, returning its
// signed value (not the magnitude) so the caller can tell which sign
// the block leaned toward. Ties keep whichever candidate is found first,
// which for a left-to-right scan favors an earlier positive value only if
// no later element has strictly greater magnitude.
//
// The magnitude reduction itself runs through hwy.Abs/hwy.Max so it
// vectorizes on non-scalar backends; only the final tie-break (which
// needs the original element, not just its magnitude) falls back to a
// scalar scan.
//
// The symmetric packers (q4gemm.packSymBlob, blockwise/qdq's symmetric
// path) derive scale from ScanMinMax's (lo, hi) pair instead of calling
// this directly: RangeSymmetric's tie-break always prefers the larger of
// the two endpoints, while ScanAbsMax's single left-to-right pass prefers
// whichever of two exactly-tied magnitudes it meets first. The two rules
// coincide except on an exact |min| == max tie, so substituting ScanAbsMax
// into the packers would silently change which element pins the scale on
// that boundary case. ScanAbsMax stays as the standalone amax primitive
// for callers that only need a magnitude, not a min/max pair.
func ScanAbsMax(block []float32) (signed float32) {
	if len(block) == 0 {
		return 0
	}

	lanes := hwy.NumLanes[float32]()
	running := hwy.Zero[float32]()

	i := 0
	for ; i+lanes <= len(block); i += lanes {
		running = hwy.Max(running, hwy.Abs(hwy.Load(block[i:])))
	}

	buf := make([]float32, lanes)
	hwy.Store(running, buf)
	amax := float32(0)
	for _, v := range buf {
		if v > amax {
			amax = v
		}
	}
	for ; i < len(block); i++ {
		if av := absF32(block[i]); av > amax {
			amax = av
		}
	}

	for _, v := range block {
		if absF32(v) == amax {
			return v
		}
	}
	return 0
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// ScanMinMax finds the smallest and largest elements of block, reducing
// through hwy.Min/hwy.Max a chunk at a time.
func ScanMinMax(block []float32) (lo, hi float32) {
	if len(block) == 0 {
		return 0, 0
	}

	lanes := hwy.NumLanes[float32]()
	runningLo := hwy.Set(block[0])
	runningHi := hwy.Set(block[0])

	i := 0
	for ; i+lanes <= len(block); i += lanes {
		v := hwy.Load(block[i:])
		runningLo = hwy.Min(runningLo, v)
		runningHi = hwy.Max(runningHi, v)
	}

	bufLo := make([]float32, lanes)
	bufHi := make([]float32, lanes)
	hwy.Store(runningLo, bufLo)
	hwy.Store(runningHi, bufHi)
	lo, hi = bufLo[0], bufHi[0]
	for j := 1; j < lanes; j++ {
		if bufLo[j] < lo {
			lo = bufLo[j]
		}
		if bufHi[j] > hi {
			hi = bufHi[j]
		}
	}

	for ; i < len(block); i++ {
		if block[i] < lo {
			lo = block[i]
		}
		if block[i] > hi {
			hi = block[i]
		}
	}
	return lo, hi
}

// RangeSymmetric derives the scale for a symmetric block: the endpoint of
// larger magnitude (preferring max on ties), m, sets scale = m / mid, so
// that quantizing m back out lands at the edge of the representable
// range. A block that is exactly all zeros yields scale == 0, which
// callers must treat as "multiply by zero, write zero" rather than
// divide.
func RangeSymmetric(min, max float32, traits BitTraits) (scale float32) {
	m := max
	if -min > max {
		m = min
	}
	return m / float32(traits.Mid)
}

// RangeAsymmetric derives (scale, zeroPoint) for an asymmetric block.
// The scanned range is first widened to include zero (so a block that
// never crosses zero still reserves a representable zero level), then
// scale maps the widened range onto [0, max], and zeroPoint is whichever
// quantized level dequantizes back to exactly 0.0.
func RangeAsymmetric(min, max float32, traits BitTraits) (scale float32, zeroPoint int) {
	if min > 0 {
		min = 0
	}
	if max < 0 {
		max = 0
	}

	scale = (max - min) / float32(traits.Max)

	// The zero point comes from the exact ratio -min*Max/(max-min) rather
	// than from -min/scale: scale is already rounded to float32, which can
	// pull an exact half level (4*15/8 = 7.5) just below it.
	zpFloat := float64(min)
	if scale != 0 {
		zpFloat = float64(-min) * float64(traits.Max) / float64(max-min)
	}

	switch {
	case zpFloat < 0:
		zeroPoint = 0
	case zpFloat > float64(traits.Max):
		zeroPoint = traits.Max
	default:
		zeroPoint = int(math.Round(zpFloat))
	}
	return scale, zeroPoint
}
