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

package hwy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndZero(t *testing.T) {
	v := Set(float32(3))
	buf := make([]float32, len(v.data))
	Store(v, buf)
	for _, x := range buf {
		assert.Equal(t, float32(3), x)
	}

	z := Zero[float32]()
	bufZ := make([]float32, len(z.data))
	Store(z, bufZ)
	for _, x := range bufZ {
		assert.Equal(t, float32(0), x)
	}
}

func TestArithmeticOps(t *testing.T) {
	a := Load([]float32{1, 2, 3, 4})
	b := Load([]float32{10, 20, 30, 40})

	sum := make([]float32, len(a.data))
	Store(Add(a, b), sum)
	assert.Equal(t, []float32{11, 22, 33, 44}, sum)

	diff := make([]float32, len(a.data))
	Store(Sub(b, a), diff)
	assert.Equal(t, []float32{9, 18, 27, 36}, diff)

	prod := make([]float32, len(a.data))
	Store(Mul(a, b), prod)
	assert.Equal(t, []float32{10, 40, 90, 160}, prod)

	quot := make([]float32, len(b.data))
	Store(Div(b, a), quot)
	assert.Equal(t, []float32{10, 10, 10, 10}, quot)

	neg := make([]float32, len(a.data))
	Store(Neg(a), neg)
	assert.Equal(t, []float32{-1, -2, -3, -4}, neg)
}

func TestSqrt(t *testing.T) {
	v := Load([]float32{4, 9, 16, 25})
	out := make([]float32, len(v.data))
	Store(Sqrt(v), out)
	assert.Equal(t, []float32{2, 3, 4, 5}, out)
}

func TestFMA(t *testing.T) {
	a := Load([]float32{1, 2, 3})
	b := Load([]float32{2, 2, 2})
	c := Load([]float32{1, 1, 1})
	out := make([]float32, len(a.data))
	Store(FMA(a, b, c), out)
	assert.Equal(t, []float32{3, 5, 7}, out)
}

func TestReduceSum(t *testing.T) {
	// Load keeps only MaxLanes[float32]() values: 4 at the 16-byte width
	// every dispatch target selects, so the 5 is not loaded.
	v := Load([]float32{1, 2, 3, 4, 5})
	assert.Equal(t, float32(10), ReduceSum(v))
}

func TestComparisonMasks(t *testing.T) {
	a := Load([]float32{1, 5, 3})
	b := Load([]float32{2, 4, 3})

	lt := LessThan(a, b)
	assert.Equal(t, []bool{true, false, false}, lt.bits)

	gt := GreaterThan(a, b)
	assert.Equal(t, []bool{false, true, false}, gt.bits)

	eq := Equal(a, b)
	assert.Equal(t, []bool{false, false, true}, eq.bits)
}

func TestIfThenElse(t *testing.T) {
	mask := Mask[float32]{bits: []bool{true, false, true}}
	a := Load([]float32{1, 2, 3})
	b := Load([]float32{10, 20, 30})

	out := make([]float32, 3)
	Store(IfThenElse(mask, a, b), out)
	assert.Equal(t, []float32{1, 20, 3}, out)
}

func TestMaskLoadStore(t *testing.T) {
	mask := Mask[float32]{bits: []bool{true, false, true}}
	src := []float32{7, 8, 9}

	loaded := MaskLoad(mask, src)
	buf := make([]float32, 3)
	Store(loaded, buf)
	assert.Equal(t, []float32{7, 0, 9}, buf)

	dst := make([]float32, 3)
	MaskStore(mask, Load(src), dst)
	assert.Equal(t, []float32{7, 0, 9}, dst)
}
