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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

// HasF16C reports whether the CPU can convert between float16 and float32
// in hardware (VCVTPH2PS/VCVTPS2PH). x/sys/cpu exposes no F16C flag, so
// AVX2 support is used as a proxy.
func HasF16C() bool {
	return cpu.X86.HasAVX2
}

// HasAVX512FP16 reports whether the CPU exposes native AVX-512 FP16 lanes.
// x/sys/cpu has no direct flag for this extension yet; AVX-512F plus
// AVX-512BW is used as a conservative proxy for "wide float ops available".
func HasAVX512FP16() bool {
	return cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW
}

// HasAVX512BF16 reports whether the CPU supports AVX-512 BF16 lanes.
func HasAVX512BF16() bool {
	return cpu.X86.HasAVX512F && cpu.X86.HasAVX512VL
}

// HasARMFP16 is false on amd64 (ARM FP16 is ARM-specific).
func HasARMFP16() bool {
	return false
}

// HasARMBF16 is false on amd64 (ARM BF16 is ARM-specific).
func HasARMBF16() bool {
	return false
}
