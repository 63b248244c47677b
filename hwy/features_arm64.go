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

//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

// HasARMFP16 reports ARMv8.2-A scalar+NEON FP16 support.
func HasARMFP16() bool {
	return cpu.ARM64.HasFPHP && cpu.ARM64.HasASIMDHP
}

// HasARMBF16 reports ARM BFloat16 NEON support, approximated as FP16 NEON
// (ASIMDHP) plus SVE2; the BF16 extension itself is not checked.
func HasARMBF16() bool {
	return cpu.ARM64.HasASIMDHP && cpu.ARM64.HasSVE2
}

// HasF16C is false on arm64 (F16C is an x86-specific instruction).
func HasF16C() bool {
	return false
}

// HasAVX512FP16 is false on arm64 (AVX-512 is x86-specific).
func HasAVX512FP16() bool {
	return false
}

// HasAVX512BF16 is false on arm64 (AVX-512 is x86-specific).
func HasAVX512BF16() bool {
	return false
}
