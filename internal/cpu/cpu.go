// Package cpu detects the SIMD extensions used to pick biquad block kernels.
//
// Detection runs once and is cached. Tests can pin a feature set with
// SetForcedFeatures.
package cpu

import (
	"runtime"
	"sync"

	xcpu "golang.org/x/sys/cpu"
)

// SIMDLevel names the instruction set a kernel requires.
type SIMDLevel int

const (
	// SIMDNone marks a pure Go kernel that runs everywhere.
	SIMDNone SIMDLevel = iota
	SIMDSSE2
	SIMDAVX2
	SIMDNEON
)

// String returns a human-readable name for the level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX2:
		return "AVX2"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes the CPU capabilities relevant to kernel selection.
type Features struct {
	HasSSE2 bool
	HasAVX2 bool
	HasNEON bool

	// ForceGeneric restricts selection to SIMDNone kernels.
	ForceGeneric bool

	Architecture string
}

var (
	detectOnce sync.Once
	detected   Features

	forcedMu sync.RWMutex
	forced   *Features
)

// DetectFeatures returns the features of the running CPU, or the forced
// set if one is installed.
func DetectFeatures() Features {
	forcedMu.RLock()
	f := forced
	forcedMu.RUnlock()

	if f != nil {
		return *f
	}

	detectOnce.Do(func() {
		detected = detectFeaturesImpl()
	})

	return detected
}

// detectFeaturesImpl reads the host features through golang.org/x/sys/cpu,
// which declares the X86 and ARM64 sets on every architecture and leaves
// them zero where they do not apply.
func detectFeaturesImpl() Features {
	f := Features{Architecture: runtime.GOARCH}

	switch runtime.GOARCH {
	case "amd64":
		// SSE2 is part of the x86-64 baseline and always reported.
		f.HasSSE2 = xcpu.X86.HasSSE2
		f.HasAVX2 = xcpu.X86.HasAVX2
	case "arm64":
		f.HasNEON = xcpu.ARM64.HasASIMD
	}

	return f
}

// SetForcedFeatures overrides detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMu.Lock()
	defer forcedMu.Unlock()

	forced = &f
}

// ResetDetection removes a forced feature set.
func ResetDetection() {
	forcedMu.Lock()
	defer forcedMu.Unlock()

	forced = nil
}

// Supports reports whether features can run a kernel built for level.
func Supports(features Features, level SIMDLevel) bool {
	if features.ForceGeneric {
		return level == SIMDNone
	}

	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return features.HasSSE2
	case SIMDAVX2:
		return features.HasAVX2
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}
