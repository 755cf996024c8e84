// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package target

import "testing"

func TestPointerWidth(t *testing.T) {
	tests := []struct {
		arch Arch
		want uint32
	}{
		{Arch386, 4},
		{ArchAMD64, 8},
		{ArchARM, 4},
		{ArchARM64, 8},
		{ArchRISCV64, 8},
		{ArchMIPS64, 8},
		{ArchPPC64, 8},
		{ArchS390X, 8},
		{ArchWASM, 4},
	}
	for _, test := range tests {
		ctx := New(OSLinux, test.arch, CharSignednessDefault)
		if got := ctx.PointerWidth(); got != test.want {
			t.Errorf("PointerWidth(%v) = %d, want %d", test.arch, got, test.want)
		}
	}
}

func TestLongWidth(t *testing.T) {
	tests := []struct {
		name string
		os   OS
		arch Arch
		want uint32
	}{
		{"linux/amd64 is LP64", OSLinux, ArchAMD64, 8},
		{"linux/386 stays 32-bit", OSLinux, Arch386, 4},
		{"darwin/arm64 is LP64", OSDarwin, ArchARM64, 8},
		{"freebsd/amd64 is LP64", OSFreeBSD, ArchAMD64, 8},
		{"windows/amd64 is LLP64", OSWindows, ArchAMD64, 4},
		{"windows/386 stays 32-bit", OSWindows, Arch386, 4},
		{"uefi/amd64 stays 32-bit", OSUEFI, ArchAMD64, 4},
	}
	for _, test := range tests {
		ctx := New(test.os, test.arch, CharSignednessDefault)
		if got := ctx.LongWidth(); got != test.want {
			t.Errorf("%s: LongWidth() = %d, want %d", test.name, got, test.want)
		}
	}
}

func TestCharIsSigned(t *testing.T) {
	tests := []struct {
		name string
		arch Arch
		sign CharSignedness
		want bool
	}{
		{"amd64 default signed", ArchAMD64, CharSignednessDefault, true},
		{"arm default unsigned", ArchARM, CharSignednessDefault, false},
		{"arm64 default unsigned", ArchARM64, CharSignednessDefault, false},
		{"ppc64 default unsigned", ArchPPC64, CharSignednessDefault, false},
		{"amd64 forced unsigned", ArchAMD64, CharSignednessUnsigned, false},
		{"arm forced signed", ArchARM, CharSignednessSigned, true},
	}
	for _, test := range tests {
		ctx := New(OSLinux, test.arch, test.sign)
		if got := ctx.CharIsSigned(); got != test.want {
			t.Errorf("%s: CharIsSigned() = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestNative(t *testing.T) {
	ctx := Native()
	if ctx.PointerWidth() != 4 && ctx.PointerWidth() != 8 {
		t.Errorf("Native().PointerWidth() = %d, want 4 or 8", ctx.PointerWidth())
	}
	if ctx.LongWidth() != 4 && ctx.LongWidth() != 8 {
		t.Errorf("Native().LongWidth() = %d, want 4 or 8", ctx.LongWidth())
	}
}

func TestContextString(t *testing.T) {
	ctx := New(OSLinux, ArchAMD64, CharSignednessDefault)
	if got, want := ctx.String(), "linux/amd64"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
