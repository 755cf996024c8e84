// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import "testing"

func TestListReportAppendsInOrder(t *testing.T) {
	var list List
	site := Site{SourceID: 1, Location: "a.c:1"}

	site.Report(&list, TagMissingTypeSpecifier, nil)
	site.Report(&list, TagExpectedToken, ExpectedActual{Expected: ";", Actual: "}"})

	if len(list.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(list.Records))
	}
	if list.Records[0].Tag != TagMissingTypeSpecifier {
		t.Errorf("Records[0].Tag = %v, want TagMissingTypeSpecifier", list.Records[0].Tag)
	}
	if list.Records[1].Tag != TagExpectedToken {
		t.Errorf("Records[1].Tag = %v, want TagExpectedToken", list.Records[1].Tag)
	}
	if !list.HasErrors() {
		t.Errorf("HasErrors() = false, want true")
	}
}

func TestListEmptyHasNoErrors(t *testing.T) {
	var list List
	if list.HasErrors() {
		t.Errorf("HasErrors() on empty list = true, want false")
	}
}

func TestRecordStringIncludesPayload(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		want string
	}{
		{
			name: "no payload",
			r:    Record{Tag: TagMissingTypeSpecifier, Location: "a.c:1"},
			want: "a.c:1: missing type specifier",
		},
		{
			name: "expected/actual payload",
			r: Record{Tag: TagExpectedToken, Location: "a.c:2", Extra: ExpectedActual{
				Expected: ";", Actual: "}",
			}},
			want: "a.c:2: expected token: expected ;, got }",
		},
	}
	for _, test := range tests {
		if got := test.r.String(); got != test.want {
			t.Errorf("%s: String() = %q, want %q", test.name, got, test.want)
		}
	}
}

func TestTagStringUnknownTag(t *testing.T) {
	if got := Tag(9999).String(); got == "" {
		t.Errorf("String() on unknown tag returned empty string")
	}
}
