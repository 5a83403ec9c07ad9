package parse

import "testing"

func TestTokenize(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantRecords int
		wantBodies  []int // body line count per record
	}{
		{
			name:        "empty input",
			text:        "",
			wantRecords: 0,
		},
		{
			name:        "single dash header",
			text:        "12/01/2024, 14:03 - Alice: Hello\n",
			wantRecords: 1,
			wantBodies:  []int{0},
		},
		{
			name:        "single bracketed header",
			text:        "[12/1/24, 2:03:09 PM] Alice: Hello\n",
			wantRecords: 1,
			wantBodies:  []int{0},
		},
		{
			name: "continuation lines attach to previous record",
			text: "12/01/2024, 14:03 - Alice: First line\nsecond line\nthird line\n12/01/2024, 14:04 - Bob: Reply\n",
			wantRecords: 2,
			wantBodies:  []int{2, 0},
		},
		{
			name: "preamble before first header is discarded",
			text: "export metadata\nmore noise\n12/01/2024, 14:03 - Alice: Hello\n",
			wantRecords: 1,
			wantBodies:  []int{0},
		},
		{
			name:        "direction marks before date are stripped",
			text:        "‎[12/1/24, 2:03:09 PM] Alice: ‎image omitted\n",
			wantRecords: 1,
		},
		{
			name:        "crlf line endings",
			text:        "12/01/2024, 14:03 - Alice: Hello\r\n12/01/2024, 14:04 - Bob: Hi\r\n",
			wantRecords: 2,
			wantBodies:  []int{0, 0},
		},
		{
			name:        "blank continuation line kept in body",
			text:        "12/01/2024, 14:03 - Alice: Hello\n\nmore\n",
			wantRecords: 1,
			wantBodies:  []int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := Tokenize(tt.text)
			if len(records) != tt.wantRecords {
				t.Fatalf("Tokenize() got %d records, want %d", len(records), tt.wantRecords)
			}
			for i, want := range tt.wantBodies {
				if got := len(records[i].Body); got != want {
					t.Errorf("record[%d] body lines = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestTokenizeLineNumbers(t *testing.T) {
	text := "noise\n12/01/2024, 14:03 - Alice: a\ncont\n12/01/2024, 14:04 - Bob: b\n"
	records := Tokenize(text)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Line != 2 {
		t.Errorf("record[0].Line = %d, want 2", records[0].Line)
	}
	if records[1].Line != 4 {
		t.Errorf("record[1].Line = %d, want 4", records[1].Line)
	}
}

func TestSplitHeader(t *testing.T) {
	tests := []struct {
		line     string
		wantDate string
		wantTime string
		wantRest string
		wantOK   bool
	}{
		{"12/01/2024, 14:03 - Alice: Hello", "12/01/2024", "14:03", "Alice: Hello", true},
		{"[12/1/24, 2:03:09 PM] Alice: Hello", "12/1/24", "2:03:09 PM", "Alice: Hello", true},
		{"[12/1/24, 2:03:09 PM] Alice: Hi", "12/1/24", "2:03:09 PM", "Alice: Hi", true},
		{"just a body line", "", "", "", false},
		{"12/01/2024 missing time - Alice: x", "", "", "", false},
	}

	for _, tt := range tests {
		date, tm, rest, ok := splitHeader(tt.line)
		if ok != tt.wantOK {
			t.Errorf("splitHeader(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if date != tt.wantDate || tm != tt.wantTime || rest != tt.wantRest {
			t.Errorf("splitHeader(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.line, date, tm, rest, tt.wantDate, tt.wantTime, tt.wantRest)
		}
	}
}
