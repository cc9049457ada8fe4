package date

import (
	"testing"
	"time"
)

func TestParseLayout(t *testing.T) {
	testCases := []struct {
		name    string
		layout  string
		in      string
		want    Date
		wantErr bool
	}{
		{
			name:   "default export layout",
			layout: DefaultLayout,
			in:     "2022/08/25",
			want:   New(2022, time.August, 25),
		},
		{
			name:   "us layout",
			layout: "01/02/2006",
			in:     "01/03/2023",
			want:   New(2023, time.January, 3),
		},
		{
			name:   "iso layout",
			layout: DateFormat,
			in:     "2015-01-01",
			want:   New(2015, time.January, 1),
		},
		{
			name:    "wrong separator",
			layout:  DefaultLayout,
			in:      "2022-08-25",
			wantErr: true,
		},
		{
			name:    "empty",
			layout:  DefaultLayout,
			in:      "",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLayout(tc.layout, tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseLayout(%q, %q) expected an error, got none", tc.layout, tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLayout(%q, %q) unexpected error: %v", tc.layout, tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseLayout(%q, %q) = %v, want %v", tc.layout, tc.in, got, tc.want)
			}
		})
	}
}

func TestOFX(t *testing.T) {
	d := New(2022, time.August, 25)
	if got, want := d.OFX(), "20220825000000"; got != want {
		t.Errorf("OFX() = %q, want %q", got, want)
	}
}

func TestMinMax(t *testing.T) {
	a := MustParse("2023-01-03")
	b := MustParse("2023-01-30")
	if Min(a, b) != a || Min(b, a) != a {
		t.Errorf("Min(%v, %v) should be %v", a, b, a)
	}
	if Max(a, b) != b || Max(b, a) != b {
		t.Errorf("Max(%v, %v) should be %v", a, b, b)
	}
	if Min(a, a) != a {
		t.Errorf("Min must be reflexive")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2023-01-25")
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `"2023-01-25"` {
		t.Errorf("MarshalJSON = %s", data)
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
