package gsutax

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2021-03-15", want: NewDate(2021, time.March, 15)},
		{in: "2021-3-5", want: NewDate(2021, time.March, 5)},
		{in: " 2021-03-15 ", want: NewDate(2021, time.March, 15)},
		{in: "15.03.2021", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseDate(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2021, time.March, 15)
	b := NewDate(2021, time.March, 16)

	if !a.Before(b) {
		t.Errorf("%v should be before %v", a, b)
	}
	if !b.After(a) {
		t.Errorf("%v should be after %v", b, a)
	}
	if a.Before(a) || a.After(a) {
		t.Errorf("%v should neither be before nor after itself", a)
	}
}

func TestDateNormalization(t *testing.T) {
	// Day zero normalizes to the last day of the previous month.
	got := NewDate(2021, time.March, 0)
	want := NewDate(2021, time.February, 28)
	if got != want {
		t.Errorf("NewDate(2021, March, 0) = %v, want %v", got, want)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2021, time.December, 31)

	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if want := `"2021-12-31"`; string(data) != want {
		t.Errorf("MarshalJSON() = %s, want %s", data, want)
	}

	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}

	if back.Year() != 2021 {
		t.Errorf("Year() = %d, want 2021", back.Year())
	}
}
