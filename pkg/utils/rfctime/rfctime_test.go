package rfctime_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/taskboard/taskboard/pkg/utils/rfctime"
	"github.com/taskboard/taskboard/pkg/utils/try"
)

func TestParseDate(t *testing.T) {
	for name, testcase := range map[string]struct {
		when string
		then string
	}{
		"full-date":                  {when: "2025-06-29", then: "2025-06-29"},
		"compact date":               {when: "19900101", then: "1990-01-01"},
		"date-time takes local date": {when: "2025-06-20T23:30:00+09:00", then: "2025-06-20"},
		"date-time in Z":             {when: "2025-06-20T10:00:00Z", then: "2025-06-20"},
	} {
		t.Run(name, func(t *testing.T) {
			d := try.To(rfctime.ParseDate(testcase.when)).OrFatal(t)
			if got := d.String(); got != testcase.then {
				t.Errorf("got %s, want %s", got, testcase.then)
			}
		})
	}

	for _, bad := range []string{"", "06/29/2025", "2025-13-01", "2025629"} {
		t.Run("it rejects "+bad, func(t *testing.T) {
			if _, err := rfctime.ParseDate(bad); err == nil {
				t.Errorf("expected error for %q", bad)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		D *rfctime.Date `json:"d,omitempty"`
	}

	t.Run("it round-trips as full-date", func(t *testing.T) {
		d := rfctime.NewDate(time.Date(2025, 6, 29, 13, 0, 0, 0, time.UTC))
		b := try.To(json.Marshal(payload{D: &d})).OrFatal(t)
		if string(b) != `{"d":"2025-06-29"}` {
			t.Errorf("unexpected json: %s", b)
		}

		var p payload
		if err := json.Unmarshal(b, &p); err != nil {
			t.Fatal(err)
		}
		if !p.D.Equal(&d) {
			t.Errorf("got %v, want %v", p.D, d)
		}
	})

	t.Run("null is nil", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"d":null}`), &p); err != nil {
			t.Fatal(err)
		}
		if p.D != nil {
			t.Errorf("expected nil, got %v", p.D)
		}
	})

	t.Run("malformed date is an error", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"d":"tomorrow"}`), &p); err == nil {
			t.Error("expected error")
		}
	})
}

func TestRFC3339JSON(t *testing.T) {
	ts := try.To(rfctime.ParseRFC3339DateTime("2025-06-24T09:00:00Z")).OrFatal(t)
	b := try.To(json.Marshal(ts)).OrFatal(t)
	if string(b) != `"2025-06-24T09:00:00+00:00"` {
		t.Errorf("unexpected json: %s", b)
	}

	var back rfctime.RFC3339
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(&ts) {
		t.Errorf("got %s, want %s", back, ts)
	}
}
