package humastar

import "testing"

func TestParseSignals(t *testing.T) {
	signals, err := ParseSignals([]byte(`{
		"mapname": "Crime overview",
		"mapzoom": 11,
		"heatradius": 17.5,
		"showheat": true,
		"tooltipfields": ["ward", "month"]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	if got := signals.String("mapname"); got != "Crime overview" {
		t.Fatalf("mapname=%q, want Crime overview", got)
	}
	if got := signals.Int("mapzoom"); got != 11 {
		t.Fatalf("mapzoom=%d, want 11", got)
	}
	if got := signals.Float("heatradius"); got != 17.5 {
		t.Fatalf("heatradius=%v, want 17.5", got)
	}
	if !signals.Bool("showheat") {
		t.Fatal("showheat=false, want true")
	}
	fields := signals.Strings("tooltipfields")
	if len(fields) != 2 || fields[0] != "ward" || fields[1] != "month" {
		t.Fatalf("tooltipfields=%v, want [ward month]", fields)
	}
}

func TestSignalsStringsFromCSV(t *testing.T) {
	signals, err := ParseSignals([]byte(`{"popupfields": "ward, month ,count"}`))
	if err != nil {
		t.Fatal(err)
	}
	fields := signals.Strings("popupfields")
	if len(fields) != 3 || fields[0] != "ward" || fields[1] != "month" || fields[2] != "count" {
		t.Fatalf("popupfields=%v, want [ward month count]", fields)
	}
}

func TestSignalsMissingKeys(t *testing.T) {
	signals := Signals{"present": ""}
	if signals.String("absent") != "" || signals.Int("absent") != 0 || signals.Bool("absent") {
		t.Fatal("missing keys should yield zero values")
	}
	if signals.Strings("absent") != nil {
		t.Fatal("missing key should yield nil slice")
	}
	if !signals.Has("present") {
		t.Fatal("Has should see empty-valued signals")
	}
	if signals.Has("absent") {
		t.Fatal("Has should not see missing signals")
	}
}

func TestParseSignalsInvalid(t *testing.T) {
	if _, err := ParseSignals([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}
