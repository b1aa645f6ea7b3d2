package catalog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const stationsJSON = `[
  {
    "metrostationcode": "1A1",
    "metrostationname": "SAB Bank",
    "metrostationnamear": "بنك ساب",
    "metroline": "Line1",
    "stationseq": 1,
    "geo_point_2d": {"lat": 24.60, "lon": 46.70}
  },
  {
    "metrostationcode": "1A2",
    "metrostationname": "KAFD Station",
    "metrostationnamear": "محطة كافد",
    "metroline": "Line1",
    "stationseq": "2",
    "geoshape": {"geometry": {"coordinates": [46.71, 24.61]}}
  },
  {
    "metrostationcode": "1A3",
    "metrostationname": "No Coordinates",
    "metrostationnamear": "",
    "metroline": "Line1",
    "stationseq": 3
  },
  {
    "metrostationcode": "2B1",
    "metrostationname": "Interchange",
    "metrostationnamear": "محطة التقاطع",
    "metroline": "Line2",
    "geo_point_2d": {"lat": 24.62, "lon": 46.72}
  },
  {
    "metrostationcode": "1A1",
    "metrostationname": "Duplicate Of SAB",
    "metrostationnamear": "",
    "metroline": "Line1",
    "stationseq": 9,
    "geo_point_2d": {"lat": 24.99, "lon": 46.99}
  }
]`

func TestLoad(t *testing.T) {
	path := writeFixture(t, "stations.json", stationsJSON)

	c, err := Load(path, discardLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// 5 records: one dropped for missing coordinates, one duplicate id.
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	// geo_point_2d shape.
	sab, ok := c.ByID("1A1")
	if !ok {
		t.Fatal("1A1 missing")
	}
	if sab.Lat != 24.60 || sab.Lon != 46.70 {
		t.Errorf("1A1 coords = (%v, %v)", sab.Lat, sab.Lon)
	}
	if sab.NameEN != "SAB Bank" {
		t.Errorf("duplicate id should keep the first record, got %q", sab.NameEN)
	}
	if !sab.HasSeq || sab.Seq != 1 {
		t.Errorf("1A1 seq = %d (has=%v), want 1", sab.Seq, sab.HasSeq)
	}

	// geoshape fallback: coordinates arrive as [lon, lat].
	kafd, ok := c.ByID("1A2")
	if !ok {
		t.Fatal("1A2 missing")
	}
	if kafd.Lat != 24.61 || kafd.Lon != 46.71 {
		t.Errorf("1A2 coords = (%v, %v), want (24.61, 46.71)", kafd.Lat, kafd.Lon)
	}
	// String ordinal coerced.
	if !kafd.HasSeq || kafd.Seq != 2 {
		t.Errorf("1A2 seq = %d (has=%v), want 2", kafd.Seq, kafd.HasSeq)
	}

	// Absent ordinal marked absent.
	inter, _ := c.ByID("2B1")
	if inter.HasSeq {
		t.Error("2B1 should have no sequence ordinal")
	}

	// Lookup keys: both names plus code, normalized and deduplicated.
	wantKeys := []string{"kafd station", "محطه كافد", "1a2"}
	if len(kafd.LookupKeys) != len(wantKeys) {
		t.Fatalf("1A2 keys = %v", kafd.LookupKeys)
	}
	for i, k := range wantKeys {
		if kafd.LookupKeys[i] != k {
			t.Errorf("1A2 key[%d] = %q, want %q", i, kafd.LookupKeys[i], k)
		}
	}

	// Load order preserved.
	ids := []string{"1A1", "1A2", "2B1"}
	for i, st := range c.Stations() {
		if st.ID != ids[i] {
			t.Errorf("station[%d] = %s, want %s", i, st.ID, ids[i])
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json"), discardLogger()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyAliases(t *testing.T) {
	stations := writeFixture(t, "stations.json", stationsJSON)
	c, err := Load(stations, discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	aliases := writeFixture(t, "aliases.yml", `
aliases:
  "financial district": stations/1A2
  "الحي المالي": "1A2"
  "بنك ساب الرئيسي": "بنك ساب"
  "nowhere": stations/XX9
`)
	if err := c.ApplyAliases(aliases, discardLogger()); err != nil {
		t.Fatalf("ApplyAliases: %v", err)
	}

	kafd, _ := c.ByID("1A2")
	if !kafd.HasKey("financial district") {
		t.Errorf("slash-code alias not applied, keys = %v", kafd.LookupKeys)
	}
	if !kafd.HasKey("الحي المالي") {
		t.Errorf("direct-code alias not applied, keys = %v", kafd.LookupKeys)
	}

	// Alias resolved by exact key match on the Arabic display name.
	sab, _ := c.ByID("1A1")
	if !sab.HasKey("بنك ساب الرييسي") {
		t.Errorf("key-match alias not applied, keys = %v", sab.LookupKeys)
	}
}
