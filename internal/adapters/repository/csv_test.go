package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `,Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
0,1,CCAFS LC-40,0,0.0,F9 v1.0  B0003,v1.0
1,2,CCAFS LC-40,0,525.0,F9 v1.0  B0005,v1.0
2,3,VAFB SLC-4E,1,500.0,F9 v1.1  B1003,v1.1
3,4,KSC LC-39A,1,9600.0,F9 FT B1031.1,FT
`

func TestLoad_ParsesRecords(t *testing.T) {
	ctx := context.Background()
	d, err := Load(ctx, strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Count(ctx) != 4 {
		t.Fatalf("expected 4 records, got %d", d.Count(ctx))
	}

	first := d.Launches()[0]
	if first.Site != "CCAFS LC-40" || first.PayloadMass != 0 || first.Class != 0 {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.BoosterVersion != "F9 v1.0  B0003" {
		t.Errorf("expected booster version to keep inner spacing, got %q", first.BoosterVersion)
	}
	if first.FlightNumber != 1 || first.BoosterCategory != "v1.0" {
		t.Errorf("expected optional columns to be read, got %+v", first)
	}

	b := d.Bounds()
	if b.Min != 0 || b.Max != 9600 {
		t.Errorf("expected bounds [0, 9600], got [%v, %v]", b.Min, b.Max)
	}

	want := []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"}
	got := d.Sites()
	if len(got) != len(want) {
		t.Fatalf("expected %d sites, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("site %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestLoad_OptionalColumnsAbsent(t *testing.T) {
	ctx := context.Background()
	in := "Launch Site,Payload Mass (kg),class,Booster Version\nA,500,1,F9\n"
	d, err := Load(ctx, strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := d.Launches()[0]
	if l.FlightNumber != 0 || l.BoosterCategory != "" {
		t.Errorf("expected zero optional fields, got %+v", l)
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	ctx := context.Background()
	in := "Launch Site,class,Booster Version\nA,1,F9\n"
	_, err := Load(ctx, strings.NewReader(in))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoad_EmptyInput(t *testing.T) {
	_, err := Load(context.Background(), strings.NewReader(""))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoad_MalformedRows(t *testing.T) {
	cases := map[string]string{
		"non-numeric payload": "Launch Site,Payload Mass (kg),class,Booster Version\nA,heavy,1,F9\n",
		"class out of range":  "Launch Site,Payload Mass (kg),class,Booster Version\nA,500,2,F9\n",
		"wrong field count":   "Launch Site,Payload Mass (kg),class,Booster Version\nA,500,1\n",
		"bad flight number":   "Flight Number,Launch Site,Payload Mass (kg),class,Booster Version\nx,A,500,1,F9\n",
		"infinite payload":    "Launch Site,Payload Mass (kg),class,Booster Version\nA,Inf,1,F9\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(context.Background(), strings.NewReader(in))
			if !errors.Is(err, ErrMalformedRow) {
				t.Fatalf("expected ErrMalformedRow, got %v", err)
			}
		})
	}
}

func TestLoad_Options(t *testing.T) {
	ctx := context.Background()
	in := "site;mass;ok;booster\nA;500;1;F9\nB;700;0;F9\n"
	d, err := Load(ctx, strings.NewReader(in),
		WithComma(';'),
		WithColumns(Columns{Site: "site", PayloadMass: "mass", Class: "ok", BoosterVersion: "booster"}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Count(ctx) != 2 {
		t.Errorf("expected 2 records, got %d", d.Count(ctx))
	}
	if d.Launches()[1].Site != "B" || d.Launches()[1].PayloadMass != 700 {
		t.Errorf("unexpected second record: %+v", d.Launches()[1])
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, strings.NewReader(sampleCSV))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(ctx, filepath.Join(t.TempDir(), "nope.csv"))
		if !errors.Is(err, ErrDataFile) {
			t.Fatalf("expected ErrDataFile, got %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
		}
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "launches.csv")
		if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		d, err := LoadFile(ctx, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Count(ctx) != 4 {
			t.Errorf("expected 4 records, got %d", d.Count(ctx))
		}
	})
}
