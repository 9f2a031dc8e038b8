package pfr

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/gamelog"
)

var ErrNoTable = crerr.New("no game log table on page")

var uncomment = strings.NewReplacer("<!--", "", "-->", "")

// ParseGameLog reads the two-level header game log table. Totals rows
// and repeated mid-table headers are kept for the cleaning step.
func ParseGameLog(body []byte) (gamelog.RawTable, error) {
	clean := uncomment.Replace(string(body))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return gamelog.RawTable{}, err
	}

	table := doc.Find("table#stats").First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return gamelog.RawTable{}, ErrNoTable
	}

	columns := parseHeader(table)
	if len(columns) == 0 {
		return gamelog.RawTable{}, crerr.Wrap(ErrNoTable, "table has no header")
	}

	var rows [][]string
	table.Find("tbody tr, tfoot tr").Each(func(_ int, tr *goquery.Selection) {
		cells := expandRow(tr)
		if len(cells) == 0 {
			return
		}
		rows = append(rows, fitRow(cells, len(columns)))
	})

	return gamelog.RawTable{Columns: columns, Rows: rows}, nil
}

func parseHeader(table *goquery.Selection) []gamelog.Column {
	headerRows := table.Find("thead tr")
	if headerRows.Length() == 0 {
		return nil
	}

	fields := expandRow(headerRows.Last())
	groups := make([]string, len(fields))
	if over := headerRows.Filter(".over_header"); over.Length() > 0 {
		copy(groups, expandRow(over.First()))
	} else if headerRows.Length() > 1 {
		copy(groups, expandRow(headerRows.First()))
	}

	columns := make([]gamelog.Column, len(fields))
	for i, field := range fields {
		columns[i] = gamelog.Column{Group: groups[i], Field: field}
	}
	return columns
}

// expandRow repeats the text of cells that span several columns.
func expandRow(tr *goquery.Selection) []string {
	var out []string
	tr.Children().Filter("th, td").Each(func(_ int, cell *goquery.Selection) {
		span, err := strconv.Atoi(strings.TrimSpace(cell.AttrOr("colspan", "1")))
		if err != nil || span < 1 {
			span = 1
		}
		text := collapse(cell.Text())
		for i := 0; i < span; i++ {
			out = append(out, text)
		}
	})
	return out
}

func fitRow(cells []string, width int) []string {
	if len(cells) >= width {
		return cells[:width]
	}
	out := make([]string, width)
	copy(out, cells)
	return out
}
