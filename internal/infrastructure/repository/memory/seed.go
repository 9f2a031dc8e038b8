package memory

import (
	"time"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/depthchart"
)

// SeedDepthCharts is a small snapshot used by the memory storage driver.
func SeedDepthCharts() []depthchart.Row {
	updated := time.Date(2025, time.September, 2, 12, 0, 0, 0, time.UTC)
	return []depthchart.Row{
		{
			Key:         "BUF-2025-09-02",
			Team:        "BUF",
			LastUpdated: updated,
			Slots: map[string]string{
				"qb1": "Josh Allen",
				"rb1": "James Cook",
				"wr1": "Khalil Shakir",
				"wr2": "Keon Coleman Q",
				"te1": "Dalton Kincaid",
				"de1": "Greg Rousseau",
				"lb1": "Terrel Bernard",
				"cb1": `["Christian Benford", "Healthy"]`,
				"ss1": `{"name": "Taylor Rapp"}`,
			},
		},
		{
			Key:         "KC-2025-09-02",
			Team:        "KC",
			LastUpdated: updated,
			Slots: map[string]string{
				"qb1": "Patrick Mahomes",
				"rb1": "Isiah Pacheco",
				"wr1": "Rashee Rice SUSP",
				"te1": "Travis Kelce",
				"de1": "George Karlaftis",
				"lb1": "Nick Bolton",
				"cb1": "Trent McDuffie",
				"ss1": "Justin Reid",
			},
		},
	}
}
