package depthchart

import (
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
)

// Slots lists the depth chart columns scanned for players, in order.
var Slots = buildSlots()

func buildSlots() []string {
	groups := []struct {
		prefix string
		depth  int
	}{
		{"qb", 1}, {"rb", 2}, {"wr", 6}, {"te", 1},
		{"de", 6}, {"lb", 10}, {"cb", 4}, {"ss", 3},
	}
	var out []string
	for _, g := range groups {
		for i := 1; i <= g.depth; i++ {
			out = append(out, g.prefix+strconv.Itoa(i))
		}
	}
	return out
}

// Row is one scraped depth chart snapshot for a team.
type Row struct {
	Key         string
	Team        string
	LastUpdated time.Time
	Slots       map[string]string
}

// Entry is one player found in a depth chart slot.
type Entry struct {
	Slot     string
	Name     string
	Status   roster.Status
	Position string
}

// Entries walks Slots in order and returns the populated ones.
func (r Row) Entries() []Entry {
	out := make([]Entry, 0, len(Slots))
	for _, slot := range Slots {
		name, status, ok := CoerceNameStatus(r.Slots[slot])
		if !ok {
			continue
		}
		out = append(out, Entry{
			Slot:     slot,
			Name:     name,
			Status:   status,
			Position: strings.ToUpper(slot[:2]),
		})
	}
	return out
}

// CoerceNameStatus accepts a plain "Name [designation]" string, a JSON
// list ["Name", "Status"] or a JSON object {"name": ..., "status": ...}.
func CoerceNameStatus(raw string) (string, roster.Status, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-" || strings.EqualFold(raw, "null") {
		return "", roster.StatusNone, false
	}

	switch raw[0] {
	case '[':
		var parts []string
		if err := sonic.UnmarshalString(raw, &parts); err == nil && len(parts) > 0 {
			return withStatus(parts[0], parts[1:]...)
		}
	case '{':
		var obj struct {
			Name   string `json:"name"`
			Player string `json:"player"`
			Status string `json:"status"`
		}
		if err := sonic.UnmarshalString(raw, &obj); err == nil {
			name := obj.Name
			if name == "" {
				name = obj.Player
			}
			return withStatus(name, obj.Status)
		}
	}
	name, status := roster.SplitStatus(raw)
	return name, status, strings.TrimSpace(name) != ""
}

func withStatus(name string, status ...string) (string, roster.Status, bool) {
	name = strings.TrimSpace(name)
	if name == "" || name == "-" {
		return "", roster.StatusNone, false
	}
	if len(status) > 0 && strings.TrimSpace(status[0]) != "" {
		return name, roster.Status(strings.TrimSpace(status[0])), true
	}
	clean, st := roster.SplitStatus(name)
	return clean, st, true
}
