package roster

import "strings"

// Status is a roster availability designation.
type Status string

const (
	StatusNone         Status = ""
	StatusHealthy      Status = "Healthy"
	StatusProbable     Status = "Probable"
	StatusQuestionable Status = "Questionable"
	StatusDoubtful     Status = "Doubtful"
	StatusOut          Status = "Out"
	StatusPUP          Status = "Physically unable to perform"
	StatusSuspended    Status = "Suspended by NFL or current team"
	StatusInjured      Status = "Injured Reserve"
)

// Checked in order against the tail of the name.
var statusSuffixes = []struct {
	suffix string
	status Status
}{
	{" P", StatusProbable},
	{" Q", StatusQuestionable},
	{" D", StatusDoubtful},
	{" O", StatusOut},
	{" PUP", StatusPUP},
	{" SUS", StatusSuspended},
	{" SUSP", StatusSuspended},
	{" IR", StatusInjured},
}

// StatusOf reads the trailing designation off a depth-chart name.
// The placeholder "-" has no status.
func StatusOf(raw string) Status {
	if raw == "-" {
		return StatusNone
	}
	for _, s := range statusSuffixes {
		if strings.HasSuffix(raw, s.suffix) {
			return s.status
		}
	}
	return StatusHealthy
}

// SplitStatus returns the name without its designation and the status.
func SplitStatus(raw string) (string, Status) {
	status := StatusOf(raw)
	if status == StatusHealthy || status == StatusNone {
		return raw, status
	}
	words := strings.Fields(raw)
	return strings.Join(words[:len(words)-1], " "), status
}
