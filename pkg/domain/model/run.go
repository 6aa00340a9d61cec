package model

// RunResult summarizes one pass over the tracked packages
type RunResult struct {
	RunID    string
	Date     string
	Report   Report
	Rendered string
	Created  []*Issue // tickets filed during the run
	Skipped  int      // legacy packages
}
