package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/yiffos/pkgreport/pkg/domain/model"
)

func TestReport_RenderEmpty(t *testing.T) {
	out, err := model.Report{}.Render("yiffOS", "2026-10-17")
	gt.NoError(t, err)

	want := `This is the daily yiffOS package update report for 2026-10-17

-------------------------------------------------------

New packages that need updating:
None!

Packages that still need updating:
None!

Packages with issues:
None!
`
	gt.Equal(t, out, want)
}

func TestReport_RenderLines(t *testing.T) {
	foo := &model.PackageRecord{Name: "foo", LocalVersion: "1.2.0", UpstreamVersion: "1.3.0"}
	qux := &model.PackageRecord{Name: "qux", LocalVersion: "0.9", UpstreamVersion: "1.0"}
	bar := &model.PackageRecord{Name: "bar", LocalVersion: "2.0.0", UpstreamVersion: "2.0.0"}

	report := model.Report{}.
		Append(model.BucketNewIssue, model.OutdatedLine(foo)).
		Append(model.BucketTrackedIssue, model.OutdatedLine(qux)).
		Append(model.BucketAnomaly, model.CurrentLine(bar))

	out, err := report.Render("yiffOS", "2026-10-17")
	gt.NoError(t, err)

	want := `This is the daily yiffOS package update report for 2026-10-17

-------------------------------------------------------

New packages that need updating:
foo: v1.2.0 --> v1.3.0


Packages that still need updating:
qux: v0.9 --> v1.0


Packages with issues:
bar: v2.0.0 (version comparison reports that it's up to date, upstream version: 2.0.0)

`
	gt.Equal(t, out, want)
}

func TestReport_AppendDoesNotAlias(t *testing.T) {
	base := model.Report{}.Append(model.BucketAnomaly, "a")
	left := base.Append(model.BucketAnomaly, "b")
	right := base.Append(model.BucketAnomaly, "c")

	gt.A(t, base.Anomalies).Length(1)
	gt.Equal(t, left.Anomalies, []string{"a", "b"})
	gt.Equal(t, right.Anomalies, []string{"a", "c"})
	gt.Equal(t, right.Len(), 2)
}

func TestLines(t *testing.T) {
	rec := &model.PackageRecord{Name: "bar", LocalVersion: "2.1", UpstreamVersion: "2.0"}

	gt.Equal(t, model.AheadLine(rec),
		"bar: v2.1 (version comparison reports that it's newer than upstream, upstream version: 2.0)")
	gt.Equal(t, model.ReportSubject("yiffOS", "2026-10-17"), "yiffOS package updates for 2026-10-17")
}
