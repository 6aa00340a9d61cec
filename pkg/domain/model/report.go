package model

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
)

// ReportDateLayout is the date format used in the report and mail subject
const ReportDateLayout = "2006-01-02"

// emptySection is rendered in place of a bucket without lines
const emptySection = "None!"

//go:embed templates/report.txt
var reportTemplate string

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"section": renderSection,
}).Parse(reportTemplate))

// Bucket is the report section a package line belongs to
type Bucket int

const (
	BucketNewIssue     Bucket = iota // outdated, ticket filed by this run
	BucketTrackedIssue               // outdated, ticket already existed
	BucketAnomaly                    // ahead of upstream or reported current
)

// Report accumulates package lines per bucket. It is a value: Append never
// modifies the receiver's backing arrays.
type Report struct {
	NewIssues     []string
	TrackedIssues []string
	Anomalies     []string
}

// Append returns a copy of r with line added to bucket b
func (r Report) Append(b Bucket, line string) Report {
	switch b {
	case BucketNewIssue:
		r.NewIssues = append(slices.Clip(r.NewIssues), line)
	case BucketTrackedIssue:
		r.TrackedIssues = append(slices.Clip(r.TrackedIssues), line)
	case BucketAnomaly:
		r.Anomalies = append(slices.Clip(r.Anomalies), line)
	}
	return r
}

// Len returns the number of lines over all buckets
func (r Report) Len() int {
	return len(r.NewIssues) + len(r.TrackedIssues) + len(r.Anomalies)
}

// Render fills the report template for product and date
func (r Report) Render(product, date string) (string, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, map[string]any{
		"Product":       product,
		"Date":          date,
		"NewIssues":     r.NewIssues,
		"TrackedIssues": r.TrackedIssues,
		"Anomalies":     r.Anomalies,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render report", goerr.V("date", date))
	}
	return buf.String(), nil
}

func renderSection(lines []string) string {
	if len(lines) == 0 {
		return emptySection
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ReportSubject is the mail subject of the report for product and date
func ReportSubject(product, date string) string {
	return fmt.Sprintf("%s package updates for %s", product, date)
}

// OutdatedLine describes a package whose upstream version is newer
func OutdatedLine(rec *PackageRecord) string {
	return fmt.Sprintf("%s: v%s --> v%s", rec.Name, rec.LocalVersion, rec.UpstreamVersion)
}

// AheadLine describes a package whose local version is newer than upstream
func AheadLine(rec *PackageRecord) string {
	return fmt.Sprintf("%s: v%s (version comparison reports that it's newer than upstream, upstream version: %s)",
		rec.Name, rec.LocalVersion, rec.UpstreamVersion)
}

// CurrentLine describes a package reported as up to date
func CurrentLine(rec *PackageRecord) string {
	return fmt.Sprintf("%s: v%s (version comparison reports that it's up to date, upstream version: %s)",
		rec.Name, rec.LocalVersion, rec.UpstreamVersion)
}
