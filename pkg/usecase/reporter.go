package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/yiffos/pkgreport/pkg/domain/interfaces"
	"github.com/yiffos/pkgreport/pkg/domain/model"
	"github.com/yiffos/pkgreport/pkg/utils/logging"
)

// searchLimit is the number of matching tickets needed to call a package tracked
const searchLimit = 1

// Reporter runs the package update report
type Reporter struct {
	versions  interfaces.VersionService
	tracker   interfaces.IssueTracker
	notifiers []interfaces.Notifier
	policy    model.Policy
	now       func() time.Time

	running sync.Mutex
	lastRun atomic.Int64 // unix seconds of the last completed run
}

// ReporterOption is a functional option for Reporter
type ReporterOption func(*Reporter)

// WithNotifier adds a destination for the rendered report
func WithNotifier(n interfaces.Notifier) ReporterOption {
	return func(r *Reporter) {
		r.notifiers = append(r.notifiers, n)
	}
}

// WithPolicy overrides model.DefaultPolicy()
func WithPolicy(policy model.Policy) ReporterOption {
	return func(r *Reporter) {
		r.policy = policy
	}
}

// WithClock replaces time.Now for the report date
func WithClock(now func() time.Time) ReporterOption {
	return func(r *Reporter) {
		r.now = now
	}
}

// NewReporter creates a Reporter reading versions and filing tickets in tracker
func NewReporter(versions interfaces.VersionService, tracker interfaces.IssueTracker, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		versions: versions,
		tracker:  tracker,
		policy:   model.DefaultPolicy(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// step is what one package contributes to a run
type step struct {
	report  model.Report
	created *model.Issue
	skipped bool
}

// Run performs one pass over every project listed for the tracked repository.
// Listing, resolving and ticket errors abort the run. Delivery errors are
// logged and do not.
func (uc *Reporter) Run(ctx context.Context) (*model.RunResult, error) {
	if !uc.running.TryLock() {
		return nil, interfaces.ErrRunInProgress
	}
	defer uc.running.Unlock()

	runID := uuid.NewString()
	logger := logging.From(ctx).With("run_id", runID)
	ctx = logging.With(ctx, logger)

	result := &model.RunResult{
		RunID: runID,
		Date:  uc.now().Format(model.ReportDateLayout),
	}

	repo := uc.policy.Repo()
	ids, err := uc.versions.ListProjects(ctx, model.ProjectQuery{
		InRepo:       repo,
		OutdatedOnly: true,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects", goerr.V("repo", repo))
	}
	logger.Info("Listed projects", "repo", repo, "count", len(ids))

	report := model.Report{}
	for _, id := range ids {
		s, err := uc.processPackage(ctx, report, id)
		if err != nil {
			return nil, err
		}

		report = s.report
		if s.created != nil {
			result.Created = append(result.Created, s.created)
		}
		if s.skipped {
			result.Skipped++
		}
	}

	rendered, err := report.Render(uc.policy.Product, result.Date)
	if err != nil {
		return nil, err
	}
	result.Report = report
	result.Rendered = rendered

	uc.deliver(ctx, &model.Notification{
		Subject: model.ReportSubject(uc.policy.Product, result.Date),
		Body:    rendered,
	})

	uc.lastRun.Store(uc.now().Unix())
	logger.Info("Report run completed",
		"new_issues", len(report.NewIssues),
		"tracked_issues", len(report.TrackedIssues),
		"anomalies", len(report.Anomalies),
		"skipped", result.Skipped,
	)

	return result, nil
}

// LastRun returns when the last run completed, or the zero time
func (uc *Reporter) LastRun() time.Time {
	sec := uc.lastRun.Load()
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

func (uc *Reporter) processPackage(ctx context.Context, report model.Report, id string) (*step, error) {
	logger := logging.From(ctx)

	entries, err := uc.versions.GetProject(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("project", id))
	}
	rec := model.NewPackageRecord(id, uc.policy.Repo(), entries)

	outcome := Classify(rec)
	logger.Info("Classified package",
		"project", id,
		"name", rec.Name,
		"local", rec.LocalVersion,
		"upstream", rec.UpstreamVersion,
		"outcome", outcome.String(),
	)

	switch outcome {
	case model.OutcomeSkip:
		return &step{report: report, skipped: true}, nil

	case model.OutcomeAhead:
		logger.Warn("Local version is newer than upstream, check the version scheme",
			"name", rec.Name,
			"local", rec.LocalVersion,
			"upstream", rec.UpstreamVersion,
		)
		return &step{report: report.Append(model.BucketAnomaly, model.AheadLine(rec))}, nil

	case model.OutcomeCurrent:
		return &step{report: report.Append(model.BucketAnomaly, model.CurrentLine(rec))}, nil

	default:
		created, err := uc.syncIssue(ctx, rec)
		if err != nil {
			return nil, err
		}
		if created == nil {
			return &step{report: report.Append(model.BucketTrackedIssue, model.OutdatedLine(rec))}, nil
		}
		return &step{
			report:  report.Append(model.BucketNewIssue, model.OutdatedLine(rec)),
			created: created,
		}, nil
	}
}

// syncIssue files an update ticket for rec unless one exists. It returns the
// created issue, or nil when the package was already tracked.
func (uc *Reporter) syncIssue(ctx context.Context, rec *model.PackageRecord) (*model.Issue, error) {
	logger := logging.From(ctx)
	text := model.UpdateSearchText(rec.Name, rec.UpstreamVersion)

	found, err := uc.tracker.SearchIssues(ctx, uc.policy.ProjectKey, text, searchLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search issues",
			goerr.V("project", uc.policy.ProjectKey),
			goerr.V("text", text),
		)
	}
	if len(found) > 0 {
		logger.Info("Issue already exists", "name", rec.Name, "issue", found[0].Key)
		return nil, nil
	}

	req := model.NewUpdateIssue(uc.policy, rec.Name, rec.UpstreamVersion)
	created, err := uc.tracker.CreateIssue(ctx, req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create issue",
			goerr.V("project", req.Project),
			goerr.V("summary", req.Summary),
		)
	}
	logger.Info("Issue created", "name", rec.Name, "issue", created.Key)

	return created, nil
}

func (uc *Reporter) deliver(ctx context.Context, n *model.Notification) {
	logger := logging.From(ctx)

	for _, notifier := range uc.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			logger.Error("Unable to deliver report", "error", err, "subject", n.Subject)
		}
	}
}
