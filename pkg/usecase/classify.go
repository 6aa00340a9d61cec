package usecase

import (
	"github.com/yiffos/pkgreport/pkg/domain/model"
	"github.com/yiffos/pkgreport/pkg/domain/version"
)

// Classify decides what to do with a package.
//
// Legacy packages are skipped. When no upstream version is known the
// comparison is not performed and the package is reported as current, the
// same as a package whose versions compare equal.
func Classify(rec *model.PackageRecord) model.Outcome {
	if rec.IsLegacy {
		return model.OutcomeSkip
	}

	result := 0
	if rec.UpstreamVersion != "" {
		result = version.Compare(rec.UpstreamVersion, rec.LocalVersion)
	}

	switch {
	case result < 0:
		return model.OutcomeAhead
	case result == 0:
		return model.OutcomeCurrent
	default:
		return model.OutcomeOutdated
	}
}
