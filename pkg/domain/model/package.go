package model

// VersionStatus is the per-repository status assigned by the version service
type VersionStatus string

const (
	StatusNewest    VersionStatus = "newest"
	StatusDevel     VersionStatus = "devel"
	StatusUnique    VersionStatus = "unique"
	StatusOutdated  VersionStatus = "outdated"
	StatusLegacy    VersionStatus = "legacy"
	StatusRolling   VersionStatus = "rolling"
	StatusNoScheme  VersionStatus = "noscheme"
	StatusIncorrect VersionStatus = "incorrect"
	StatusUntrusted VersionStatus = "untrusted"
	StatusIgnored   VersionStatus = "ignored"
)

// RawVersionEntry is one package entry of one repository as returned by the version service
type RawVersionEntry struct {
	Repo        string        `json:"repo"`
	SrcName     string        `json:"srcname"`
	VisibleName string        `json:"visiblename"`
	Version     string        `json:"version"`
	Status      VersionStatus `json:"status"`
}

// ProjectQuery selects the projects to list
type ProjectQuery struct {
	InRepo       string // repository the project must be present in
	OutdatedOnly bool
}

// PackageRecord is the reduced view of a project from the tracked repository's point of view
type PackageRecord struct {
	ID              string // project identifier in the version service
	Name            string // source package name in the tracked repository
	LocalVersion    string
	UpstreamVersion string
	IsLegacy        bool
}

// NewPackageRecord folds entries in input order into a PackageRecord for repo.
//
// Entries of repo set Name and LocalVersion (last one wins) and any legacy
// entry of repo marks the record legacy. Any entry with status newest sets
// UpstreamVersion, again last one wins. A project without an entry for repo
// yields empty Name and LocalVersion.
func NewPackageRecord(id, repo string, entries []RawVersionEntry) *PackageRecord {
	rec := &PackageRecord{ID: id}

	for _, entry := range entries {
		if entry.Repo == repo {
			rec.Name = entry.SrcName
			rec.LocalVersion = entry.Version
			if entry.Status == StatusLegacy {
				rec.IsLegacy = true
			}
		}

		if entry.Status == StatusNewest {
			rec.UpstreamVersion = entry.Version
		}
	}

	return rec
}
