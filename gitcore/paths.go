package gitcore

import (
	"path"
	"path/filepath"
	"strings"
)

// .git/ Files and directories
// We keep the refs paths in unix format since they are stored
// this way. Callers are in charge of converting them to the current
// system when needed
const (
	DotGitPath      = ".git"
	ConfigPath      = "config"
	DescriptionPath = "description"
	IndexPath       = "index"
	ObjectsPath     = "objects"
	BranchesPath    = "branches"
	InfoPath        = "info"
	ExcludePath     = InfoPath + "/" + "exclude"
	RefsPath        = "refs"
	RefsTagsPath    = RefsPath + "/tags"
	RefsHeadsPath   = RefsPath + "/heads"
)

// Head is a reference to the current branch, or to a commit if
// we're detached
const Head = "HEAD"

// Master corresponds to the default branch name if none was specified
const Master = "master"

// LocalBranchFullName returns the full name of a branch
// ex. for `master` returns `refs/heads/master`
func LocalBranchFullName(shortName string) string {
	return path.Join(RefsHeadsPath, shortName)
}

// LocalBranchShortName returns the short name of a branch
// ex. for `refs/heads/master` returns `master`
func LocalBranchShortName(fullName string) string {
	return strings.TrimPrefix(fullName, RefsHeadsPath+"/")
}

// LocalTagFullName returns the full name of a tag
// ex. for `v1.0.0` returns `refs/tags/v1.0.0`
func LocalTagFullName(shortName string) string {
	return path.Join(RefsTagsPath, shortName)
}

// LocalTagShortName returns the short name of a tag
// ex. for `refs/tags/v1.0.0` returns `v1.0.0`
func LocalTagShortName(fullName string) string {
	return strings.TrimPrefix(fullName, RefsTagsPath+"/")
}

// LooseObjectPath returns the path of a loose object relative to the
// .git directory.
// Path is objects/first_2_chars_of_sha/remaining_chars_of_sha
//
// Ex. path of fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3 is:
// objects/fc/fe68a0e44e04bd7fd564fc0b75f1ae457e18b3
func LooseObjectPath(sha string) string {
	return filepath.Join(ObjectsPath, sha[:2], sha[2:])
}
