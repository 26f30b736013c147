package backup

import (
	"path/filepath"
	"sort"
	"time"
)

// CategoryDirectoryName enumerates the top-level directories that split
// backups by repository visibility.
type CategoryDirectoryName string

// Category directories created under the backup root.
const (
	CategoryDirectoryPrivate CategoryDirectoryName = "private_repos"
	CategoryDirectoryPublic  CategoryDirectoryName = "public_repos"
)

// Visibility labels used when displaying repositories to the operator.
const (
	visibilityLabelPrivateConstant = "Private"
	visibilityLabelPublicConstant  = "Public"
)

// RepositoryDescriptor is an immutable snapshot of one remote repository's
// metadata at listing time.
type RepositoryDescriptor struct {
	Name          string
	CloneURL      string
	SSHURL        string
	Private       bool
	LastUpdatedAt time.Time
}

// CategoryDirectory returns the visibility split directory for the descriptor.
func (descriptor RepositoryDescriptor) CategoryDirectory() CategoryDirectoryName {
	if descriptor.Private {
		return CategoryDirectoryPrivate
	}
	return CategoryDirectoryPublic
}

// VisibilityLabel returns the human-readable visibility label for the descriptor.
func (descriptor RepositoryDescriptor) VisibilityLabel() string {
	if descriptor.Private {
		return visibilityLabelPrivateConstant
	}
	return visibilityLabelPublicConstant
}

// BackupTarget pairs a repository descriptor with its destination directory.
type BackupTarget struct {
	Descriptor        RepositoryDescriptor
	CategoryDirectory string
	TargetDirectory   string
}

// NewBackupTarget computes the backup destination for a descriptor under the
// provided backup root.
func NewBackupTarget(backupRoot string, descriptor RepositoryDescriptor) BackupTarget {
	categoryDirectory := filepath.Join(backupRoot, string(descriptor.CategoryDirectory()))
	return BackupTarget{
		Descriptor:        descriptor,
		CategoryDirectory: categoryDirectory,
		TargetDirectory:   filepath.Join(categoryDirectory, descriptor.Name),
	}
}

// SortDescriptorsByLastUpdated orders descriptors by most-recently-updated
// first, keeping the incoming order for equal timestamps.
func SortDescriptorsByLastUpdated(descriptors []RepositoryDescriptor) {
	sort.SliceStable(descriptors, func(firstIndex int, secondIndex int) bool {
		return descriptors[firstIndex].LastUpdatedAt.After(descriptors[secondIndex].LastUpdatedAt)
	})
}

// RunSummary aggregates per-repository outcomes across a backup run.
type RunSummary struct {
	Cloned               int
	Updated              int
	SyncFailures         int
	Verified             int
	VerificationFailures int
}
