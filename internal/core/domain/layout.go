package domain

import "path/filepath"

const (
	// DefaultBuildDirName is the build directory used when forge.yaml does not
	// name one.
	DefaultBuildDirName = "build"

	// ChecksumsDirName is the checksum store subdirectory of the build directory.
	ChecksumsDirName = "checksums"

	// BinDirName is the default output subdirectory of the build directory.
	BinDirName = "bin"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "forge.yaml"

	// IncludeEnvVar names the path-separator-delimited directory list searched
	// for declared source files that are not found relative to the working tree.
	IncludeEnvVar = "FORGE_INCLUDE"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ChecksumsPath returns the checksum store directory for a build directory.
func ChecksumsPath(buildDir string) string {
	return filepath.Join(buildDir, ChecksumsDirName)
}

// DefaultOutput returns the artifact path for a target that does not declare
// one. Library kinds get platform-style lib naming.
func DefaultOutput(buildDir, name string, kind Kind) string {
	switch kind {
	case KindStaticLibrary:
		return filepath.Join(buildDir, BinDirName, "lib"+name+".a")
	case KindDynamicLibrary:
		return filepath.Join(buildDir, BinDirName, "lib"+name+".so")
	default:
		return filepath.Join(buildDir, BinDirName, name)
	}
}
