// Package rospkg resolves symbolic resource paths such as package://<name>/<path> to files on
// disk by looking packages up in a package registry.
package rospkg

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/leatherman/utils"
)

const (
	packageScheme = "package://"
	fileScheme    = "file://"
)

// ErrNotPackagePath is returned when a package path is required but the resource does not start
// with package://.
var ErrNotPackagePath = errors.New("not a package path (missing package:// prefix)")

// PackageNotFoundError is returned when no locator knows a package.
type PackageNotFoundError struct {
	Name string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("failed to get system path for package %q", e.Name)
}

// Kind says how a resource path should be resolved.
type Kind int

const (
	// Unknown resources have no recognized scheme and are not absolute.
	Unknown Kind = iota
	// Package resources are relative to the root of a named package.
	Package
	// Absolute resources name a file directly, with or without file://.
	Absolute
)

func (k Kind) String() string {
	switch k {
	case Package:
		return "package"
	case Absolute:
		return "absolute"
	case Unknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// ResourcePath is a parsed resource reference.
type ResourcePath struct {
	Kind Kind
	// Package is the package name for Package resources.
	Package string
	// Path is the path inside the package for Package resources, or the file path for Absolute
	// ones.
	Path string
	raw  string
}

// String returns the resource as it was given.
func (rp ResourcePath) String() string {
	return rp.raw
}

// ParseResourcePath classifies resource. For package://<name>/<rest>, Package is <name> and Path
// is <rest>; a package path without a '/' after the name has an empty Path.
func ParseResourcePath(resource string) ResourcePath {
	rp := ResourcePath{Kind: Unknown, raw: resource}
	switch {
	case strings.HasPrefix(resource, packageScheme):
		rest := strings.TrimPrefix(resource, packageScheme)
		rp.Kind = Package
		rp.Package, rp.Path, _ = strings.Cut(rest, "/")
	case strings.HasPrefix(resource, fileScheme):
		rp.Kind = Absolute
		rp.Path = strings.TrimPrefix(resource, fileScheme)
	case filepath.IsAbs(resource):
		rp.Kind = Absolute
		rp.Path = resource
	}
	return rp
}

// SystemPath resolves a package:// resource to a path on disk: the package root returned by
// locator joined with the rest of the resource. It fails if the resource is not a package path,
// names no file inside the package, or the package cannot be found.
func SystemPath(resource string, locator Locator) (string, error) {
	rp := ParseResourcePath(resource)
	if rp.Kind != Package {
		return "", ErrNotPackagePath
	}
	return packageFile(rp, locator)
}

// Resolve is like SystemPath but also accepts absolute and file:// resources, which resolve to
// themselves.
func Resolve(resource string, locator Locator) (string, error) {
	rp := ParseResourcePath(resource)
	switch rp.Kind {
	case Package:
		return packageFile(rp, locator)
	case Absolute:
		return rp.Path, nil
	case Unknown:
		return "", errors.Errorf("cannot resolve resource %q: unknown scheme", resource)
	default:
		return "", errors.Errorf("cannot resolve resource %q: unknown scheme", resource)
	}
}

func packageFile(rp ResourcePath, locator Locator) (string, error) {
	if rp.Package == "" || rp.Path == "" {
		return "", errors.Errorf("resource %q has no path after the package name", rp.raw)
	}
	if locator == nil {
		return "", &PackageNotFoundError{Name: rp.Package}
	}
	root, err := locator.PackagePath(rp.Package)
	if err != nil {
		return "", err
	}
	if root == "" {
		return "", &PackageNotFoundError{Name: rp.Package}
	}
	// package paths may not climb out of the package with ".."
	p, err := utils.SafeJoinDir(root, rp.Path)
	if err != nil {
		return "", errors.Wrapf(err, "resource %q", rp.raw)
	}
	return p, nil
}
