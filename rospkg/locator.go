package rospkg

import (
	"encoding/xml"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/leatherman/logging"
)

const (
	packageXMLFilename   = "package.xml"
	amentIndexPathSuffix = "share/ament_index/resource_index/packages"

	// RosPackagePathEnvVar lists directories searched recursively for packages.
	RosPackagePathEnvVar = "ROS_PACKAGE_PATH"
	// AmentPrefixPathEnvVar lists install prefixes holding an ament package index.
	AmentPrefixPathEnvVar = "AMENT_PREFIX_PATH"
)

// ignoreMarkers are files whose presence excludes a directory from the crawl.
var ignoreMarkers = []string{"CATKIN_IGNORE", "COLCON_IGNORE", "AMENT_IGNORE"}

// Locator finds the root directory of a package by name.
type Locator interface {
	PackagePath(name string) (string, error)
}

// StaticLocator maps package names straight to their root directories.
type StaticLocator map[string]string

// PackagePath implements Locator.
func (sl StaticLocator) PackagePath(name string) (string, error) {
	if p, ok := sl[name]; ok && p != "" {
		return p, nil
	}
	return "", &PackageNotFoundError{Name: name}
}

// Locators asks each locator in turn and returns the first answer.
type Locators []Locator

// PackagePath implements Locator.
func (ls Locators) PackagePath(name string) (string, error) {
	var errs error
	for _, l := range ls {
		p, err := l.PackagePath(name)
		if err == nil {
			return p, nil
		}
		var notFound *PackageNotFoundError
		if !errors.As(err, &notFound) {
			errs = multierr.Append(errs, err)
		}
	}
	if errs != nil {
		return "", errors.Wrapf(errs, "failed to locate package %q", name)
	}
	return "", &PackageNotFoundError{Name: name}
}

// packageXML represents the minimal structure we need from a ROS package.xml file.
type packageXML struct {
	XMLName xml.Name `xml:"package"`
	Name    string   `xml:"name"`
}

// extractPackageName extracts the package name from package.xml.
func extractPackageName(packageXMLPath string) (string, error) {
	//nolint:gosec
	data, err := os.ReadFile(packageXMLPath)
	if err != nil {
		return "", err
	}

	var pkg packageXML
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return "", errors.Wrap(err, "failed to parse package.xml")
	}

	if strings.TrimSpace(pkg.Name) == "" {
		return "", errors.New("package.xml does not contain a <name> element")
	}

	return strings.TrimSpace(pkg.Name), nil
}

// CrawlLocator finds packages by walking its search paths for directories holding a
// package.xml. The crawl happens once, on the first lookup. When two directories declare the
// same package, the one found first wins, so earlier search paths take precedence.
type CrawlLocator struct {
	searchPaths []string
	logger      logging.Logger

	once     sync.Once
	packages map[string]string
}

// NewLocator returns a CrawlLocator over searchPaths.
func NewLocator(searchPaths []string, logger logging.Logger) *CrawlLocator {
	return &CrawlLocator{searchPaths: searchPaths, logger: logger}
}

// PackagePath implements Locator.
func (cl *CrawlLocator) PackagePath(name string) (string, error) {
	cl.once.Do(cl.crawl)
	if p, ok := cl.packages[name]; ok {
		return p, nil
	}
	return "", &PackageNotFoundError{Name: name}
}

// Packages returns every package found, by name.
func (cl *CrawlLocator) Packages() map[string]string {
	cl.once.Do(cl.crawl)
	out := make(map[string]string, len(cl.packages))
	for k, v := range cl.packages {
		out[k] = v
	}
	return out
}

func (cl *CrawlLocator) crawl() {
	cl.packages = make(map[string]string)
	for _, root := range cl.searchPaths {
		if root == "" {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// unreadable subtrees are skipped, an unreadable root ends this search path
				cl.logger.Debugw("skipping unreadable path", "path", path, "error", err)
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			for _, marker := range ignoreMarkers {
				if _, err := os.Stat(filepath.Join(path, marker)); err == nil {
					return filepath.SkipDir
				}
			}
			packageXMLPath := filepath.Join(path, packageXMLFilename)
			if _, err := os.Stat(packageXMLPath); err != nil {
				return nil
			}
			cl.addPackage(path, packageXMLPath)
			// packages do not nest
			return filepath.SkipDir
		})
		if err != nil {
			cl.logger.Warnw("failed to crawl package search path", "path", root, "error", err)
		}
	}
	cl.logger.Debugw("crawled package search paths", "paths", cl.searchPaths, "packages", len(cl.packages))
}

func (cl *CrawlLocator) addPackage(dir, packageXMLPath string) {
	name, err := extractPackageName(packageXMLPath)
	if err != nil {
		cl.logger.Warnw("failed to read package name, using directory name", "path", packageXMLPath, "error", err)
		name = filepath.Base(dir)
	}
	if existing, ok := cl.packages[name]; ok {
		cl.logger.Warnw("duplicate package, keeping the first", "package", name, "kept", existing, "ignored", dir)
		return
	}
	cl.packages[name] = dir
}

// AmentLocator finds packages registered in the ament resource index of a list of install
// prefixes. A package `name` is installed under <prefix>/share/<name>.
type AmentLocator struct {
	prefixes []string
}

// NewAmentLocator returns an AmentLocator over the given install prefixes.
func NewAmentLocator(prefixes []string) *AmentLocator {
	return &AmentLocator{prefixes: prefixes}
}

// PackagePath implements Locator.
func (al *AmentLocator) PackagePath(name string) (string, error) {
	for _, prefix := range al.prefixes {
		if prefix == "" {
			continue
		}
		marker := filepath.Join(prefix, amentIndexPathSuffix, name)
		if _, err := os.Stat(marker); err == nil {
			return filepath.Join(prefix, "share", name), nil
		}
	}
	return "", &PackageNotFoundError{Name: name}
}

// FromEnvironment builds a locator from AMENT_PREFIX_PATH and ROS_PACKAGE_PATH, consulting the
// ament index first.
func FromEnvironment(logger logging.Logger) Locator {
	amentPrefixes := filepath.SplitList(os.Getenv(AmentPrefixPathEnvVar))
	searchPaths := filepath.SplitList(os.Getenv(RosPackagePathEnvVar))
	logger.Debugw("building package locator from environment",
		AmentPrefixPathEnvVar, amentPrefixes, RosPackagePathEnvVar, searchPaths)
	return Locators{NewAmentLocator(amentPrefixes), NewLocator(searchPaths, logger)}
}
