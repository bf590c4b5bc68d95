// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig

import (
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/ktong/konfig/internal"
	"github.com/ktong/konfig/parser"
	"github.com/ktong/konfig/provider/file"
	kfs "github.com/ktong/konfig/provider/fs"
	"github.com/ktong/konfig/provider/sysprop"
	"github.com/ktong/konfig/provider/url"
	"github.com/ktong/konfig/tree"
)

const (
	// ReferenceName is the base name of the resources holding library defaults.
	ReferenceName = "reference"
	// ApplicationName is the base name of the resources holding application configuration.
	ApplicationName = "application"

	// PropertyConfigFile is the system property naming a file which replaces the default application.
	PropertyConfigFile = "config.file"
	// PropertyConfigResource is the system property naming a resource which replaces the default application.
	PropertyConfigResource = "config.resource"
	// PropertyConfigURL is the system property naming a URL which replaces the default application.
	PropertyConfigURL = "config.url"
)

// Extensions of the default resources, in priority order.
var resourceExtensions = []string{".yaml", ".yml", ".json", ".toml", ".properties"} //nolint:gochecknoglobals

// Default returns the standard configuration stack:
// system properties, then the default application, then the default reference.
//
// The raw trees are merged before references are resolved,
// so references in the reference resources may point to application values.
func Default() ObjectSource {
	return stack(SystemProperties(), DefaultApplication(), DefaultReferenceUnresolved())
}

// Empty returns an ObjectSource of an empty object.
func Empty() ObjectSource {
	return ObjectSource{}
}

// SystemProperties returns an ObjectSource of the process-wide system properties.
// See package sysprop.
func SystemProperties() ObjectSource {
	return FromLoader(sysprop.New())
}

// DefaultReference returns the merged reference resources with references resolved on their own.
func DefaultReference() ObjectSource {
	return NewObjectSource(DefaultReferenceUnresolved().Value)
}

// DefaultReferenceUnresolved returns the merged reference resources, e.g. reference.yaml,
// leaving references to be resolved after it has been merged with other sources.
func DefaultReferenceUnresolved() ObjectSource {
	return defaultResources(ReferenceName)
}

// DefaultApplication returns the application configuration.
//
// If one of system properties config.resource, config.file or config.url is set,
// it loads the named origin, which must exist.
// Otherwise it merges the application resources, e.g. application.yaml, which are optional.
func DefaultApplication() ObjectSource {
	return NewObjectSource(func() (tree.Value, error) {
		if name, ok := sysprop.Get(PropertyConfigResource); ok {
			return requiredResources(name).evaluate()
		}
		if path, ok := sysprop.Get(PropertyConfigFile); ok {
			return File(path).evaluate()
		}
		if rawURL, ok := sysprop.Get(PropertyConfigURL); ok {
			return URL(rawURL).evaluate()
		}

		return defaultResources(ApplicationName).evaluate()
	})
}

// File returns an ObjectSource which reads the file with the given path on every evaluation.
// The format is chosen by the file extension.
func File(path string) ObjectSource {
	if path == "" {
		return failing(Failures{{Kind: CannotRead, Cause: errEmptyPath}})
	}

	return FromLoader(file.New(path))
}

// URL returns an ObjectSource which fetches the given URL on every evaluation.
// The format is chosen by the Content-Type of the response, then the extension of the URL path.
func URL(rawURL string) ObjectSource {
	if rawURL == "" {
		return failing(Failures{{Kind: CannotRead, Cause: errEmptyURL}})
	}

	return FromLoader(url.New(rawURL))
}

// Resources returns an ObjectSource which merges the resources with the given name
// in all registered resource file systems. See RegisterResources.
//
// Missing resources contribute nothing. If none exists, it is an empty object.
func Resources(name string) ObjectSource {
	return NewObjectSource(func() (tree.Value, error) {
		sources := make([]ObjectSource, 0, len(resourceRoots()))
		for _, root := range resourceRoots() {
			sources = append(sources, FromLoader(resourceLoader{
				FS:   kfs.New(root, name, kfs.IgnoreFileNotExist()),
				name: name,
			}))
		}

		return stack(sources...).evaluate()
	})
}

// String returns an ObjectSource of the given YAML (or JSON) text.
func String(text string) ObjectSource {
	return FromLoader(stringLoader(text))
}

// FromConfig returns a Source of the given value.
func FromConfig(value tree.Value) Source {
	return FromCursor(NewCursor(value))
}

// FromCursor returns a Source of the node of the given cursor.
// The path of the cursor is kept, so failures of navigation are reported from the root.
func FromCursor(cursor Cursor) Source {
	return Source{cursor: func() (Cursor, error) {
		return cursor, nil
	}}
}

// FromFluentCursor returns a Source of the given FluentCursor,
// which fails with its deferred failure if any.
func FromFluentCursor(cursor FluentCursor) Source {
	return Source{cursor: cursor.Cursor}
}

// ObjectFromConfig returns an ObjectSource of the given value, which must be an object.
func ObjectFromConfig(value tree.Value) ObjectSource {
	return ObjectFromCursor(NewCursor(value))
}

// ObjectFromCursor returns an ObjectSource of the node of the given cursor, which must be an object.
func ObjectFromCursor(cursor Cursor) ObjectSource {
	return ObjectFromFluentCursor(NewFluentCursor(cursor, nil))
}

// ObjectFromFluentCursor returns an ObjectSource of the given FluentCursor,
// which must be an object.
func ObjectFromFluentCursor(cursor FluentCursor) ObjectSource {
	return NewObjectSource(func() (tree.Value, error) {
		obj, err := cursor.ObjectCursor()
		if err != nil {
			return tree.Value{}, err
		}

		return obj.Value(), nil
	})
}

// RegisterResources registers the file system as a root of resources, e.g. an embed.FS.
// Roots registered earlier take priority. The working directory is always the first root.
//
// This function is concurrency-safe.
func RegisterResources(fsys fs.FS) {
	if fsys == nil {
		return
	}

	resourcesMutex.Lock()
	defer resourcesMutex.Unlock()

	resources = append(resources, fsys)
}

func resourceRoots() []fs.FS {
	resourcesMutex.RLock()
	defer resourcesMutex.RUnlock()

	return append([]fs.FS(nil), resources...)
}

//nolint:gochecknoglobals
var (
	// The nil root is the working directory.
	resources      = []fs.FS{nil}
	resourcesMutex sync.RWMutex
)

// stack merges the raw trees of the sources, preferring the former ones,
// without resolving references in between.
// All sources are evaluated and their failures are combined.
func stack(sources ...ObjectSource) ObjectSource {
	return NewObjectSource(func() (tree.Value, error) {
		merged := tree.Object()
		var errs []error
		for i := len(sources) - 1; i >= 0; i-- {
			value, err := sources[i].evaluate()
			if err != nil {
				errs = append([]error{err}, errs...)

				continue
			}
			merged = value.WithFallback(merged)
		}
		if err := Combine(errs...); err != nil {
			return tree.Value{}, err
		}

		return merged, nil
	})
}

// defaultResources merges the resources with the given base name and every known extension.
func defaultResources(base string) ObjectSource {
	sources := make([]ObjectSource, 0, len(resourceExtensions))
	for _, ext := range resourceExtensions {
		sources = append(sources, Resources(base+ext))
	}

	return stack(sources...)
}

// requiredResources is like Resources but fails if no root has the resource.
func requiredResources(name string) ObjectSource {
	return NewObjectSource(func() (tree.Value, error) {
		for _, root := range resourceRoots() {
			if root == nil {
				// Ignore error: It uses whatever returned.
				dir, _ := os.Getwd()
				root = os.DirFS(dir)
			}
			if _, err := fs.Stat(root, name); err == nil {
				return Resources(name).evaluate()
			}
		}

		return tree.Value{}, Failures{{
			Kind:   CannotRead,
			Origin: tree.Origin{Description: "resource:" + name},
			Cause:  fs.ErrNotExist,
		}}
	})
}

type resourceLoader struct {
	kfs.FS
	name string
}

func (r resourceLoader) String() string {
	return "resource:" + r.name
}

type stringLoader string

func (s stringLoader) Load() (tree.Value, error) {
	return parser.YAML(internal.String2ByteSlice(string(s))) //nolint:wrapcheck
}

func (s stringLoader) String() string {
	return "string"
}

var (
	errEmptyPath = errors.New("cannot load config from empty file path")
	errEmptyURL  = errors.New("cannot load config from empty url")
)
