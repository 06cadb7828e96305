package font

import (
	"fmt"
	"os"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"typeset/lerr"
	"typeset/style"
)

type typeKey struct {
	Type  style.FamilyType
	Style StyleSettings
}

type nameKey struct {
	Name  string
	Style StyleSettings
}

// Registry is the font manager: a set of loaded fonts addressed by id,
// with the default font pre-registered at id 0 and name/path/type
// lookups memoised.
type Registry struct {
	log *zap.Logger

	fonts  map[ID]*Font
	nextID ID

	genericPaths map[style.FamilyType]string
	namePaths    map[string]string

	byType map[typeKey]ID
	byName map[nameKey]ID
	byPath map[string]ID
}

// NewRegistry builds a registry with defaultFontBytes pre-registered at
// id 0. genericPaths maps each generic family keyword to a font file on
// disk (populated from configuration); namePaths does the same for
// specific family names. Neither map needs every key populated: an
// unmapped lookup falls back to the default font with a logged
// warning, per the adapter's fallback policy.
func NewRegistry(defaultFontBytes []byte, genericPaths map[style.FamilyType]string, namePaths map[string]string, log *zap.Logger) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		log:          log.Named("font-registry"),
		fonts:        map[ID]*Font{},
		genericPaths: genericPaths,
		namePaths:    namePaths,
		byType:       map[typeKey]ID{},
		byName:       map[nameKey]ID{},
		byPath:       map[string]ID{},
	}
	def, err := newFont(DefaultID, defaultFontBytes)
	if err != nil {
		return nil, fmt.Errorf("loading default font: %w", err)
	}
	r.fonts[DefaultID] = def
	r.nextID = DefaultID + 1
	return r, nil
}

func (r *Registry) register(raw []byte) (ID, error) {
	id := r.nextID
	f, err := newFont(id, raw)
	if err != nil {
		return 0, err
	}
	r.fonts[id] = f
	r.nextID++
	return id, nil
}

// GetFont returns the loaded font at id, or nil if unregistered.
func (r *Registry) GetFont(id ID) *Font { return r.fonts[id] }

// GetFontMut is an alias of GetFont: Go pointers are already mutable
// through a shared reference, so there is no separate read/write view.
func (r *Registry) GetFontMut(id ID) *Font { return r.fonts[id] }

// FindByPath loads (if not already loaded) and returns the id of the
// font file at path. filetype sniffs the container format before
// parsing so a misnamed or non-font file fails fast with a clear
// error rather than an opaque sfnt parse failure.
func (r *Registry) FindByPath(path string) (ID, error) {
	if id, ok := r.byPath[path]; ok {
		return id, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, lerr.FontResolutionError(fmt.Sprintf("reading font file %q: %v", path, err))
	}
	if !filetype.Is(data, "ttf") && !filetype.Is(data, "otf") &&
		!filetype.Is(data, "woff") && !filetype.Is(data, "woff2") {
		return 0, lerr.FontResolutionError(fmt.Sprintf("%q does not look like a font file", path))
	}
	id, err := r.register(data)
	if err != nil {
		return 0, lerr.FontResolutionError(fmt.Sprintf("parsing font file %q: %v", path, err))
	}
	r.byPath[path] = id
	return id, nil
}

// FindByType resolves one of the five generic family keywords under a
// given style, falling back to the default font with a logged warning
// when no path is configured for that family.
func (r *Registry) FindByType(familyType style.FamilyType, settings StyleSettings) (ID, error) {
	key := typeKey{Type: familyType, Style: settings}
	if id, ok := r.byType[key]; ok {
		return id, nil
	}
	path, ok := r.genericPaths[familyType]
	if !ok {
		r.log.Warn("no font configured for generic family, falling back to default",
			zap.String("family", familyType.String()))
		r.byType[key] = DefaultID
		return DefaultID, nil
	}
	id, err := r.FindByPath(path)
	if err != nil {
		r.log.Warn("failed to load configured font for generic family, falling back to default",
			zap.String("family", familyType.String()), zap.Error(err))
		r.byType[key] = DefaultID
		return DefaultID, nil
	}
	r.byType[key] = id
	return id, nil
}

// FindByName resolves a specific family name under a given style,
// falling back to the default font with a logged warning when no path
// is configured for that name.
func (r *Registry) FindByName(name string, settings StyleSettings) (ID, error) {
	key := nameKey{Name: name, Style: settings}
	if id, ok := r.byName[key]; ok {
		return id, nil
	}
	path, ok := r.namePaths[name]
	if !ok {
		r.log.Warn("no font configured for family name, falling back to default", zap.String("name", name))
		r.byName[key] = DefaultID
		return DefaultID, nil
	}
	id, err := r.FindByPath(path)
	if err != nil {
		r.log.Warn("failed to load configured font for family name, falling back to default",
			zap.String("name", name), zap.Error(err))
		r.byName[key] = DefaultID
		return DefaultID, nil
	}
	r.byName[key] = id
	return id, nil
}

// SubsetFonts runs Subset on every registered font, in id order, so
// subsetted export bytes are available for every (font, variation).
func (r *Registry) SubsetFonts() error {
	for id := ID(0); id < r.nextID; id++ {
		f, ok := r.fonts[id]
		if !ok {
			continue
		}
		if err := f.Subset(); err != nil {
			return fmt.Errorf("subsetting font %d: %w", id, err)
		}
	}
	return nil
}
