package domain

import "go.trai.ch/zerr"

// Variant selects the packager build type. The set is closed; custom
// packager build types are out of scope.
type Variant string

const (
	// VariantDebug builds with debug symbols and no optimization.
	VariantDebug Variant = "debug"
	// VariantRelease builds optimized artifacts.
	VariantRelease Variant = "release"
)

// Profile is the native compiler's equivalent of a packager Variant.
type Profile struct {
	// Name is the cargo profile name (dev or release).
	Name string

	// Flags are appended to the cargo invocation for this profile.
	Flags []string

	// TargetSubdir is the per-profile directory under the cargo target
	// root where artifacts land.
	TargetSubdir string
}

// ParseVariant validates a variant name coming from the CLI or the
// packager hook. It returns ErrUnsupportedVariant for anything outside
// {debug, release}.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantDebug, VariantRelease:
		return Variant(s), nil
	default:
		return "", zerr.With(ErrUnsupportedVariant, "variant", s)
	}
}

// MapProfile returns the cargo profile for a packager variant.
//
// The two toolchains name variants independently; the mapping is a fixed
// two-entry table so a variant unknown to this table can never silently
// select the wrong optimization level.
func MapProfile(v Variant) (Profile, error) {
	switch v {
	case VariantDebug:
		return Profile{Name: "dev", TargetSubdir: "debug"}, nil
	case VariantRelease:
		return Profile{Name: "release", Flags: []string{"--release"}, TargetSubdir: "release"}, nil
	default:
		return Profile{}, zerr.With(ErrUnsupportedVariant, "variant", string(v))
	}
}
