package domain

// Library names a shared object the packager expects to embed, without
// the "lib" prefix or ".so" suffix.
type Library struct {
	Name InternedString
}

// NewLibrary creates a Library from its logical name.
func NewLibrary(name string) Library {
	return Library{Name: NewInternedString(name)}
}

// FileName returns the artifact file name the packager searches for.
func (l Library) FileName() string {
	return "lib" + l.Name.String() + ".so"
}
