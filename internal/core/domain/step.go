package domain

// Step is a node in the build pipeline. Requires lists the steps that
// must complete successfully before this one may start.
type Step struct {
	Name     InternedString
	Requires []InternedString
}
