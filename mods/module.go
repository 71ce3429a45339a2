package mods

// MagModule represents a module -- specifically, the module configuration
// loaded from its `mag-mod.toml`.  Profile information is not stored on the
// module but passed separately since the selected profile drives the whole
// build.
type MagModule struct {
	// Name is the name of the module
	Name string

	// ModuleRoot is the path to the root directory of the module
	ModuleRoot string
}

// BuildProfile represents the profile the compiler will use to build -- it is
// populated by `LoadModule`
type BuildProfile struct {
	// OutputDir is the directory the per-file outputs are written into
	OutputDir string

	// OutputFormat is the kind of output the compiler should produce.  This
	// should be one of the enumerated formats (prefixed `Format`).
	OutputFormat int

	// Debug indicates whether the compiler should build for debugging or for
	// release
	Debug bool
}

// Available output formats.  Only textual LLVM IR is currently produced; the
// other formats are reserved for the backend toolchain.
const (
	FormatLLVM = iota
	FormatASM
	FormatBin
)

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (module name, function name, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
