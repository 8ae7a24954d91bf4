package backend

import (
	"path/filepath"
	"runtime"
)

// RuntimeEntry documents one runtime-support symbol compiled programs
// link against. The core never implements
// these; the code generator emits calls against this table.
type RuntimeEntry struct {
	Symbol    string
	Signature string
	Behavior  string
}

// RuntimeSignature is the fixed runtime-support contract.
var RuntimeSignature = []RuntimeEntry{
	{"print_string", "(ptr: *const u8, len: u32)", "writes UTF-8 slice + newline to stdout; null ptr prints a blank line"},
	{"print_int", "(v: i32)", "writes decimal + newline"},
	{"print_float", "(v: f32)", "writes default format + newline"},
	{"read_int", "() -> u32", "loops reading lines until one parses as unsigned 32-bit decimal"},
}

// LinkerPaths names the object-linker and the LLVM static compiler as
// platform-suffixed executable paths.
type LinkerPaths struct {
	Linker string
	LLC    string
}

// exeSuffix is the platform executable extension.
func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// DefaultLinkerPaths resolves the default tool names in dir (empty dir
// means bare names resolved via PATH).
func DefaultLinkerPaths(dir string) LinkerPaths {
	lp := LinkerPaths{
		Linker: "ld" + exeSuffix(),
		LLC:    "llc" + exeSuffix(),
	}
	if dir != "" {
		lp.Linker = filepath.Join(dir, lp.Linker)
		lp.LLC = filepath.Join(dir, lp.LLC)
	}
	return lp
}
