// Package taskfile loads task definitions from HCL taskfiles.
//
// A taskfile declares tasks as blocks:
//
//	default = "html"
//
//	task "clean" {
//	  description = "Remove build artifacts"
//	  command     = "rm -rf ${env.BUILD_DIR}"
//	}
//
//	task "html" {
//	  depends_on = ["clean"]
//	  command    = "generate --out ${param.out}"
//	}
//
// The command attribute is kept as a raw HCL expression and evaluated only
// when the task actually runs, against a context exposing `env` (the
// process environment) and `param` (the invocation's keyword arguments).
// Positional arguments become the shell's positional parameters.
package taskfile
