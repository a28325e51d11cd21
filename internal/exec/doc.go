// Package exec runs external commands for wren.
//
// An Executor streams the child's stdout and stderr, honours context
// cancellation and turns a missing binary into an actionable hint:
//
//	executor := exec.NewExecutor(&exec.Options{ShowCommand: true})
//	err := executor.Run(ctx, "./flatc", "--csharp", "-o", "out", "schema.fbs")
//	if code := exec.ExitCode(err); code > 0 {
//	    // flatc reported a schema error
//	}
//
// Tests replace the command constructor to re-enter the test binary, so no
// real tool is needed.
package exec
