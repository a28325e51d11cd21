// Package generator applies planned file system changes.
//
// Staging and relocation both describe their work as a list of Operations.
// Execute validates the whole list before touching the disk, then either
// performs each operation or, in dry-run mode, only reports it.
//
//	ops := []generator.Operation{
//	    &generator.WriteFileOp{Path: "temp/Monster.fbs", Content: data, Mode: 0644},
//	    &generator.MoveFileOp{From: "out/Game/Monster.cs", To: "out/Monster.cs"},
//	}
//	err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true})
package generator
