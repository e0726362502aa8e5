// Package graft provides:
//
// - A streaming step model over records with an explicit Flush batch boundary
// - Declarative filters and value matchers with configurable normalization
// - A recursive interpretation tree (switch dispatch, node/relationship rules)
// - Static schema expansion over the compiled interpretation tree
//
// Design policy:
// - Keep only the streaming and error primitives in the root package.
// - Place value resolution under value/, filters under filters/, the
//   interpretation vocabulary under interpret/, schema aggregation under
//   schema/, pipeline files and execution under pipeline/, and the CLI
//   under cmd/graft.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	def, err := pipeline.DefinitionFromPath("people.yaml")
//	steps, err := def.Build()
//	out := graft.Chain(extract.JSONL(f), steps...)
//	for {
//		it, err := out.Next(ctx)
//		...
//	}
package graft
