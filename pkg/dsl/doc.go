/*
Package dsl provides a fluent builder for puzzle catalogs.

It is handy for tests and for embedding lesson sets in Go code without a
puzzles directory.

Example usage:

	catalog, err := dsl.New().
		Puzzle("L06-1").Label("2x + 3 = x + 5").Left(2, 3).Right(1, 5).
		Puzzle("L06-2").Left(5, -1).Equals(14).
		Build()
*/
package dsl
