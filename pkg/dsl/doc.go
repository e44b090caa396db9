/*
Package dsl provides a fluent Go builder for Turing machine definitions.

It lets developers declare machines in code instead of external text or YAML
files, which is handy for tests and generated machines.

Example usage:

	def, err := dsl.New().
		States(0, 1).
		Symbols(0, 1).
		On(0, 0).Write(1).Right().Goto(1).
		Input(0).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	m, err := turing.FromDefinition(def)
*/
package dsl
