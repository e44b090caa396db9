/*
Package turing is an execution engine for deterministic, single-tape Turing
machines.

A machine is a finite set of states, a finite tape alphabet and a partial
transition function. The engine simulates it on a sparse, logically
bi-infinite tape until the final state is reached or no transition is defined
for the current (state, symbol) pair.

# Concept

Construction is append-only: register states and alphabet symbols first, then
transitions referencing them. Unless designated explicitly, the state with the
smallest key is the start state and the one with the largest key is the final
(halting) state. Each call to Run wipes the tape and starts over, so running
the same machine twice on the same input yields identical tapes.

The run loop has no intrinsic bound. Embedders wanting bounded execution use
WithStepLimit or cancel the context; both are checked once per step.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/turing"
		"github.com/aretw0/turing/pkg/domain"
	)

	func main() {
		m := turing.New(turing.WithStepLimit(10_000))
		m.AddState(0)
		m.AddState(1)
		m.AddSymbol(0)
		m.AddSymbol(1)
		m.AddTransition(0, 1, 0, 1, domain.Right)

		if err := m.DeriveStartFinal(); err != nil {
			log.Fatal(err)
		}

		res, err := m.Run(context.Background(), []domain.Symbol{0})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Status, res.Tape) // halted [{0 1}]
	}

Machines can also be built from a declarative domain.Definition (see
FromDefinition), produced by the pkg/dsl builder or by pkg/loader.
*/
package turing
