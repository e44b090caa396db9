package turing_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/aretw0/turing/pkg/report"
)

// ExampleNew builds the unary successor machine through the construction API.
func ExampleNew() {
	m := turing.New()
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

	fmt.Println(res.Status, res.Tape)
	// Output: halted [{0 1}]
}

// ExampleFromDefinition appends a 1 to a unary number using the DSL.
func ExampleFromDefinition() {
	def, err := dsl.New().
		States(0, 1).
		Symbols(0, 1).
		On(0, 1).Write(1).Right().Goto(0).
		On(0, 0).Write(1).Right().Goto(1).
		Input(1, 1, 1).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	m, err := turing.FromDefinition(def)
	if err != nil {
		log.Fatal(err)
	}

	res, err := m.Run(context.Background(), def.Input)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(report.TapeString(res.Tape), res.Steps)
	// Output: 1111 4
}
