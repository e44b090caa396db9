/*
Package domain contains the value types shared by the Turing machine engine and
its collaborators.

It defines the vocabulary of a deterministic single-tape machine: symbols,
state keys, move directions, transitions, tape cells and run results. This
package is kept pure and free of I/O so that loaders, reporters and transports
can depend on it without pulling in the runtime.

# Key Entities

  - Symbol: a tape alphabet element. Symbol 0 is the blank.
  - StateKey: the unique identifier of a machine state.
  - Direction: the head movement of a transition (Left or Right).
  - Transition: the rule applied when a (state, symbol) pair is read.
  - Definition: a declarative machine description consumed by the facade.
  - Result: the outcome of a run (status, final state, steps, tape cells).
*/
package domain
