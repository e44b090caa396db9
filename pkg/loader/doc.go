/*
Package loader reads Turing machine descriptions into domain.Definition values.

Three formats are supported:

  - text: the line-oriented simulator format. Line 1 is the number of states n
    (state 0 starts, state n-1 halts), line 2 the number of non-blank input
    symbols m (the alphabet is {0..m}), followed by (n-1)*(m+1) transition
    lines "next,write,move" in state-major, symbol-minor order, and an
    optional input line of digits. Blank lines are ignored.
  - yaml: a Definition document (states, alphabet, transitions, input).
  - json: the same document as JSON.
*/
package loader
