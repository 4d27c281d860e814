/*
Package balance is an equation transformation engine for teaching linear
equations with a balance-scale metaphor.

A learner starts from a puzzle such as 3x + 2 = 14 and applies the same
operation to both sides until x stands alone. The engine validates every
step, refuses operations that would leave the integers (dividing 3x = 14 by
3) or take away more bags of x than a side holds, records a history that can
be undone, and suggests the next step on request.

# Usage

	eng, err := balance.New()
	if err != nil {
		log.Fatal(err)
	}

	s, err := eng.NewSession(context.Background(), "L04-1")
	if err != nil {
		log.Fatal(err)
	}

	s.Apply(domain.OpSubtract, 2) // 3x = 12
	s.Apply(domain.OpDivide, 3)   // x = 4
	fmt.Println(s.IsSolved())     // true

Hosting surfaces live in sibling packages: an interactive terminal runner
(pkg/runner), an HTTP JSON API with server-sent events (pkg/adapters/http),
an MCP tool server (pkg/adapters/mcp) and a session manager that serializes
events across replicas (pkg/session).
*/
package balance
