/*
Package runner implements the interactive loop around a balance session.

The Runner renders the equation, reads a command through an IOHandler,
applies it and renders again. TextHandler serves terminals (with optional
colours, markdown panels and a text balance scale); JSONHandler speaks
JSON Lines for scripts and agents.

# Usage

	eng, _ := balance.New()
	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithPuzzle("L04-1"),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
