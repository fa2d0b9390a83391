/*
Package runner implements the interactive shopping loop for the storefront.

It bridges the session manager and a terminal or a pipe. The runner renders the
current page, reads one command per line, turns it into an intent and applies it
to the stored session.

# Key Components

  - Runner: the read-render loop bound to one session.
  - IOHandler: decouples how views are shown and how commands are read.
  - TextHandler: interactive CLI usage.
  - JSONHandler: JSON-Lines for scripted hosts.

# Commands

	home | products | cart | go <page>    navigate
	add <id> | inc <id> | dec <id> | rm <id>
	checkout | help | quit

A JSON object line such as {"type":"ADD_TO_CART","product_id":1} is accepted as a raw intent.

# Usage

	r := runner.NewRunner(manager,
		runner.WithSessionID("user-1"),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
