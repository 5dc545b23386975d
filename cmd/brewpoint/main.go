// Command brewpoint runs the coffee shop ordering ledger.
package main

import "github.com/brewpoint/brewpoint/internal/cli"

func main() {
	cli.Execute()
}
