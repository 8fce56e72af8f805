// Command home-guard is the operator CLI for the home security panel.
package main

import "github.com/oshokin/home-guard/cmd/home-guard/cmd"

func main() {
	cmd.Execute()
}
