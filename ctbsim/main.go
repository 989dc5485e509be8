// Command ctbsim runs a turn-based simulation from the command line.
package main

import "github.com/smokemonkey/godot-ctb-game-sub000/ctbsim/cmd"

func main() {
	cmd.Execute()
}
