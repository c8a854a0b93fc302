package main

import "limeal.fr/launchygo-resolver/cmd"

func main() {
	cmd.Execute()
}
