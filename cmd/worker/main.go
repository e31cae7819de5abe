package main

import "bitbucket.org/Amartha/go-accounting-landing/cmd/worker/cmd"

func main() {
	cmd.Execute()
}
