package main

import "github.com/jsphweid/freqnote/cmd"

func main() {
	cmd.Execute()
}
