package main

import "github.com/SmartAppUnipi/ArtGuide/cmd"

func main() {
	cmd.Execute()
}
