package main

import "github.com/frahmantamala/maritime-backoffice/cmd"

func main() {
	cmd.Execute()
}
