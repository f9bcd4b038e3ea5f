package main

import "github.com/frahmantamala/crm-console/cmd"

func main() {
	cmd.Execute()
}
