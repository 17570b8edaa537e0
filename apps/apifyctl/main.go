package main

import "github.com/yonnyZer0/apify/apps/apifyctl/cmd"

func main() {
	cmd.Execute()
}
