package main

import "bikeshare-stats/cli"

func main() {
	cli.Execute()
}
