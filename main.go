package main

import "github.com/thereayou/geoguess/cmd/server"

func main() {
	server.NewServer().Run()
}
