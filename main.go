package main

import server "github.com/thereayou/pelican/cmd/server"

func main() {
	server.NewServer().Run()
}
