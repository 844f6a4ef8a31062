package main

import "github.com/MaheshMoholkar/slack/cmd/server"

func main() {
	server.NewServer().Run()
}
