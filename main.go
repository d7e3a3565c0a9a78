package main

import (
	"github.com/biosecret/go-todo/app"
)

//	@title			Todo API
//	@version		1.0
//	@description	Multi-user todo list server.
//	@BasePath		/
func main() {
	// setup and run app
	err := app.SetupAndRunApp()
	if err != nil {
		panic(err)
	}
}
