package main

import "privdm_backend/internal/app"

func main() {
	app.Run()
}
