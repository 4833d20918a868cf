package main

import "assekura/internal/app"

// @title           Assekura API
// @version         1.0
// @description     Backend for the Assekura marketing site: blog content, phone verification and lead intake.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	app.Run()
}
