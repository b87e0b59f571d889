package main

import "authbase/internal/app"

// @title           Authbase API
// @version         1.0
// @description     Account management: registration, login, email verification and password reset.
// @BasePath        /api
func main() {
	app.Run()
}
