package main

import "taskhub/internal/app"

// @title           TaskHub API
// @version         1.0
// @description     Task-management backend: auth, tasks, dashboards, reports.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
