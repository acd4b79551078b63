// @title         mock-interview API
// @version       1.0
// @description   Mock interview service: AI-generated questions (optionally grounded in a resume), per-answer scoring, summaries and ideal answers, plus ATS-style resume critique.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
