// File: cmd/service/main.go
// @title        Users API
// @version      1.0
// @description  使用者 CRUD 服務的 API 文件
// @host         localhost:8080
// @BasePath     /
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Error().Err(err).Msg("service exited")
		exitFunc(1)
	}
}
