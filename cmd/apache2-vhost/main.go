package main

import (
	"os"

	"github.com/akoimeexx/apache2-vhost/internal/cli"
	"github.com/akoimeexx/apache2-vhost/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cli.SetVersion(version)
	code := cli.Execute()
	logger.Sync()
	os.Exit(code)
}
