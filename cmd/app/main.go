package main

import (
	"github.com/humanbelnik/moviematch/internal/app"
	"github.com/humanbelnik/moviematch/internal/config"
)

func main() {
	app.Go(config.Load())
}
