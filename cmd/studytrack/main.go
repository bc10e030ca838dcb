package main

import (
	"flag"
	"fmt"
	"os"
	"studytrack/internal/di"
	"studytrack/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config/config.yaml", "path to the YAML config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "log to the console as well")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "studytrack: %s\n", err)
		os.Exit(1)
	}
}
