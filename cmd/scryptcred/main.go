package main

import (
	"log"

	"github.com/spf13/afero"

	"github.com/fhilgers/scryptcred/cmd/scryptcred/cli"
)

func main() {
	root := cli.NewRootCmd(&cli.App{Fs: afero.NewOsFs()})
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
