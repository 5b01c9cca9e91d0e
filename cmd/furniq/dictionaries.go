package main

import (
	"fmt"

	"github.com/fwojciec/furniq/yaml"
)

// Run executes the dictionaries export command.
func (c *DictionariesExportCmd) Run(deps *Dependencies) error {
	paths, err := yaml.WriteDir(c.Dir, deps.Dictionaries)
	for _, p := range paths {
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", p)
	}
	return err
}
