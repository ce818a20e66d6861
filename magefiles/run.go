//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Prints mesh statistics for every testbed model.
func (Run) Inspect() error {
	models, err := filepath.Glob("testbed/assets/models/*.obj")
	if err != nil {
		return err
	}
	fmt.Println("Inspect testbed models...")
	args := append([]string{"run", ".", "inspect"}, models...)
	if _, err := executeCmd("go", withArgs(args...), withStream()); err != nil {
		return err
	}
	return nil
}

// Renders the house scene headless with the testbed configuration.
func (Run) Scene() error {
	fmt.Println("Run house scene...")
	if _, err := executeCmd("go", withArgs("run", ".", "-v", "--config", "objscene.toml", "scene", "scenes/house.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
