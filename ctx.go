package main

import (
	"os"

	"github.com/davecgh/go-spew/spew"
)

type ctx struct {
	Paths []string `arg:"" optional:"" name:"paths" help:"paths of the log to use, stdin when empty"`
}

func (c *ctx) Help() string {
	return "Dump the state of every tracker after reading the log"
}

func (c *ctx) Run() error {
	engine, err := engineFromPaths(c.Paths)
	if err != nil {
		return err
	}

	cfg := spew.ConfigState{Indent: "\t", DisablePointerAddresses: true, SortKeys: true}
	cfg.Fdump(os.Stdout, engine.Summary())
	return nil
}
