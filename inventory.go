package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/ylacancellera/beacon-log-explainer/display"
)

type inventoryCmd struct {
	JSON bool `name:"json" help:"Print the roster as json"`
}

func (i *inventoryCmd) Help() string {
	return "List the nodes known from the devnet inventory, the names every identifier is translated to"
}

func (i *inventoryCmd) Run() error {
	roster, err := loadRoster()
	if err != nil {
		return errors.Wrap(err, "could not load the node roster")
	}

	if !i.JSON {
		display.RosterCLI(os.Stdout, roster)
		return nil
	}

	out, err := json.MarshalIndent(roster.Entries(), "", "\t")
	if err != nil {
		return errors.Wrap(err, "could not marshal roster")
	}
	fmt.Println(string(out))
	return nil
}
