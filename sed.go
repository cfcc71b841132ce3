package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/ylacancellera/beacon-log-explainer/types"
)

type sed struct {
	ByIP bool `help:"Replace by IP instead of name"`
}

func (s *sed) Help() string {
	return `sed translates a log, replacing node ids, peer ids and IPs with either the node name or its IP everywhere. By default it replaces by name.

Use like so:
	cat teku.log | beacon-log-explainer sed | less
	beacon-log-explainer sed --by-ip < teku.log | less`
}

func (s *sed) Run() error {
	roster, err := loadRoster()
	if err != nil {
		return errors.Wrap(err, "could not load the node roster")
	}

	args := []string{}
	for _, entry := range roster.Entries() {
		switch {
		case CLI.Sed.ByIP:
			args = append(args, sedByIP(entry)...)
		default:
			args = append(args, sedByName(entry)...)
		}
	}
	if len(args) == 0 {
		return errors.New("Could not find informations to replace")
	}

	fstat, err := os.Stdin.Stat()
	if err != nil {
		return err
	}
	if fstat.Mode()&os.ModeCharDevice != 0 {
		fmt.Println("No files found in stdin, returning the sed command instead:")
		fmt.Println("sed", strings.Join(args, " "))
		return nil
	}

	cmd := exec.Command("sed", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func sedByName(entry types.RosterEntry) []string {
	args := sedSliceWith(nodeIDForms(entry), entry.Name)
	args = append(args, sedSliceWith([]string{entry.PeerID}, entry.Name)...)
	return append(args, sedSliceWith([]string{sedIPPattern(entry.IP)}, entry.Name)...)
}

func sedByIP(entry types.RosterEntry) []string {
	if entry.IP == "" {
		return nil
	}
	args := sedSliceWith(nodeIDForms(entry), entry.IP)
	return append(args, sedSliceWith([]string{entry.PeerID}, entry.IP)...)
}

// nodeIDForms is ordered from the longest to the shortest, sed applies expressions in order
func nodeIDForms(entry types.RosterEntry) []string {
	hex := entry.NodeID.String()
	return []string{"0x" + hex, hex}
}

// 10.0.0.1 must not rewrite the start of 10.0.0.12
func sedIPPattern(ip string) string {
	if ip == "" {
		return ""
	}
	return `\b` + strings.ReplaceAll(ip, ".", `\.`) + `\b`
}

func sedSliceWith(elems []string, replace string) []string {
	args := []string{}
	for _, elem := range elems {
		if elem == "" {
			continue
		}
		args = append(args, "-e")
		args = append(args, "s/"+elem+"/"+replace+"/g")
	}
	return args
}
