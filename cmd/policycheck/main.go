// Command policycheck loads a literal solvable universe from a TOML
// fixture and runs the policy engine's filter pipeline against one
// dependency name, printing the surviving candidates in order.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/baszalmstra/libsolv/policy"
	"github.com/baszalmstra/libsolv/pool"
	"github.com/baszalmstra/libsolv/solver"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("policycheck", flag.ContinueOnError)
	fixturePath := fs.String("fixture", "", "path to a TOML pool fixture (see pool.Fixture)")
	name := fs.String("name", "", "dependency name to resolve candidates for")
	mode := fs.String("mode", "choose", "one of: choose, choose-noreorder, recommend, suggest, supplement, best")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *fixturePath == "" || *name == "" {
		fmt.Fprintln(stderr, "usage: policycheck -fixture <path.toml> -name <dep-name> [-mode <mode>]")
		return 2
	}

	p, err := loadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintln(stderr, errors.Wrap(err, "policycheck"))
		return 1
	}

	nameID, ok := p.LookupName(*name)
	if !ok {
		fmt.Fprintf(stderr, "policycheck: no solvable named %q in fixture\n", *name)
		return 1
	}

	q := policy.Queue(p.WhatProvides(nameID))
	filtered, err := filterQueue(p, q, *mode)
	if err != nil {
		fmt.Fprintln(stderr, errors.Wrap(err, "policycheck"))
		return 1
	}

	for _, id := range filtered {
		s := p.Solvable(id)
		fmt.Fprintf(stdout, "%s/%s-%s.%s\n", s.Repo.Name, p.Name(s.Name), p.EVRString(s.EVR), p.ArchString(s.Arch))
	}
	return 0
}

func loadFixture(path string) (*pool.Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening fixture")
	}
	defer f.Close()
	return pool.LoadFixture(f)
}

func filterQueue(p *pool.Pool, q policy.Queue, mode string) (policy.Queue, error) {
	if mode == "best" {
		return policy.PoolBestSolvables(p, q), nil
	}

	fm, ok := map[string]policy.FilterMode{
		"choose":           policy.ModeChoose,
		"choose-noreorder": policy.ModeChooseNoReorder,
		"recommend":        policy.ModeRecommend,
		"suggest":          policy.ModeSuggest,
		"supplement":       policy.ModeSupplement,
	}[mode]
	if !ok {
		return nil, errors.Errorf("unknown mode %q", mode)
	}

	sv := solver.New(p)
	return policy.PolicyFilterUnwanted(sv, q, fm, 0), nil
}
