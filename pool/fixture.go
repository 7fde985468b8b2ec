package pool

import (
	"io"

	toml "github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Fixture is the literal, on-disk representation of a solvable universe,
// one level down from the teacher's Gopkg.toml manifest format: instead of
// project constraints it lists repositories and solvables directly. It
// exists so the policycheck command (and tests that want a large literal
// universe) can describe one without hand-building Pool/Solvable values.
type Fixture struct {
	DistType string           `toml:"disttype"`
	Repo     []FixtureRepo     `toml:"repo"`
	Solvable []FixtureSolvable `toml:"solvable"`
}

// FixtureRepo describes one Repo entry.
type FixtureRepo struct {
	Name        string `toml:"name"`
	Priority    int    `toml:"priority"`
	Subpriority int    `toml:"subpriority"`
	Installed   bool   `toml:"installed"`
}

// FixtureSolvable describes one Solvable entry, referencing its repo by
// name.
type FixtureSolvable struct {
	Name       string   `toml:"name"`
	EVR        string   `toml:"evr"`
	Arch       string   `toml:"arch"`
	Vendor     string   `toml:"vendor"`
	Repo       string   `toml:"repo"`
	Provides   []string `toml:"provides"`
	Obsoletes  []string `toml:"obsoletes"`
	Requires   []string `toml:"requires"`
}

// LoadFixture reads a Fixture from r (the Gopkg.toml-shaped format
// described by Fixture) and builds a Pool from it, wiring every
// FixtureSolvable into the pool's WhatProvides index.
func LoadFixture(r io.Reader) (*Pool, error) {
	var f Fixture
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decoding pool fixture")
	}

	p := NewPool()
	if f.DistType == "conda" {
		p.DistType = DistConda
	}
	p.NoarchID = p.InternArch("noarch")

	repos := make(map[string]*Repo, len(f.Repo))
	for _, fr := range f.Repo {
		r := &Repo{Name: fr.Name, Priority: fr.Priority, Subpriority: fr.Subpriority, Installed: fr.Installed}
		repos[fr.Name] = r
		if fr.Installed {
			if p.Installed != nil {
				return nil, errors.Errorf("fixture declares more than one installed repo: %q and %q", p.Installed.Name, fr.Name)
			}
			p.Installed = r
		}
	}

	for _, fs := range f.Solvable {
		repo, ok := repos[fs.Repo]
		if !ok {
			return nil, errors.Errorf("solvable %q references unknown repo %q", fs.Name, fs.Repo)
		}
		s := Solvable{
			Name:   p.InternName(fs.Name),
			EVR:    p.InternEVR(fs.EVR),
			Arch:   p.InternArch(fs.Arch),
			Vendor: p.InternVendor(fs.Vendor),
			Repo:   repo,
		}
		for _, d := range fs.Provides {
			s.Provides = append(s.Provides, p.InternName(d))
		}
		for _, d := range fs.Obsoletes {
			s.Obsoletes = append(s.Obsoletes, p.InternName(d))
		}
		for _, d := range fs.Requires {
			s.Requires = append(s.Requires, p.InternName(d))
		}
		p.AddSolvable(s)
	}
	return p, nil
}
