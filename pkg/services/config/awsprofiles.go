package config

import (
	"context"
	"strings"

	"gopkg.in/ini.v1"
)

// ProfileRegistry enumerates the profiles available in an AWS shared config
// file.
type ProfileRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
}

type profileRegistry struct {
	cfg *ini.File
}

func NewProfileRegistry(path string) (ProfileRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &profileRegistry{cfg: cfg}, nil
}

func (pr *profileRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range pr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		// Shared config files name sections "profile <name>" except for
		// the default profile.
		name := strings.TrimPrefix(section.Name(), "profile ")
		profiles = append(profiles, name)
	}
	return profiles, nil
}
