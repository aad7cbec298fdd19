package main

import (
	git "github.com/gitlite/gitlite"
	"github.com/sirupsen/logrus"
)

// loadRepository finds the repository containing the current working
// directory (or the directory given with -C)
func loadRepository(cfg *globalFlags) (*git.Repository, error) {
	r, err := git.FindRepository(cfg.C.String(), nil)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("using repository at %s", r.Worktree())
	return r, nil
}
