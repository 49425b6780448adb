package main

import "github.com/pkg/errors"

var (
	errNoPackages = errors.New("no packages given: pass --packages or set [packages] in the config file")
	errDirLocked  = errors.New("the output directory is locked by another debclose run")
)
