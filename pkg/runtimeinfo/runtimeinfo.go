// Package runtimeinfo describes the running binary, its name and build version.
package runtimeinfo

import (
	"fmt"
	"runtime/debug"
)

//go:generate go tool github.com/golang/mock/mockgen -source=runtimeinfo.go -destination ../mocks/runtimeinfo.go -package mocks -self_package github.com/CybeDefend/cybedefend-vscode-sub000/pkg/runtimeinfo/

const develVersion = "dev"

type RuntimeInfo interface {
	GetName() string
	SetName(string)

	GetVersion() string
	SetVersion(string)

	// GetCommit returns the vcs revision the binary was built from, empty if unknown.
	GetCommit() string
	String() string
}

type Option func(*info)

type info struct {
	name    string
	version string
	commit  string
}

var _ RuntimeInfo = (*info)(nil)

func (ri *info) GetName() string     { return ri.name }
func (ri *info) SetName(n string)    { ri.name = n }
func (ri *info) GetVersion() string  { return ri.version }
func (ri *info) SetVersion(v string) { ri.version = v }
func (ri *info) GetCommit() string   { return ri.commit }

// String renders the info the way `cybedefend version` prints it, e.g. "cybedefend 1.2.0 (3f2a9c1)".
func (ri *info) String() string {
	s := fmt.Sprintf("%s %s", ri.name, ri.version)
	if len(ri.commit) > 0 {
		s += fmt.Sprintf(" (%.7s)", ri.commit)
	}
	return s
}

// New creates runtime info. Version and commit fall back to the module build info, then to "dev".
func New(opts ...Option) RuntimeInfo {
	ri := &info{version: develVersion}
	readBuildInfo(ri, debug.ReadBuildInfo)

	for _, fn := range opts {
		fn(ri)
	}

	return ri
}

func readBuildInfo(ri *info, read func() (*debug.BuildInfo, bool)) {
	bi, ok := read()
	if !ok || bi == nil {
		return
	}

	if v := bi.Main.Version; len(v) > 0 && v != "(devel)" {
		ri.version = v
	}

	for _, setting := range bi.Settings {
		if setting.Key == "vcs.revision" {
			ri.commit = setting.Value
		}
	}
}

func WithName(n string) Option {
	return func(ri *info) {
		ri.name = n
	}
}

// WithVersion overrides the detected version, an empty value is ignored.
func WithVersion(v string) Option {
	return func(ri *info) {
		if len(v) > 0 {
			ri.version = v
		}
	}
}

func WithCommit(c string) Option {
	return func(ri *info) {
		if len(c) > 0 {
			ri.commit = c
		}
	}
}
