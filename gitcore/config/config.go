// Package config contains methods to read and write the INI
// configuration files impacting a repository: the repo's own
// .git/config, and the user's global files for identity
package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/ini.v1"
)

// Sections and keys of the repo config
const (
	CfgCore              = "core"
	CfgCoreFormatVersion = "repositoryformatversion"
	CfgCoreFileMode      = "filemode"
	CfgCoreBare          = "bare"

	cfgUser      = "user"
	cfgUserName  = "name"
	cfgUserEmail = "email"
)

// ErrNoIdentity is an error thrown when the user has no name or email
// configured in their global config files
var ErrNoIdentity = errors.New("user identity not configured, set user.name and user.email")

// Env represents a method used to look up environment variables.
// It exists so tests don't have to mutate the process environment
type Env func(key string) string

// WriteDefault persists the default configuration of a new repository
func WriteDefault(fs afero.Fs, path string) error {
	cfg := ini.Empty()

	core, err := cfg.NewSection(CfgCore)
	if err != nil {
		return xerrors.Errorf("could not create core section: %w", err)
	}
	coreCfg := []struct {
		key   string
		value string
	}{
		{CfgCoreFormatVersion, "0"},
		{CfgCoreFileMode, "false"},
		{CfgCoreBare, "false"},
	}
	for _, kv := range coreCfg {
		if _, err := core.NewKey(kv.key, kv.value); err != nil {
			return xerrors.Errorf("could not set %s: %w", kv.key, err)
		}
	}

	// ini can only save to the OS filesystem directly, so we go
	// through a buffer to stay on the afero one
	buf := new(bytes.Buffer)
	if _, err := cfg.WriteTo(buf); err != nil {
		return xerrors.Errorf("could not serialize the config: %w", err)
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return xerrors.Errorf("could not persist the config: %w", err)
	}
	return nil
}

// Load reads and parses the config file at the given path
func Load(fs afero.Fs, path string) (*ini.File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, xerrors.Errorf("could not read config file: %w", err)
	}
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, xerrors.Errorf("could not parse config file: %w", err)
	}
	return cfg, nil
}

// RepoFormatVersion returns the version of the format of the repo
func RepoFormatVersion(cfg *ini.File) (version int, ok bool) {
	v, err := cfg.Section(CfgCore).Key(CfgCoreFormatVersion).Int()
	if err != nil {
		return 0, false
	}
	return v, true
}

// Identity returns the name and email of the user, merged from
// $XDG_CONFIG_HOME/git/config (defaults to ~/.config/git/config) and
// ~/.gitconfig, the latter taking precedence
// https://git-scm.com/docs/git-config#FILES
func Identity(fs afero.Fs, env Env) (name, email string, err error) {
	xdgHome := env("XDG_CONFIG_HOME")
	if xdgHome == "" {
		xdgHome = filepath.Join(env("HOME"), ".config")
	}
	paths := []string{
		filepath.Join(xdgHome, "git", "config"),
		filepath.Join(env("HOME"), ".gitconfig"),
	}

	cfg := ini.Empty()
	for _, p := range paths {
		data, err := afero.ReadFile(fs, p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", "", xerrors.Errorf("could not read %s: %w", p, err)
		}
		if err := cfg.Append(data); err != nil {
			return "", "", xerrors.Errorf("could not parse %s: %w", p, err)
		}
	}

	user := cfg.Section(cfgUser)
	name = user.Key(cfgUserName).String()
	email = user.Key(cfgUserEmail).String()
	if name == "" || email == "" {
		return "", "", ErrNoIdentity
	}
	return name, email, nil
}
