package app

import (
	"fmt"
	"os"
	"path/filepath"

	"chore/internal/config"
)

// Identity override variables. Setting one locks that field against the
// config file and invocation defaults.
const (
	EnvForceName = "CHORE_FORCE_NAME"
	EnvForceDesc = "CHORE_FORCE_DESC"
)

// Identity is the tool's presented name, summary and version. It is
// resolved once at startup and passed by value; nothing mutates it later.
type Identity struct {
	Name    string
	Summary string
	Version string
}

// field is one identity slot. The first non-empty write locks it, so a
// higher-precedence source can never be overwritten by a lower one.
type field struct {
	value  string
	locked bool
}

func (f *field) set(v string) {
	if f.locked || v == "" {
		return
	}
	f.value = v
	f.locked = true
}

// ResolveIdentity applies the precedence environment override, then the
// config [app] section, then defaults derived from the invocation path.
// Each field locks independently. A summary that no source set explicitly
// is regenerated from whichever name won.
func ResolveIdentity(argv0 string, appCfg config.AppConfig, buildVersion string) Identity {
	var name, summary, version field

	name.set(os.Getenv(EnvForceName))
	name.set(appCfg.Name)
	name.set(filepath.Base(argv0))

	summary.set(os.Getenv(EnvForceDesc))
	summary.set(appCfg.Description)

	version.set(appCfg.Version)
	version.set(buildVersion)

	if !summary.locked {
		summary.value = fmt.Sprintf("%s development task runner", name.value)
	}

	return Identity{
		Name:    name.value,
		Summary: summary.value,
		Version: version.value,
	}
}
