// FILE: lixenwraith/typedconfig/discovery.go
package typedconfig

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FileDiscoveryOptions controls where WithFileDiscovery looks for a configuration file.
type FileDiscoveryOptions struct {
	Name       string   // file base name without extension
	Extensions []string // tried in order for every directory
	Paths      []string // directories searched before the defaults

	// EnvVar names an environment variable holding an explicit file path
	EnvVar string

	// CLIFlag names an argument holding an explicit file path, given as
	// "--config=path" or "--config path". Matching tokens are removed from the
	// builder's arguments so they never reach the parser.
	CLIFlag string

	UseXDG        bool // search $XDG_CONFIG_HOME/<name> and $XDG_CONFIG_DIRS
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns options for an application named appName:
// "--config" flag, APPNAME_CONFIG variable, working directory, then XDG directories.
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml", ".json"},
		EnvVar:        strings.ToUpper(strings.ReplaceAll(appName, "-", "_")) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// WithFileDiscovery sets the builder's file from, in order: the CLI flag, the
// environment variable, the first existing candidate in the search directories.
// Finding nothing leaves the file unset. Call it after WithArgs and WithLogger.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	if opts.CLIFlag != "" {
		if path, rest, ok := cutFlagValue(b.args, opts.CLIFlag); ok {
			b.logger.Debug("configuration file from command line", "flag", opts.CLIFlag, "path", path)
			b.file, b.args = path, rest
			return b
		}
	}

	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			b.logger.Debug("configuration file from environment", "var", opts.EnvVar, "path", path)
			b.file = path
			return b
		}
	}

	for _, dir := range discoveryDirs(opts) {
		for _, ext := range opts.Extensions {
			candidate := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				b.logger.Debug("configuration file discovered", "path", candidate)
				b.file = candidate
				return b
			}
		}
	}

	b.logger.Debug("no configuration file discovered", "name", opts.Name)
	return b
}

// cutFlagValue finds flag in args and returns its value with the flag tokens removed.
func cutFlagValue(args []string, flag string) (string, []string, bool) {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1], slices.Delete(slices.Clone(args), i, i+2), true
		}
		if value, ok := strings.CutPrefix(arg, flag+"="); ok {
			return value, slices.Delete(slices.Clone(args), i, i+1), true
		}
	}
	return "", args, false
}

// discoveryDirs lists search directories: custom paths, working directory, XDG.
func discoveryDirs(opts FileDiscoveryOptions) []string {
	dirs := slices.Clone(opts.Paths)
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			dirs = append(dirs, cwd)
		}
	}
	if opts.UseXDG {
		dirs = append(dirs, getXDGConfigPaths(opts.Name)...)
	}
	return dirs
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths, filepath.Join("/etc/xdg", appName), filepath.Join("/etc", appName))
	}

	return paths
}
