// Package mods implements filesystem operations on mod directories:
// installing a mod is copying its tree into the managed mods directory
// and registering it in openmw.cfg; this package owns the copying side.
package mods

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/openmwmm/pkg/constants"
	"github.com/agentstation/openmwmm/pkg/errors"
	"github.com/agentstation/openmwmm/pkg/omwconfig"
)

// dataSubdirs are directory names the engine looks for inside a data
// directory. A directory containing one of these is a mod even when it
// ships no plugin file (texture or mesh replacers).
var dataSubdirs = map[string]bool{
	"textures": true,
	"meshes":   true,
	"icons":    true,
	"fonts":    true,
	"music":    true,
	"sound":    true,
	"bookart":  true,
	"splash":   true,
	"video":    true,
}

// IsModDir reports whether path looks like a Morrowind mod directory:
// it contains a plugin file, a .bsa archive, or a known data subdirectory.
func IsModDir(path string) (bool, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return false, errors.WrapIO("read", path, err)
	}
	for _, d := range dirents {
		name := strings.ToLower(d.Name())
		if d.IsDir() {
			if dataSubdirs[name] {
				return true, nil
			}
			continue
		}
		if omwconfig.IsPluginFile(name) || strings.HasSuffix(name, ".bsa") {
			return true, nil
		}
	}
	return false, nil
}

// CopyDir copies the directory tree at src to dest, which must not exist.
// Regular files and directories only; anything else is skipped. The
// context is checked between entries so a large copy can be canceled,
// leaving a partial destination for the caller to clean up.
func CopyDir(ctx context.Context, src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.WrapIO("stat", src, err)
	}
	if !info.IsDir() {
		return errors.NewValidationError("source", src, "not a directory")
	}
	if _, err := os.Stat(dest); err == nil {
		return errors.WrapResource("create", "directory", dest, errors.ErrAlreadyExists)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapIO("read", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.WrapIO("resolve", path, err)
		}
		target := filepath.Join(dest, rel)

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, constants.DirPermissions); err != nil {
				return errors.WrapIO("create", target, err)
			}
		case d.Type().IsRegular():
			if err := copyFile(path, target); err != nil {
				return err
			}
		}
		return nil
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapIO("open", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.WrapIO("write", dest, err)
	}
	if err := out.Close(); err != nil {
		return errors.WrapIO("write", dest, err)
	}
	return nil
}

// Remove deletes a mod directory tree.
func Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errors.WrapIO("remove", path, err)
	}
	return nil
}
