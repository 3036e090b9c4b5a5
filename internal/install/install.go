package install

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"bl2bids/internal/common"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Mode selects how files are placed.
type Mode int

const (
	// ModeLink hard-links files and symlinks directories.
	ModeLink Mode = iota
	// ModeCopy copies files and directories.
	ModeCopy
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeLink:
		return "link"
	case ModeCopy:
		return "copy"
	default:
		return common.UnknownStr
	}
}

// Outcome reports what Install did.
type Outcome int

const (
	// Installed means dest now exists and points at src.
	Installed Outcome = iota
	// SkippedMissing means src does not exist; nothing was done.
	SkippedMissing
	// SkippedExists means dest already existed; nothing was done.
	SkippedExists
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Installed:
		return "installed"
	case SkippedMissing:
		return "skipped: source missing"
	case SkippedExists:
		return "skipped: destination exists"
	default:
		return common.UnknownStr
	}
}

// Installer places files according to its Mode.
type Installer struct {
	Mode Mode
}

// Install places src at dest. The parent directory of dest must exist.
func (i Installer) Install(src, dest string) (Outcome, error) {
	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithFields(log.Fields{"src": src}).Info("not found")
		return SkippedMissing, nil
	}

	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", src, err)
	}

	if _, err := os.Lstat(dest); err == nil {
		log.WithFields(log.Fields{"dest": dest}).Warn("already exists")
		return SkippedExists, nil
	}

	switch {
	case i.Mode == ModeCopy && info.IsDir():
		err = copyTree(src, dest)
		if err == nil && strings.HasSuffix(dest, ".ds") {
			err = renameCTF(dest)
		}
	case i.Mode == ModeCopy:
		err = copyFile(src, dest, info.Mode().Perm())
	case info.IsDir():
		err = symlinkDir(src, dest)
	default:
		log.WithFields(log.Fields{"src": src, "dest": dest}).Info("hard-linking")
		err = os.Link(src, dest)
	}

	if err != nil {
		return 0, fmt.Errorf("installing %s to %s: %w", src, dest, err)
	}

	return Installed, nil
}

// symlinkDir links dest to src with a path relative to dest's directory, so
// the tree stays valid when moved together with its sources.
func symlinkDir(src, dest string) error {
	target := src

	if !filepath.IsAbs(src) {
		absSrc, err := filepath.Abs(src)
		if err != nil {
			return err
		}

		absDir, err := filepath.Abs(filepath.Dir(dest))
		if err != nil {
			return err
		}

		target, err = filepath.Rel(absDir, absSrc)
		if err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{"target": target, "dest": dest}).Info("it's directory.. sym-linking")

	return os.Symlink(target, dest)
}

func copyFile(src, dest string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if perm == 0 {
		perm = filePerm
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

func copyTree(src, dest string) error {
	log.WithFields(log.Fields{"src": src, "dest": dest}).Info("copying directory")

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, dirPerm)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		return copyFile(path, target, info.Mode().Perm())
	})
}

// ctfExts are the CTF bundle files named after their bundle.
var ctfExts = []string{".acq", ".eeg", ".hc", ".hist", ".infods", ".bak", ".meg4", ".newds", ".res4"}

// renameCTF renames the top-level CTF files in dir after the bundle, e.g.
// "sub-01_task-id1_meg.ds/x.meg4" becomes ".../sub-01_task-id1_meg.meg4".
func renameCTF(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	bundle := strings.TrimSuffix(filepath.Base(dir), filepath.Ext(dir))

	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || !slices.Contains(ctfExts, ext) || e.Name() == bundle+ext {
			continue
		}

		if err := os.Rename(filepath.Join(dir, e.Name()), filepath.Join(dir, bundle+ext)); err != nil {
			return err
		}
	}

	return nil
}
