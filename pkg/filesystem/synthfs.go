package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/runtimeup/pkg/logging"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// synthFS runs directory and file creation as synthfs operations against
// the root filesystem. Reads, Stat and Remove go to host.
type synthFS struct {
	host   types.FS
	target filesystem.FullFileSystem
	logger zerolog.Logger
}

// NewSynthfs returns a types.FS whose MkdirAll and WriteFile are executed
// by synthfs. host must see the same files as the OS root, normally NewOS().
func NewSynthfs(host types.FS) types.FS {
	osfs := filesystem.NewOSFileSystem("/")
	return &synthFS{
		host:   host,
		target: synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
		logger: logging.GetLogger("filesystem.synthfs"),
	}
}

func (s *synthFS) Stat(name string) (fs.FileInfo, error) {
	return s.host.Stat(name)
}

func (s *synthFS) Lstat(name string) (fs.FileInfo, error) {
	return s.host.Lstat(name)
}

func (s *synthFS) ReadFile(name string) ([]byte, error) {
	return s.host.ReadFile(name)
}

func (s *synthFS) Remove(name string) error {
	return s.host.Remove(name)
}

// MkdirAll creates each missing level of path
func (s *synthFS) MkdirAll(path string, perm fs.FileMode) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	sfs := synthfs.New()
	var ops []synthfs.Operation
	for _, dir := range s.missingDirs(path) {
		ops = append(ops, sfs.CreateDirWithID(opID("mkdir", dir), dir, perm))
	}
	return s.run(ops)
}

// WriteFile replaces name with data. Missing parent directories are created
// in the same run.
func (s *synthFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	name, err := filepath.Abs(name)
	if err != nil {
		return err
	}

	if info, err := s.host.Lstat(name); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", name)
		}
		if err := s.host.Remove(name); err != nil {
			return err
		}
	}

	sfs := synthfs.New()
	var ops []synthfs.Operation
	for _, dir := range s.missingDirs(filepath.Dir(name)) {
		ops = append(ops, sfs.CreateDirWithID(opID("mkdir", dir), dir, 0755))
	}
	ops = append(ops, sfs.CreateFileWithID(opID("write", name), name, data, perm))
	return s.run(ops)
}

// missingDirs returns the levels of dir that do not exist, outermost first
func (s *synthFS) missingDirs(dir string) []string {
	var missing []string
	for d := dir; d != "/" && d != "."; d = filepath.Dir(d) {
		if _, err := s.host.Stat(d); err == nil {
			break
		}
		missing = append([]string{d}, missing...)
	}
	return missing
}

func (s *synthFS) run(ops []synthfs.Operation) error {
	if len(ops) == 0 {
		return nil
	}

	s.logger.Debug().Int("operations", len(ops)).Msg("Running synthfs operations")
	_, err := synthfs.RunWithOptions(context.Background(), s.target, synthfs.DefaultPipelineOptions(), ops...)
	return err
}

func opID(kind, path string) string {
	return fmt.Sprintf("%s_%s_%d", kind, filepath.Base(path), time.Now().UnixNano())
}
