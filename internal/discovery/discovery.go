// Package discovery finds Java source files under a directory using glob patterns.
package discovery

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	// rootGlob is the pattern without a leading **/, so "**/*.java" also matches "Main.java".
	rootGlob glob.Glob
}

// FileDiscovery handles file discovery with glob patterns and ignore rules.
type FileDiscovery struct {
	rootDir        string
	includePattern []compiledPattern
	ignorePatterns []compiledPattern
	gitignore      *ignore.GitIgnore
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir: rootDir,
	}

	var err error
	if fd.includePattern, err = compilePatterns(includePatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}

	return fd, nil
}

// UseGitignore additionally skips paths matched by the root's .gitignore.
// A missing .gitignore is not an error.
func (fd *FileDiscovery) UseGitignore() error {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(fd.rootDir, ".gitignore"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	fd.gitignore = gi
	return nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		cp := compiledPattern{pattern: pattern, glob: g}
		if simplified, ok := strings.CutPrefix(pattern, "**/"); ok {
			if cp.rootGlob, err = glob.Compile(simplified, '/'); err != nil {
				return nil, err
			}
		}
		compiled = append(compiled, cp)
	}
	return compiled, nil
}

// DiscoverFiles walks the directory tree and returns matching files, sorted by path.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(fd.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath != "." && (fd.shouldIgnore(relPath) || fd.gitignored(relPath+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.shouldIgnore(relPath) || fd.gitignored(relPath) {
			return nil
		}

		if matchesAnyPattern(relPath, fd.includePattern) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	if matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// "target" should match pattern "target/**"
	return matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
}

func (fd *FileDiscovery) gitignored(relPath string) bool {
	return fd.gitignore != nil && fd.gitignore.MatchesPath(relPath)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	inRoot := !strings.Contains(path, "/")
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
		if inRoot && cp.rootGlob != nil && cp.rootGlob.Match(path) {
			return true
		}
	}
	return false
}
