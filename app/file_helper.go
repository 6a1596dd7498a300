package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// rubyExtensions are the source extensions analyzers are run over
var rubyExtensions = map[string]bool{
	".rb":      true,
	".rake":    true,
	".gemspec": true,
	".ru":      true,
}

// rubyFileNames are extensionless Ruby sources
var rubyFileNames = map[string]bool{
	"Rakefile": true,
	"Gemfile":  true,
}

// FileHelper provides file operation utilities
type FileHelper struct {
	// UseGitignore also applies a .gitignore found at the root of each walked directory
	UseGitignore bool
}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{UseGitignore: true}
}

// CollectRubyFiles collects Ruby files from paths. Include patterns are
// doublestar globs matched against the path relative to the walked root;
// exclude patterns use gitignore syntax.
func (h *FileHelper) CollectRubyFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			excludes := ignore.CompileIgnoreLines(excludePatterns...)
			if h.IsValidRubyFile(path) && !excludes.MatchesPath(filepath.ToSlash(path)) {
				add(path)
			}
			continue
		}

		excludes := h.compileExcludes(path, excludePatterns)
		err = filepath.WalkDir(path, func(filePath string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(path, filePath)
			if relErr != nil {
				return relErr
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if rel == "." {
					return nil
				}
				if !recursive || excludes.MatchesPath(rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if excludes.MatchesPath(rel) || !h.included(rel, includePatterns) {
				return nil
			}
			add(filePath)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (h *FileHelper) compileExcludes(root string, patterns []string) *ignore.GitIgnore {
	if h.UseGitignore {
		gi, err := ignore.CompileIgnoreFileAndLines(filepath.Join(root, ".gitignore"), patterns...)
		if err == nil {
			return gi
		}
	}
	return ignore.CompileIgnoreLines(patterns...)
}

// included reports whether rel matches an include pattern. Without
// patterns any Ruby source is included.
func (h *FileHelper) included(rel string, patterns []string) bool {
	if len(patterns) == 0 {
		return h.IsValidRubyFile(rel)
	}
	base := filepath.Base(rel)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}

// IsValidRubyFile checks if a file is a Ruby source file
func (h *FileHelper) IsValidRubyFile(path string) bool {
	base := filepath.Base(path)
	if rubyFileNames[base] {
		return true
	}
	return rubyExtensions[strings.ToLower(filepath.Ext(base))]
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile reads file content
func (h *FileHelper) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ResolveFilePaths resolves file paths, returning existing files directly
// or collecting files from directories
func ResolveFilePaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	allFiles := len(paths) > 0
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	if allFiles {
		return paths, nil
	}

	return fileHelper.CollectRubyFiles(paths, recursive, includePatterns, excludePatterns)
}
