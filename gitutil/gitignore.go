package gitutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// IsIgnored checks if a file path is covered by .gitignore
func IsIgnored(path string) bool {
	cmd := exec.Command("git", "-C", filepath.Dir(path), "check-ignore", "-q", filepath.Base(path))
	err := cmd.Run()
	return err == nil
}

// IsGitRepo checks if dir is inside a git repository
func IsGitRepo(dir string) bool {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--git-dir")
	err := cmd.Run()
	return err == nil
}

// EnsureGitignored checks if a generated file is gitignored, and if not,
// prompts the user to add the file or its directory to .gitignore.
func EnsureGitignored(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", filePath, err)
	}
	dir := filepath.Dir(absPath)

	// Skip if not in a git repo
	if !IsGitRepo(dir) {
		return nil
	}

	// Skip if already ignored
	if IsIgnored(absPath) {
		return nil
	}

	gitRoot, err := getGitRoot(dir)
	if err != nil {
		return fmt.Errorf("failed to find git root: %w", err)
	}

	fileEntry, err := filepath.Rel(gitRoot, absPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s against git root: %w", filePath, err)
	}
	fileEntry = filepath.ToSlash(fileEntry)
	dirEntry := filepath.ToSlash(filepath.Dir(fileEntry)) + "/"

	addFile := fmt.Sprintf("Add file (%s)", fileEntry)
	addDir := fmt.Sprintf("Add directory (%s)", dirEntry)
	options := []string{addFile}
	if dirEntry != "./" {
		options = append(options, addDir)
	}
	options = append(options, "Skip")

	var choice string
	prompt := &survey.Select{
		Message: fmt.Sprintf("File %q is not in .gitignore. Add to .gitignore?", filePath),
		Options: options,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return fmt.Errorf("gitignore prompt failed: %w", err)
	}

	var entryToAdd string
	switch choice {
	case addFile:
		entryToAdd = fileEntry
	case addDir:
		entryToAdd = dirEntry
	default:
		return nil
	}

	if err := AppendEntry(filepath.Join(gitRoot, ".gitignore"), entryToAdd); err != nil {
		return err
	}

	fmt.Printf("Added %q to .gitignore\n", entryToAdd)
	return nil
}

// AppendEntry appends entry on its own line to the gitignore file at path,
// creating the file if needed.
func AppendEntry(path, entry string) error {
	prefix := ""
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(content) > 0 && content[len(content)-1] != '\n' {
			prefix = "\n"
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read .gitignore: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open .gitignore: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(prefix + entry + "\n"); err != nil {
		return fmt.Errorf("failed to write to .gitignore: %w", err)
	}
	return nil
}

func getGitRoot(dir string) (string, error) {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(output), "\r\n"), nil
}
