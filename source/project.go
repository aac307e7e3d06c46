package source

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// ProjectKind identifies the marker a project root was detected by
type ProjectKind string

const (
	TypeScriptProject ProjectKind = "typescript"
	JavaScriptProject ProjectKind = "javascript"
	GitProject        ProjectKind = "git"
	UnknownProject    ProjectKind = "unknown"
)

// projectMarkers are checked in order in every folder walking up
var projectMarkers = []string{"tsconfig.json", "package.json", ".git"}

// Project represents the project an analyzed location belongs to
type Project struct {
	Root         string      `json:"root" yaml:"root"`
	Kind         ProjectKind `json:"kind" yaml:"kind"`
	Name         string      `json:"name" yaml:"name"`
	Origin       string      `json:"origin,omitempty" yaml:"origin,omitempty"`
	RelativePath string      `json:"relativePath,omitempty" yaml:"relativePath,omitempty"`
}

// DetectProject identifies the project root for location, walking up from location
func DetectProject(location string) (*Project, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	if !info.IsDir() {
		startDir = filepath.Dir(absPath)
	}
	ret := &Project{Root: absPath, Kind: UnknownProject, Name: filepath.Base(absPath)}
	if root, kind := findProjectRoot(startDir); root != "" {
		ret.Root = root
		ret.Kind = kind
		ret.Name = projectName(root, kind)
	}
	if gitRoot := findGitRoot(startDir); gitRoot != "" {
		ret.Origin = gitOrigin(gitRoot)
	}
	if relative, err := filepath.Rel(ret.Root, absPath); err == nil && relative != "." {
		ret.RelativePath = filepath.ToSlash(relative)
	}
	return ret, nil
}

func findProjectRoot(startDir string) (string, ProjectKind) {
	for dir := startDir; ; {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, markerKind(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

func findGitRoot(startDir string) string {
	homeDir := os.Getenv("HOME")
	for dir := startDir; ; {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			return ""
		}
		dir = parent
	}
}

func markerKind(marker string) ProjectKind {
	switch marker {
	case "tsconfig.json":
		return TypeScriptProject
	case "package.json":
		return JavaScriptProject
	case ".git":
		return GitProject
	}
	return UnknownProject
}

// projectName returns package.json name, then git origin repository name, then folder name
func projectName(root string, kind ProjectKind) string {
	if kind != GitProject {
		if name := packageName(filepath.Join(root, "package.json")); name != "" {
			return name
		}
	}
	if origin := gitOrigin(root); origin != "" {
		origin = strings.TrimSuffix(origin, ".git")
		if index := strings.LastIndexAny(origin, "/:"); index != -1 && index+1 < len(origin) {
			return origin[index+1:]
		}
	}
	return filepath.Base(root)
}

func packageName(location string) string {
	data, err := os.ReadFile(location)
	if err != nil {
		return ""
	}
	manifest := struct {
		Name string `json:"name"`
	}{}
	if err = json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Name
}

// gitOrigin extracts the origin remote URL from the repository config
func gitOrigin(gitRoot string) string {
	file, err := os.Open(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	inOrigin := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inOrigin = line == `[remote "origin"]`
			continue
		}
		if !inOrigin {
			continue
		}
		if key, value, ok := strings.Cut(line, "="); ok && strings.TrimSpace(key) == "url" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
