package source

import (
	"regexp"
	"strings"
)

// Category represents architectural role of a file derived from its path
type Category string

const (
	Endpoint    Category = "endpoint"
	Service     Category = "service"
	Middleware  Category = "middleware"
	Utility     Category = "utility"
	UIComponent Category = "ui-component"
	Test        Category = "test"
	Other       Category = "other"
)

// Categories lists all categories
var Categories = []Category{Endpoint, Service, Middleware, Utility, UIComponent, Test, Other}

var (
	appRoute = regexp.MustCompile(`/app/.*/route\.(ts|tsx|js|jsx)$`)
	appPage  = regexp.MustCompile(`/app/.*/(page|layout|loading|error|not-found)\.(tsx|jsx)$`)
	rcFile   = regexp.MustCompile(`\.(config|rc)\.(ts|js|json)$`)
)

// Categorize classifies a file by its relative path and extension, first matching rule wins
func Categorize(relativePath, extension string) Category {
	location := "/" + strings.TrimPrefix(strings.ToLower(strings.ReplaceAll(relativePath, `\`, "/")), "/")
	extension = strings.ToLower(extension)
	switch {
	case containsAny(location, ".test.", ".spec.", "/__tests__/", "/tests/", "/test/"):
		return Test
	case isDeclaration(location, extension):
		return Other
	case containsAny(location, "/api/", "/route.ts", "/route.tsx") || appRoute.MatchString(location):
		return Endpoint
	case (extension == ".tsx" || extension == ".jsx") && (containsAny(location, "/components/", "/component/") || appPage.MatchString(location)):
		return UIComponent
	case containsAny(location, "/services/", "/service/", "/backend/") || hasAnySuffix(location, "service.ts", "service.tsx"):
		return Service
	case containsAny(location, "/middleware/", "middleware.ts", "middleware.tsx", "middleware.js", "middleware.jsx"):
		return Middleware
	case containsAny(location, "/config/", "config.ts", "config.js") || rcFile.MatchString(location):
		return Other
	case containsAny(location, "/utils/", "/util/", "/helpers/", "/helper/", "/lib/") ||
		hasAnySuffix(location, "util.ts", "utils.ts", "helper.ts", "helpers.ts"):
		return Utility
	}
	return Other
}

// isDeclaration matches type-only modules, they carry no behaviour to analyze
func isDeclaration(location, extension string) bool {
	return extension == ".d.ts" || strings.HasSuffix(location, ".d.ts") ||
		containsAny(location, "/types/", "/type/") ||
		hasAnySuffix(location, "types.ts", "types.tsx")
}

func containsAny(text string, fragments ...string) bool {
	for _, fragment := range fragments {
		if strings.Contains(text, fragment) {
			return true
		}
	}
	return false
}

func hasAnySuffix(text string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(text, suffix) {
			return true
		}
	}
	return false
}
