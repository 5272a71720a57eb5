package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseRepoURL parses a GitHub repository URL into owner and name components
func ParseRepoURL(repoURL string) (owner, name string, err error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return "", "", err
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GitHub repository URL: %s", repoURL)
	}

	return parts[0], parts[1], nil
}

// SplitFullName splits an "owner/name" repository identifier
func SplitFullName(fullName string) (owner, name string, ok bool) {
	owner, name, ok = strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return owner, name, true
}

// RepoOwner resolves the owner of a repository, trying the full name, then
// the html URL, then the given fallback.
func RepoOwner(fullName, htmlURL, fallback string) string {
	if owner, _, ok := SplitFullName(fullName); ok {
		return owner
	}
	if htmlURL != "" {
		if owner, _, err := ParseRepoURL(htmlURL); err == nil {
			return owner
		}
	}
	return fallback
}
