// Package fetch - platform.go provides resume host detection and host-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known resume hosting platform.
type Platform string

const (
	// PlatformGoogleDocs is a resume published from Google Docs
	PlatformGoogleDocs Platform = "google-docs"
	// PlatformNotion is a resume page hosted on Notion
	PlatformNotion Platform = "notion"
	// PlatformGitHubPages is a personal site on GitHub Pages
	PlatformGitHubPages Platform = "github-pages"
	// PlatformUnknown is an unrecognized host
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the resume hosting platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	// Google Docs patterns
	if strings.Contains(host, "docs.google.com") {
		return PlatformGoogleDocs
	}

	// Notion patterns
	if strings.Contains(host, "notion.site") ||
		strings.Contains(host, "notion.so") {
		return PlatformNotion
	}

	// GitHub Pages patterns
	if strings.Contains(host, "github.io") {
		return PlatformGitHubPages
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors optimized for a specific host.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGoogleDocs:
		return []string{
			".doc-content",   // Published doc body
			"#contents",      // Legacy published layout
			".kix-appview-editor",
			"#content",
		}
	case PlatformNotion:
		return []string{
			".notion-page-content",
			".notion-app-inner",
			"main",
			"#content",
		}
	case PlatformGitHubPages:
		return []string{
			".resume",
			"#resume",
			".cv",
			"main",
			"article",
			".content",
		}
	default:
		return ResumePageSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific host.
func PlatformNoiseSelectors(platform Platform) []string {
	// Common noise selectors for all hosts
	common := []string{
		// Contact and download widgets
		"form",
		".contact-form",
		".download-button",
		".print-button",
		"[data-testid='contact-form']",

		// Social and share buttons
		".social-share",
		".share-buttons",
		".social-links",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",

		// Generic navigation already handled in fetch.go
	}

	// Host-specific noise selectors
	switch platform {
	case PlatformGoogleDocs:
		return append(common,
			".docs-ml-header",
			".docs-banner",
			"#docs-chrome",
		)
	case PlatformNotion:
		return append(common,
			".notion-topbar",
			".notion-overlay-container",
			".notion-page-controls",
		)
	case PlatformGitHubPages:
		return append(common,
			".site-header",
			".site-footer",
			".page-navigation",
		)
	default:
		return common
	}
}
