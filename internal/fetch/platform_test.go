package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform_GoogleDocs(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://docs.google.com/document/d/abc123/pub", PlatformGoogleDocs},
		{"https://docs.google.com/document/d/e/2PACX/pub", PlatformGoogleDocs},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetectPlatform_Notion(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://someone.notion.site/Resume-abc123", PlatformNotion},
		{"https://www.notion.so/Resume-abc123", PlatformNotion},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetectPlatform_GitHubPages(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://someone.github.io/resume/", PlatformGitHubPages},
		{"https://someone.github.io/cv.html", PlatformGitHubPages},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetectPlatform_Unknown(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://example.com/resume", PlatformUnknown},
		{"https://linkedin.com/in/someone", PlatformUnknown},
		{"not-a-url-at-all://", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPlatformContentSelectors_GoogleDocs(t *testing.T) {
	selectors := PlatformContentSelectors(PlatformGoogleDocs)
	assert.Contains(t, selectors, ".doc-content")
	assert.Contains(t, selectors, "#contents")
}

func TestPlatformContentSelectors_Unknown(t *testing.T) {
	selectors := PlatformContentSelectors(PlatformUnknown)
	// Should fall back to generic resume selectors
	assert.Contains(t, selectors, ".resume")
	assert.Contains(t, selectors, "main")
}

func TestPlatformNoiseSelectors_Notion(t *testing.T) {
	selectors := PlatformNoiseSelectors(PlatformNotion)
	// Common selectors
	assert.Contains(t, selectors, "form")
	assert.Contains(t, selectors, ".cookie-banner")
	// Notion-specific
	assert.Contains(t, selectors, ".notion-topbar")
}

func TestPlatformNoiseSelectors_Unknown(t *testing.T) {
	selectors := PlatformNoiseSelectors(PlatformUnknown)
	// Should have common noise selectors
	assert.Contains(t, selectors, "form")
	assert.Contains(t, selectors, ".contact-form")
	assert.Contains(t, selectors, ".cookie-banner")
}
