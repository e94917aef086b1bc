package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
)

// htmlPage wraps the converted report body in a minimal standalone document.
const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Career Strategy Report</title>
<style>
body { font-family: Georgia, serif; max-width: 46rem; margin: 3rem auto; padding: 0 1rem; color: #1e293b; }
h1, h2, h3 { color: #047857; }
code { background: #f1f5f9; padding: 0.1rem 0.3rem; border-radius: 3px; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`

var pageTemplate = template.Must(template.New("report").Parse(htmlPage))

// ExportHTML converts the markdown report into a standalone HTML page.
func ExportHTML(markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("failed to convert report markdown: %w", err)
	}

	var page bytes.Buffer
	data := struct{ Body template.HTML }{Body: template.HTML(body.String())}
	if err := pageTemplate.Execute(&page, data); err != nil {
		return nil, fmt.Errorf("failed to render report page: %w", err)
	}

	return page.Bytes(), nil
}
