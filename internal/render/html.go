package render

import (
	"bytes"
	"html/template"
	"io"
)

// previewTemplate is the single fixed layout, styled like the printed page.
// It is served as the live preview and is also the input to the raster
// capture, so the two can never drift apart.
var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Resume Preview</title>
<style>
  body { margin: 0; background: #fff; }
  .page {
    width: 8.5in;
    min-height: 11in;
    margin: 0 auto;
    padding: 0.55in;
    box-sizing: border-box;
    font-family: Arial, Helvetica, sans-serif;
    font-size: 11pt;
    line-height: 1.4;
    color: #000;
  }
  .header { text-align: center; margin-bottom: 16px; }
  .name { font-size: 18pt; font-weight: bold; margin: 0 0 4px; }
  .contact { font-size: 10pt; color: #333; }
  .section { margin-bottom: 14px; }
  .section-title {
    font-size: 12pt;
    font-weight: bold;
    text-transform: uppercase;
    border-bottom: 1px solid #000;
    padding-bottom: 3px;
    margin: 0 0 8px;
  }
  .entry { margin-bottom: 10px; }
  .entry-header { display: flex; justify-content: space-between; }
  .entry-title { font-weight: bold; font-size: 10pt; }
  .entry-aside { font-size: 10pt; color: #333; }
  .entry-aside.italic { font-style: italic; color: #555; font-size: 9pt; }
  .entry-subtitle { font-style: italic; font-size: 10pt; margin-bottom: 3px; }
  .entry-body { font-size: 10pt; margin: 0 0 3px; }
  .entry-footer { font-size: 9pt; color: #555; margin-top: 2px; }
  ul.bullets { margin: 2px 0 0 15px; padding: 0; font-size: 10pt; }
  ul.bullets li { margin-bottom: 2px; }
  .line { font-size: 10pt; margin-bottom: 3px; }
  .paragraph { font-size: 10pt; text-align: justify; margin: 0; }
  .placeholder { text-align: center; padding: 160px 0; color: #6b7280; }
  .placeholder .big { font-size: 13pt; margin: 0; }
  .placeholder .small { font-size: 10pt; margin: 8px 0 0; }
</style>
</head>
<body>
<div class="page" id="resume">
{{- if .Placeholder }}
  <div class="placeholder">
    <p class="big">` + PlaceholderHeading + `</p>
    <p class="small">` + PlaceholderNote + `</p>
  </div>
{{- else }}
  <div class="header">
    <h1 class="name">{{ .Name }}</h1>
    {{- if .ContactLine }}
    <div class="contact">{{ .ContactLine }}</div>
    {{- end }}
  </div>
  {{- range .Sections }}
  <div class="section">
    <h2 class="section-title">{{ .Title }}</h2>
    {{- if .Paragraph }}
    <p class="paragraph">{{ .Paragraph }}</p>
    {{- end }}
    {{- range .Lines }}
    <div class="line">{{ . }}</div>
    {{- end }}
    {{- range .Entries }}
    <div class="entry">
      <div class="entry-header">
        <span class="entry-title">{{ .Title }}</span>
        {{- if .Aside }}
        <span class="entry-aside{{ if .AsideItalic }} italic{{ end }}">{{ .Aside }}</span>
        {{- end }}
      </div>
      {{- if .Subtitle }}
      <div class="entry-subtitle">{{ .Subtitle }}</div>
      {{- end }}
      {{- if .Body }}
      <p class="entry-body">{{ .Body }}</p>
      {{- end }}
      {{- if .Bullets }}
      <ul class="bullets">
        {{- range .Bullets }}
        <li>{{ . }}</li>
        {{- end }}
      </ul>
      {{- end }}
      {{- if .Footer }}
      <div class="entry-footer">{{ .Footer }}</div>
      {{- end }}
    </div>
    {{- end }}
  </div>
  {{- end }}
{{- end }}
</div>
</body>
</html>
`))

// WriteHTML renders the layout as a standalone HTML document.
func WriteHTML(w io.Writer, l Layout) error {
	return previewTemplate.Execute(w, l)
}

// HTML is WriteHTML into a string.
func HTML(l Layout) (string, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, l); err != nil {
		return "", err
	}
	return buf.String(), nil
}
