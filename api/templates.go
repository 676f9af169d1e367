package api

import (
	"html/template"
)

const (
	pageTemplateName    = "page"
	resultsTemplateName = "results"
)

// templates renders the search page and the result-list fragment the page
// swaps in on every input event. Both render a model.ViewModel.
const templates = `
{{- define "spans" -}}
{{- range . -}}
{{- if .Highlight -}}<mark>{{ .Text }}</mark>{{- else -}}{{ .Text }}{{- end -}}
{{- end -}}
{{- end -}}

{{- define "results" -}}
<div id="results" data-state="{{ .State }}">
{{- if .State.IsEmpty }}
<p class="empty">No results found.</p>
{{- else }}
{{- range .Cards }}
<article class="company">
<h2><a href="{{ .URL }}">{{ template "spans" .Title }}</a></h2>
{{- range .Sections }}
<section data-field="{{ .Field }}">
<h3>{{ .Label }}</h3>
<p>{{ template "spans" .Spans }}</p>
</section>
{{- end }}
</article>
{{- end }}
{{- end }}
</div>
{{- end -}}

{{- define "page" -}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Manufacturer Search</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
input[type=search] { width: 100%; font-size: 1.2rem; padding: 0.4rem; }
article.company { border-bottom: 1px solid #ddd; padding: 0.5rem 0; }
h2 { margin: 0.5rem 0 0.25rem; font-size: 1.2rem; }
h3 { margin: 0.5rem 0 0; font-size: 0.9rem; color: #555; }
p { margin: 0.25rem 0; }
mark { background: #ffe066; }
</style>
</head>
<body>
<h1>Manufacturer Search</h1>
<form action="/" method="get" onsubmit="return false;">
<input id="q" type="search" name="q" value="{{ .Query }}" placeholder="Search manufacturers" autocomplete="off" autofocus>
</form>
{{ template "results" . }}
<script>
const box = document.getElementById("q");
let latest = 0;
box.addEventListener("input", () => {
  const seq = ++latest;
  fetch("/results?q=" + encodeURIComponent(box.value))
    .then((resp) => (resp.ok ? resp.text() : null))
    .then((html) => {
      if (html !== null && seq === latest) {
        document.getElementById("results").outerHTML = html;
      }
    });
});
</script>
</body>
</html>
{{- end -}}
`

// newTemplates parses the page and fragment templates.
func newTemplates() *template.Template {
	return template.Must(template.New("mfg-search").Parse(templates))
}
