package htmlreport

import (
	"html"
	"html/template"
	"strings"
)

const styleSheet = `
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0 2em; color: #222; }
h1 a.back { text-decoration: none; }
table.overview { border-collapse: collapse; width: 100%; }
table.overview th, table.overview td { border-bottom: 1px solid #ddd; padding: 4px 8px; text-align: right; }
table.overview th:first-child, table.overview td:first-child { text-align: left; }
tr.totals td { font-weight: bold; }
td.high { background: #c7f0c7; } td.medium { background: #fbeaa3; } td.low { background: #f5c6c6; }
table.lineAnalysis { border-collapse: collapse; font-size: 13px; }
table.lineAnalysis td { padding: 0 6px; white-space: pre; }
td.green { background: #0aad0a; } td.red { background: #c00; } td.orange { background: #ffa500; } td.gray { background: #ddd; }
td.lightgreen { background: #dcf4dc; } td.lightred { background: #f7dede; } td.lightorange { background: #ffe5bc; }
.footer { color: #777; font-size: 12px; margin: 2em 0; }
`

const summaryLayoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Title }}</title>
    <style>{{ styleSheet }}</style>
</head>
<body>
    <h1>{{ .Title }}</h1>
    <p>Generated on: {{ .GeneratedAt }}</p>
    {{if .ReportFiles}}<p>Coverage files: {{range $i, $f := .ReportFiles}}{{if $i}}, {{end}}{{$f}}{{end}}</p>{{end}}

    <table class="overview" id="summary">
        <thead><tr><th>File</th><th>Statements</th><th>Branches</th><th>Functions</th><th>Lines</th></tr></thead>
        <tbody>
        {{range .Files}}
            <tr class="file">
                <td><a href="{{.ReportPath}}">{{.Path}}</a></td>
                {{template "cell" .Statements}}{{template "cell" .Branches}}{{template "cell" .Functions}}{{template "cell" .Lines}}
            </tr>
        {{else}}
            <tr><td colspan="5">No files found.</td></tr>
        {{end}}
        </tbody>
        <tfoot>
            <tr class="totals">
                <td>Total</td>
                {{template "cell" .Totals.Statements}}{{template "cell" .Totals.Branches}}{{template "cell" .Totals.Functions}}{{template "cell" .Totals.Lines}}
            </tr>
        </tfoot>
    </table>

    <div class="footer">{{ .GeneratedAt }}</div>
</body>
</html>`

const cellTemplate = `{{define "cell"}}<td class="{{.Level}}" title="{{.Covered}} of {{.Total}}">{{.Percent}}</td>{{end}}`

const fileDetailLayoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Summary.Path}} - {{.Title}}</title>
    <style>{{ styleSheet }}</style>
</head>
<body>
    <h1><a href="index.html" class="back">&lt;</a> {{.Summary.Path}}</h1>

    <table class="overview" id="summary">
        <thead><tr><th></th><th>Statements</th><th>Branches</th><th>Functions</th><th>Lines</th></tr></thead>
        <tbody>
            <tr class="totals">
                <td>Coverage</td>
                {{template "cell" .Summary.Statements}}{{template "cell" .Summary.Branches}}{{template "cell" .Summary.Functions}}{{template "cell" .Summary.Lines}}
            </tr>
        </tbody>
    </table>

    {{if .Functions}}
    <h2>Functions</h2>
    <ul class="functions">
    {{range .Functions}}
        <li class="{{.LineVisitStatus}}"><a href="#line{{.Line}}">{{.Name}}</a> ({{.Hits}})</li>
    {{end}}
    </ul>
    {{end}}

    <h2>Source</h2>
    {{if .SourceAvailable}}
    <table class="lineAnalysis">
        <thead><tr><th></th><th>#</th><th>Line</th><th></th><th>Source</th></tr></thead>
        <tbody>
        {{range .Lines}}
            <tr class="{{if ne .LineVisitStatus "gray"}}coverableline{{end}}" title="{{.Tooltip}}">
                <td class="{{.LineVisitStatus}}"> </td>
                <td class="right">{{if ne .LineVisitStatus "gray"}}{{.Hits}}{{end}}</td>
                <td class="right"><a id="line{{.LineNumber}}"></a><code>{{.LineNumber}}</code></td>
                <td>{{if .IsBranch}}{{.BranchText}}{{end}}</td>
                <td class="light{{.LineVisitStatus}}"><code>{{.LineContent | SanitizeSourceLine}}</code></td>
            </tr>
        {{end}}
        </tbody>
    </table>
    {{else}}
    <p>Source not available.</p>
    {{end}}

    <div class="footer">{{.GeneratedAt}}</div>
</body>
</html>`

var templateFuncs = template.FuncMap{
	"styleSheet": func() template.CSS { return template.CSS(styleSheet) },
	"SanitizeSourceLine": func(line string) template.HTML {
		escaped := html.EscapeString(line)
		escaped = strings.ReplaceAll(escaped, "\t", "    ")
		escaped = strings.ReplaceAll(escaped, " ", "&nbsp;")
		return template.HTML(escaped)
	},
}

var (
	summaryTpl    = template.Must(template.Must(template.New("summary").Funcs(templateFuncs).Parse(cellTemplate)).Parse(summaryLayoutTemplate))
	fileDetailTpl = template.Must(template.Must(template.New("fileDetail").Funcs(templateFuncs).Parse(cellTemplate)).Parse(fileDetailLayoutTemplate))
)
