package report

import (
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"invdash/internal"
	"invdash/internal/inventory"
)

type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type ChartData struct {
	CategoryCounts ChartSeries `json:"categoryCounts"`
	NotebookStatus ChartSeries `json:"notebookStatus"`
	HandheldHealth ChartSeries `json:"handheldHealth"`
}

var categoryLabels = map[internal.Category]string{
	internal.CategoryNotebooks: "Notebooks",
	internal.CategoryHandhelds: "Handhelds",
	internal.CategoryPrinters:  "Printers",
}

// Charts builds the dashboard series: totals per category, notebooks per status
// in chart order and handhelds split into Ok and Error.
func Charts(st inventory.Stats) ChartData {
	var data ChartData
	for _, cat := range internal.Categories {
		data.CategoryCounts.Labels = append(data.CategoryCounts.Labels, categoryLabels[cat])
		data.CategoryCounts.Values = append(data.CategoryCounts.Values, st.Totals[cat])
	}
	for _, status := range internal.NotebookStatuses {
		data.NotebookStatus.Labels = append(data.NotebookStatus.Labels, string(status))
		data.NotebookStatus.Values = append(data.NotebookStatus.Values, st.NotebookByStatus[status])
	}
	data.HandheldHealth = ChartSeries{
		Labels: []string{"Ok", "Error"},
		Values: []int{st.HandheldOK, st.HandheldError},
	}
	return data
}

type statusSection struct {
	Status    internal.NotebookStatus
	Notebooks []internal.Notebook
}

type dashboardView struct {
	Generated  string
	Stats      inventory.Stats
	Categories []internal.Category
	ByStatus   []statusSection
	Handhelds  []internal.Handheld
	Printers   []internal.Printer
	Chart      ChartData
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Inventory</title>
</head>
<body>
<header><h1>Inventory</h1><p class="generated">{{.Generated}}</p></header>
<section id="counters">
{{- range .Categories}}
<div class="counter" data-category="{{.}}">{{index $.Stats.Totals .}}</div>
{{- end}}
<div class="counter" data-category="handhelds-ok">{{.Stats.HandheldOK}}</div>
<div class="counter" data-category="handhelds-error">{{.Stats.HandheldError}}</div>
</section>
<section id="notebooks">
{{- range .ByStatus}}
<h2>{{.Status}}</h2>
<table class="notebooks" data-status="{{.Status}}">
<thead><tr><th>S/N</th><th>Model</th><th>Status</th></tr></thead>
<tbody>
{{- range .Notebooks}}
<tr><td>{{.SerialNumber}}</td><td>{{.Model}}</td><td>{{.Status}}</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
</section>
<section id="handhelds">
<table>
<thead><tr><th>ID</th><th>S/N</th><th>Status</th></tr></thead>
<tbody>
{{- range .Handhelds}}
<tr class="{{if .OK}}ok{{else}}error{{end}}"><td>#{{.ID}}</td><td>{{.SerialNumber}}</td><td>{{.Status}}</td></tr>
{{- end}}
</tbody>
</table>
</section>
<section id="printers">
<table>
<thead><tr><th>ID</th><th>IP</th><th>S/N</th></tr></thead>
<tbody>
{{- range .Printers}}
<tr><td>#{{.ID}}</td><td>{{.IPAddress}}</td><td>{{.SerialNumber}}</td></tr>
{{- end}}
</tbody>
</table>
</section>
<script type="application/json" id="chart-data">{{.Chart}}</script>
</body>
</html>
`))

// Dashboard renders a self-contained HTML page for inv.
func Dashboard(w io.Writer, inv internal.Inventory, now time.Time) error {
	st := inventory.ComputeStats(inv)
	view := dashboardView{
		Generated:  now.Format(time.DateTime),
		Stats:      st,
		Categories: internal.Categories,
		Handhelds:  inv.Handhelds,
		Printers:   inv.Printers,
		Chart:      Charts(st),
	}
	for _, status := range internal.NotebookStatuses {
		view.ByStatus = append(view.ByStatus, statusSection{Status: status, Notebooks: inv.NotebooksWithStatus(status)})
	}
	return dashboardTmpl.Execute(w, view)
}

func DashboardToFile(inv internal.Inventory, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := Dashboard(f, inv, time.Now()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
