package health

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// RenderDashboardHTML returns the status page served at GET /health. It is static;
// /health/json is the machine-readable view.
func RenderDashboardHTML(health CollectResult) string {
	headline := "All Systems Operational"
	headlineClass := "ok"
	if health.Status != "ok" {
		headline = "System Issues Detected"
		headlineClass = "err"
	}

	var deps strings.Builder
	names := make([]string, 0, len(health.Dependencies))
	for name := range health.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d := health.Dependencies[name]
		class := "err"
		if d.Status == "connected" || d.Status == "disabled" {
			class = "ok"
		}
		ping := "-"
		if p, ok := d.PingMs.(*int64); ok && p != nil {
			ping = fmt.Sprintf("%d ms", *p)
		}
		label := name
		if d.Backend != "" {
			label += " (" + d.Backend + ")"
		}
		fmt.Fprintf(&deps, `<tr><td>%s</td><td class="%s">%s</td><td>%s</td></tr>`,
			html.EscapeString(label), class, html.EscapeString(d.Status), ping)
	}

	lastReq := "-"
	if m, ok := health.Traffic.LastRequest.(map[string]interface{}); ok {
		lastReq = fmt.Sprintf("%v %v", m["method"], m["path"])
	}

	return `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Event Planner API · Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    body { font-family: system-ui, sans-serif; background: #f8f9fa; color: #1f2937; max-width: 760px; margin: 40px auto; padding: 0 20px; }
    h1.ok { color: #047857; } h1.err { color: #b91c1c; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
    td, th { text-align: left; padding: 8px; border-bottom: 1px solid #e5e7eb; }
    td.ok { color: #047857; font-weight: 700; } td.err { color: #b91c1c; font-weight: 700; }
  </style>
</head>
<body>
  <h1 class="` + headlineClass + `">` + headline + `</h1>
  <h2>Traffic</h2>
  <table>
    <tr><td>Total requests</td><td>` + fmt.Sprint(health.Traffic.TotalRequests) + `</td></tr>
    <tr><td>Failed</td><td>` + fmt.Sprint(health.Traffic.FailedCount) + `</td></tr>
    <tr><td>Success rate</td><td>` + health.Traffic.SuccessRate + `%</td></tr>
    <tr><td>Avg latency</td><td>` + fmt.Sprint(health.Traffic.AvgResponseTime) + ` ms</td></tr>
    <tr><td>Last request</td><td>` + html.EscapeString(lastReq) + `</td></tr>
  </table>
  <h2>Dependencies</h2>
  <table>` + deps.String() + `</table>
  <h2>Runtime</h2>
  <table>
    <tr><td>Uptime</td><td>` + fmt.Sprint(health.Runtime.UptimeSeconds) + ` s</td></tr>
    <tr><td>Heap in use</td><td>` + fmt.Sprint(health.Runtime.Memory.HeapInMB) + ` MB</td></tr>
    <tr><td>Goroutines</td><td>` + fmt.Sprint(health.Runtime.Goroutines) + `</td></tr>
    <tr><td>Platform</td><td>` + health.Runtime.Platform + ` · ` + health.Runtime.GoVersion + `</td></tr>
  </table>
  <p><a href="/health/json">/health/json</a> · <a href="/health/errors">/health/errors</a></p>
</body>
</html>`
}
