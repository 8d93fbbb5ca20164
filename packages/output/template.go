package output

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Suite}}{{.Suite}}{{else}}Test Report{{end}}</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6f8; color: #212529; }
  .container { max-width: 1100px; margin: 0 auto; padding: 24px; }
  h1 { margin: 0 0 4px; font-size: 24px; }
  .meta { color: #6c757d; font-size: 13px; margin-bottom: 24px; }
  .cards { display: flex; gap: 16px; flex-wrap: wrap; margin-bottom: 24px; }
  .card { background: #fff; border-radius: 8px; padding: 16px 24px; box-shadow: 0 1px 3px rgba(0,0,0,0.08); min-width: 110px; }
  .card .value { font-size: 28px; font-weight: 700; }
  .card .label { color: #6c757d; font-size: 12px; text-transform: uppercase; letter-spacing: 0.05em; }
  table { width: 100%; border-collapse: collapse; background: #fff; border-radius: 8px; overflow: hidden; box-shadow: 0 1px 3px rgba(0,0,0,0.08); margin-bottom: 24px; }
  th { text-align: left; padding: 10px 14px; background: #343a40; color: #fff; font-size: 12px; text-transform: uppercase; letter-spacing: 0.05em; }
  td { padding: 10px 14px; border-top: 1px solid #e9ecef; font-size: 14px; }
  .badge { display: inline-block; padding: 2px 10px; border-radius: 10px; color: #fff; font-size: 12px; font-weight: 600; }
  .badge.medium { color: #212529; }
  .reason { color: #6c757d; font-size: 13px; }
  .error { color: #dc3545; font-size: 13px; font-family: monospace; white-space: pre-wrap; }
  h2 { font-size: 18px; margin: 0 0 12px; }
</style>
</head>
<body>
<div class="container">
  <h1>{{if .Suite}}{{.Suite}}{{else}}Test Report{{end}}{{if .Environment}} &mdash; {{.Environment}}{{end}}</h1>
  <div class="meta">Run {{.RunID}} at {{.Time}} ({{printf "%.0f" .Duration}}ms)</div>

  <div class="cards">
    <div class="card"><div class="value">{{.Summary.Total}}</div><div class="label">Total</div></div>
    <div class="card"><div class="value" style="color:#28a745">{{.Summary.Passed}}</div><div class="label">Passed</div></div>
    <div class="card"><div class="value" style="color:#dc3545">{{.Summary.Failed}}</div><div class="label">Failed</div></div>
    <div class="card"><div class="value" style="color:#ffc107">{{.Summary.Skipped}}</div><div class="label">Skipped</div></div>
    <div class="card"><div class="value">{{printf "%.1f" (passRate .Summary)}}%</div><div class="label">Pass Rate</div></div>
    <div class="card"><div class="value">{{.DependencySkips}}</div><div class="label">Dep. Skips</div></div>
  </div>

  {{if .Priorities}}
  <h2>By Priority</h2>
  <table>
    <tr><th>Priority</th><th>Total</th><th>Passed</th><th>Failed</th><th>Skipped</th></tr>
    {{range $name, $stats := .Priorities}}
    <tr>
      <td><span class="badge {{$name}}" style="background:{{priorityColor $name}}">{{$name}}</span></td>
      <td>{{$stats.Total}}</td><td>{{$stats.Passed}}</td><td>{{$stats.Failed}}</td><td>{{$stats.Skipped}}</td>
    </tr>
    {{end}}
  </table>
  {{end}}

  <h2>Tests</h2>
  <table>
    <tr><th>Status</th><th>Name</th><th>Priority</th><th>Duration</th><th>Details</th></tr>
    {{range .Tests}}
    <tr>
      <td><span class="badge" style="background:{{statusColor .Status}}">{{.Status}}</span></td>
      <td>{{if .FullTitle}}{{.FullTitle}}{{else}}{{.Name}}{{end}}</td>
      <td><span class="badge {{.Priority}}" style="background:{{priorityColor .Priority}}">{{.Priority}}</span></td>
      <td>{{printf "%.0f" .Duration}}ms</td>
      <td>
        {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
        {{if .Reason}}<div class="reason">{{.Reason}}{{if .FailedDependency}} (root cause: {{.FailedDependency}}){{end}}</div>{{end}}
      </td>
    </tr>
    {{end}}
  </table>

  {{if .Timings}}
  <h2>Timings (ms)</h2>
  <table>
    <tr><th>Band</th><th>Count</th><th>p50</th><th>p95</th><th>p99</th><th>Max</th></tr>
    {{range $band, $t := .Timings}}
    <tr>
      <td>{{$band}}</td><td>{{$t.Count}}</td>
      <td>{{printf "%.1f" $t.P50Ms}}</td><td>{{printf "%.1f" $t.P95Ms}}</td>
      <td>{{printf "%.1f" $t.P99Ms}}</td><td>{{printf "%.1f" $t.MaxMs}}</td>
    </tr>
    {{end}}
  </table>
  {{end}}
</div>
</body>
</html>
`
