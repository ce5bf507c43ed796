package mailer

// Primary HTML body. The context is fully sanitised before rendering.
const managerNotificationHTML = `<html>
<body>
<p>Hello,</p>
<p>The following download {{if .Many}}requests are{{else}}request is{{end}} awaiting review:</p>
<ul>
{{range .Summaries}}<li><strong>{{.VideoTitle}}</strong> &mdash; requested for {{.Email}}{{if .AccessURL}} (<a href="{{.AccessURL}}">download link</a>){{end}}</li>
{{end}}</ul>
<p>The download links above expire automatically.</p>
</body>
</html>`

// Minimal plain fallback used when HTML rendering fails; a degraded
// notification still beats a dropped one.
const managerNotificationPlain = `Hello,

The following download requests are awaiting review:
{{range .Summaries}}- {{.VideoTitle}} for {{.Email}}{{if .AccessURL}}: {{.AccessURL}}{{end}}
{{end}}
The download links above expire automatically.
`
