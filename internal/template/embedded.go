package template

import (
	"embed"
	"text/template"
)

//go:embed apache/*.tmpl
var apacheTemplates embed.FS

// vhostTemplate is the only layout the tool writes.
const vhostTemplate = "vhost.conf.tmpl"

var parsed = template.Must(template.ParseFS(apacheTemplates, "apache/"+vhostTemplate))
