package template

import (
	"bytes"
	"fmt"
	"io"
)

// Data contains the values substituted into the vhost template.
// DocumentRoot fills both the DocumentRoot directive and the <Directory> block.
type Data struct {
	DocumentRoot string
	ServerName   string
}

// Validate checks that both placeholders have a value.
func (d Data) Validate() error {
	if d.DocumentRoot == "" {
		return fmt.Errorf("document root cannot be empty")
	}
	if d.ServerName == "" {
		return fmt.Errorf("server name cannot be empty")
	}
	return nil
}

// RenderTo writes the rendered vhost configuration to w.
func RenderTo(w io.Writer, documentRoot, serverName string) error {
	data := Data{DocumentRoot: documentRoot, ServerName: serverName}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := parsed.ExecuteTemplate(w, vhostTemplate, data); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}

// Render renders the vhost configuration for documentRoot and serverName.
func Render(documentRoot, serverName string) (string, error) {
	var buf bytes.Buffer
	if err := RenderTo(&buf, documentRoot, serverName); err != nil {
		return "", err
	}
	return buf.String(), nil
}
