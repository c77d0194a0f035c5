// SPDX-License-Identifier: AGPL-3.0-or-later

// Package jekyll integrates with the static-site builder: it renders the
// site configuration from a template and shells out to the build tool.
package jekyll

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/bartekus/roboblog/internal/config"
)

// SiteVars are the values substituted into the _config.yml template.
type SiteVars struct {
	Title       string
	Description string
	Author      string
	URL         string
	BaseURL     string
}

// RenderConfig renders the Jekyll _config.yml content from the template file
// and the jekyll section of the main configuration.
func RenderConfig(templatePath string, cfg config.JekyllConfig) (string, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("template file not found: %s", templatePath)
	}

	tmpl, err := template.New(filepath.Base(templatePath)).Parse(string(data))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", templatePath, err)
	}

	vars := SiteVars{
		Title:       cfg.Title,
		Description: cfg.Description,
		Author:      cfg.Author,
		URL:         cfg.URL,
		BaseURL:     cfg.BaseURL,
	}
	if vars.Title == "" {
		vars.Title = "My Blog"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return buf.String(), nil
}

// WriteConfig writes the rendered configuration, creating directories as
// needed.
func WriteConfig(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
