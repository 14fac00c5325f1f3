package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"boxy/config"
)

// Values is a struct that holds variables we make available for output name
// template expansion.
type Values struct {
	SourceFile string
	Title      string
	Format     string
	Width      int
	Height     int
	PassID     string
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildOutputPath returns output file path for the render pass. It uses
// either source file name or user-defined template, which may produce
// subdirectories. Every path segment is cleaned and optionally transliterated.
func buildOutputPath(dst string, values Values, format config.OutputFmt, conf *config.OutputConfig, log *zap.Logger) string {
	name := values.SourceFile
	if conf.NameTemplate != "" {
		expanded, err := expandTemplate(config.OutputNameTemplateFieldName, conf.NameTemplate, values)
		switch {
		case err != nil:
			log.Warn("Unable to prepare output filename, using default", zap.Error(err))
		case strings.TrimSpace(expanded) == "":
			log.Warn("Output filename template produced empty name, using default")
		default:
			name = filepath.FromSlash(expanded)
		}
	}

	segments := splitPath(name)
	if len(segments) == 0 {
		segments = []string{values.SourceFile}
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, dst)
	for _, segment := range segments {
		if conf.FileNameTransliterate {
			segment = slug.Make(segment)
		}
		parts = append(parts, config.CleanFileName(segment))
	}
	parts[len(parts)-1] += format.Ext()
	return filepath.Join(parts...)
}

// splitPath splits relative path into non-empty segments, "." and ".."
// segments are dropped so template cannot escape destination directory.
func splitPath(path string) []string {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == os.PathSeparator
	})
	return slices.DeleteFunc(segments, func(s string) bool {
		s = strings.TrimSpace(s)
		return s == "" || s == "." || s == ".."
	})
}
