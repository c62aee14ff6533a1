package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v2"

	"icingactl/internal/icinga"
)

var (
	kindStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// objectView is the machine-readable shape of an object for json/yaml output.
// Attribute order is not preserved in these formats.
type objectView struct {
	Kind       string            `json:"kind" yaml:"kind"`
	Name       string            `json:"name,omitempty" yaml:"name,omitempty"`
	Imports    []string          `json:"imports,omitempty" yaml:"imports,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// RunList prints the objects in a config file. kind filters to one object
// type; format is text, json, or yaml.
func RunList(file, kind, format string) error {
	doc, err := icinga.Load(file)
	if err != nil {
		return err
	}

	objects := doc.Objects
	if kind != "" {
		objects = doc.OfKind(kind)
	}

	switch format {
	case "", "text":
		renderText(objects)
	case "json":
		data, err := json.MarshalIndent(views(objects), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode objects: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(views(objects))
		if err != nil {
			return fmt.Errorf("failed to encode objects: %w", err)
		}
		fmt.Print(string(data))
	default:
		return usageErrorf("unknown format %q: use text, json, or yaml", format)
	}
	return nil
}

func views(objects []*icinga.Object) []objectView {
	out := make([]objectView, 0, len(objects))
	for _, o := range objects {
		v := objectView{Kind: o.Kind, Name: o.Name, Imports: o.Imports}
		if len(o.Attributes) > 0 {
			v.Attributes = make(map[string]string, len(o.Attributes))
			for _, a := range o.Attributes {
				v.Attributes[a.Key] = a.Value
			}
		}
		out = append(out, v)
	}
	return out
}

func renderText(objects []*icinga.Object) {
	for i, o := range objects {
		if i > 0 {
			Printer.Println()
		}
		header := kindStyle.Render(o.Kind)
		if o.Name != "" {
			header += " " + nameStyle.Render(o.Name)
		}
		Printer.Println(header)
		for _, imp := range o.Imports {
			Printer.Printf("  %s %q\n", dimStyle.Render("import"), imp)
		}
		for _, a := range o.Attributes {
			Printer.Printf("  %s = %s\n", a.Key, a.Value)
		}
	}
	Printer.Printf("\n%d objects\n", len(objects))
}
