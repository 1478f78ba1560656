// Command openapi exports the generated API document as YAML and checks two revisions for
// backward-incompatible changes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"bridgeforum/docs"

	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: openapi <export|compat> [flags]")
		os.Exit(2)
	}

	switch os.Args[1] {
	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		out := fs.String("out", "swagger.yaml", "output path, - for stdout")
		_ = fs.Parse(os.Args[2:])
		if err := export(*out); err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
	case "compat":
		fs := flag.NewFlagSet("compat", flag.ExitOnError)
		basePath := fs.String("base", "", "base OpenAPI swagger.yaml path")
		revisionPath := fs.String("revision", "", "revision OpenAPI swagger.yaml path")
		_ = fs.Parse(os.Args[2:])
		os.Exit(runCompat(*basePath, *revisionPath))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		os.Exit(2)
	}
}

// exportYAML renders the registered swagger document as YAML.
func exportYAML() ([]byte, error) {
	doc := map[string]interface{}{}
	if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc); err != nil {
		return nil, fmt.Errorf("decode swagger json: %w", err)
	}
	return yaml.Marshal(doc)
}

func export(out string) error {
	raw, err := exportYAML()
	if err != nil {
		return err
	}
	if strings.TrimSpace(out) == "-" {
		_, err = os.Stdout.Write(raw)
		return err
	}
	if err := os.WriteFile(out, raw, 0o600); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
