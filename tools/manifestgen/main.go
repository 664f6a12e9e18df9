// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Binary manifestgen renders the extension's manifest.json from
// extension.toml, and packs the extension for installation.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/chrome-webext/go/manifest"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type options struct {
	config string
	debug  bool
}

func (o *options) render() (*manifest.Manifest, error) {
	pterm.Debug.Printf("Loading configuration %q\n", o.config)
	c, err := manifest.Load(o.config)
	if err != nil {
		return nil, err
	}
	return manifest.Render(c)
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "manifestgen",
		Short: "Render and pack the extension's manifest",
		Long: `manifestgen renders manifest.json from extension.toml. Every extension page
has the page query parameter appended, so each context can tell which kind of
page it is running in.

Without --config, the configuration of the demo extension is used.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				pterm.EnableDebugMessages()
			}
		},
	}
	root.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "Path to extension.toml")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug output")

	root.AddCommand(newRenderCmd(opts), newPagesCmd(opts), newPackCmd(opts))
	return root
}

func newRenderCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write manifest.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.render()
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return m.Write(cmd.OutOrStdout())
			}
			if err := writeFile(out, m.Write); err != nil {
				return err
			}
			pterm.Success.Printf("Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newPagesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the extension pages and their types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.render()
			if err != nil {
				return err
			}
			pages := m.Pages()
			data := pterm.TableData{{"Type", "URL"}}
			for _, t := range manifest.SortedTypes(pages) {
				data = append(data, []string{t.String(), pages[t]})
			}
			return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
		},
	}
}

func newPackCmd(opts *options) *cobra.Command {
	var dir, out string
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack the extension directory into a zip archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.render()
			if err != nil {
				return err
			}
			pterm.Info.Printf("Packing %s\n", dir)
			if err := writeFile(out, func(w io.Writer) error {
				return manifest.Pack(w, dir, m)
			}); err != nil {
				return err
			}
			pterm.Success.Printf("Packed %s %s into %s\n", m.Name, m.Version, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Extension directory")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output archive")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// writeFile creates path and writes it with write.
func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
