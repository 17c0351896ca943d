package main

import (
	"fmt"
	"image/png"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thereceipt/template-studio/internal/api"
	"github.com/thereceipt/template-studio/internal/catalog"
	"github.com/thereceipt/template-studio/internal/config"
	"github.com/thereceipt/template-studio/internal/document"
	"github.com/thereceipt/template-studio/internal/draft"
	"github.com/thereceipt/template-studio/internal/money"
	"github.com/thereceipt/template-studio/internal/preset"
	"github.com/thereceipt/template-studio/internal/render"
	"github.com/thereceipt/template-studio/internal/storage"
	"github.com/thereceipt/template-studio/internal/tui"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// Version is set during build via ldflags
var Version = "dev"

var (
	configPath string
	cfg        config.Config
)

func main() {
	root := &cobra.Command{
		Use:     "studio",
		Short:   "Invoice and receipt template studio",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.DefaultPath()
			}
			var err error
			cfg, err = config.Load(configPath)
			return err
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path")

	root.AddCommand(
		newCmd(),
		editCmd(),
		renderCmd(),
		validateCmd(),
		listCmd(),
		kindsCmd(),
		presetsCmd(),
		serveCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (*storage.Store, error) {
	return storage.New(cfg.StorePath)
}

func newCmd() *cobra.Command {
	var kind, mode, presetKey, name, out string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a template file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc *document.Document
			switch {
			case presetKey != "":
				sections, accent, err := preset.Apply(presetKey)
				if err != nil {
					return err
				}
				doc = document.New(kind, templatedoc.ModeLinear)
				doc.ApplyPreset(sections, accent)
			case mode == templatedoc.ModeFreeform:
				doc = document.New(kind, mode)
			default:
				doc = document.NewStarter(kind)
			}
			doc.SetName(name)

			snap := doc.Snapshot()
			if err := templatedoc.Validate(snap); err != nil {
				return err
			}
			if err := snap.SaveToFile(out); err != nil {
				return err
			}
			fmt.Printf("Created %s (%d sections)\n", out, len(snap.Sections))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", templatedoc.KindInvoice, "template kind (invoice or receipt)")
	cmd.Flags().StringVar(&mode, "mode", templatedoc.ModeLinear, "template mode (linear or freeform)")
	cmd.Flags().StringVar(&presetKey, "preset", "", "start from a preset (see 'studio presets')")
	cmd.Flags().StringVar(&name, "name", "", "template name")
	cmd.Flags().StringVarP(&out, "output", "o", "template.json", "output file")
	return cmd
}

func editCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the interactive template editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			var controller *draft.Controller
			if len(args) == 1 {
				snap, err := templatedoc.ParseFile(args[0])
				if err != nil {
					return err
				}
				controller = draft.NewFromSaved(document.FromSnapshot(snap), store)
			} else {
				controller = draft.New(document.NewStarter(kind), store)
			}

			return tui.NewApp(controller).Run()
		},
	}

	cmd.Flags().StringVar(&kind, "kind", templatedoc.KindInvoice, "kind for a fresh template")
	return cmd
}

func renderCmd() *cobra.Command {
	var out, theme, currency string

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a template file to a PNG preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := templatedoc.ParseFile(args[0])
			if err != nil {
				return err
			}
			if err := templatedoc.Validate(doc); err != nil {
				return fmt.Errorf("invalid template: %w", err)
			}

			t := render.LightTheme()
			if theme == "dark" {
				t = render.DarkTheme()
			}
			cur := cfg.Currency
			if currency != "" {
				cur = currency
			}

			img, err := render.RenderPNG(doc, render.NewContext(doc.AccentColor, t, money.NewFormatter(cur, cfg.DateStyle)))
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return err
			}

			fmt.Printf("Rendered %s -> %s\n", args[0], out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "preview.png", "output PNG file")
	cmd.Flags().StringVar(&theme, "theme", "", "preview theme (light or dark)")
	cmd.Flags().StringVar(&currency, "currency", "", "currency for sample amounts")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a template file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := templatedoc.ParseFile(args[0])
			if err != nil {
				return err
			}
			if err := templatedoc.Validate(doc); err != nil {
				return fmt.Errorf("invalid template: %w", err)
			}
			fmt.Printf("%s is valid (%s/%s, %d sections, %d elements)\n",
				args[0], doc.Kind, doc.Mode, len(doc.Sections), len(doc.Elements))
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			entries := store.List()
			if len(entries) == 0 {
				fmt.Println("No saved templates.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKIND\tMODE\tUPDATED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Name, e.Kind, e.Mode, e.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List available section kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tLABEL")
			for _, k := range catalog.Kinds() {
				fmt.Fprintf(w, "%s\t%s\n", k, catalog.Label(k))
			}
			return w.Flush()
		},
	}
}

func presetsCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List starter presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tKIND\tSECTIONS")
			for _, p := range preset.List(kind) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.Key, p.Name, p.Kind, p.SectionCount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "filter by kind (invoice or receipt)")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the studio API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
				log.SetLevel(level)
			}

			store, err := openStore()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.Addr
			}
			log.WithField("addr", addr).Info("template studio starting")
			return api.NewServer(store, log, cfg.Currency).Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
