package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sha1n/contentkit/internal/config"
	"github.com/sha1n/contentkit/internal/markdown"
	"github.com/sha1n/contentkit/internal/notes"
	"github.com/sha1n/contentkit/internal/search"
	"github.com/sha1n/contentkit/internal/site"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the contentkit command tree
func NewRootCommand(version, programName string, params RunParams) *cobra.Command {
	root := &cobra.Command{
		Use:     programName,
		Short:   "Content site generator, notes registry and MCP server",
		Long:    "contentkit turns directories of content files into a browsable static site, keeps a registry of HTML notes and serves the site to MCP clients",
		Version: version,
	}
	root.SetVersionTemplate(`{{.Version}}
`)
	RegisterGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		newSiteCommand(params),
		newConvertCommand(params),
		newNotesCommand(params),
		newSearchCommand(params),
		newServeCommand(params, version),
	)
	return root
}

// load reads and validates settings for cmd, then configures logging
func load(cmd *cobra.Command, params RunParams) (*config.Settings, error) {
	settings, err := LoadValidated(params, cmd.Flags())
	if err != nil {
		return nil, err
	}
	ConfigureLogging()
	return settings, nil
}

func newSiteCommand(params RunParams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Generate a static website from content files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := load(cmd, params)
			if err != nil {
				return err
			}
			config.LogSite(&settings.Site, slog.Default())

			res, err := site.Build(cmd.Context(), &settings.Site)
			if err != nil {
				return err
			}
			writeBuildSummary(cmd.OutOrStdout(), res)
			return nil
		},
	}
	RegisterSiteFlags(cmd.Flags())
	return cmd
}

func newConvertCommand(params RunParams) *cobra.Command {
	var out, themeID, title string
	var register bool

	cmd := &cobra.Command{
		Use:   "convert INPUT",
		Short: "Convert a Markdown file into a themed HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := load(cmd, params)
			if err != nil {
				return err
			}

			svc, err := notes.NewService(&settings.Notes)
			if err != nil {
				return err
			}
			catalog, err := svc.LoadCatalog(svc.StylesURL())
			if err != nil {
				return err
			}

			res, err := markdown.NewRenderer().ConvertFile(args[0], out, catalog, markdown.PageOptions{
				Title:   title,
				Theme:   themeID,
				CSSBase: svc.StylesURL(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Converted %s -> %s", args[0], res.Output)))

			if register {
				added, err := svc.Add(cmd.Context(), res.Output, res.Title)
				if err != nil {
					return err
				}
				writeAddResult(cmd, added)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: input with .html extension)")
	cmd.Flags().StringVar(&themeID, "theme", "", "Initial theme (default: the configured default theme)")
	cmd.Flags().StringVar(&title, "title", "", "Page title (default: first heading or file name)")
	cmd.Flags().BoolVarP(&register, "register", "r", false, "Add the page to the notes registry")
	RegisterNotesFlags(cmd.Flags())
	return cmd
}

func writeAddResult(cmd *cobra.Command, res notes.AddResult) {
	if res.Existing {
		fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("Already registered: "+res.Entry.Title))
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Added: "+res.Entry.Title))
}

func newNotesCommand(params RunParams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage the registry of HTML notes and its index page",
	}
	RegisterNotesFlags(cmd.PersistentFlags())

	// withService loads settings and opens the notes workspace
	withService := func(run func(cmd *cobra.Command, args []string, svc *notes.Service) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			settings, err := load(cmd, params)
			if err != nil {
				return err
			}
			config.LogNotes(&settings.Notes, slog.Default())
			svc, err := notes.NewService(&settings.Notes)
			if err != nil {
				return err
			}
			return run(cmd, args, svc)
		}
	}

	var addTitle string
	add := &cobra.Command{
		Use:   "add PATH",
		Short: "Register an HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, args []string, svc *notes.Service) error {
			res, err := svc.Add(cmd.Context(), args[0], addTitle)
			if err != nil {
				return err
			}
			writeAddResult(cmd, res)
			return nil
		}),
	}
	add.Flags().StringVar(&addTitle, "title", "", "Title (default: the document's <title> or file name)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create the notes workspace",
			Args:  cobra.NoArgs,
			RunE: withService(func(cmd *cobra.Command, args []string, svc *notes.Service) error {
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Notes workspace ready at "+svc.Dir()))
				return nil
			}),
		},
		add,
		&cobra.Command{
			Use:   "list",
			Short: "List registered notes, newest first",
			Args:  cobra.NoArgs,
			RunE: withService(func(cmd *cobra.Command, args []string, svc *notes.Service) error {
				entries, err := svc.List()
				if err != nil {
					return err
				}
				writeNotesList(cmd.OutOrStdout(), entries)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove IDENTIFIER",
			Short: "Unregister notes whose path or title contains IDENTIFIER",
			Args:  cobra.ExactArgs(1),
			RunE: withService(func(cmd *cobra.Command, args []string, svc *notes.Service) error {
				n, err := svc.Remove(cmd.Context(), args[0])
				if errors.Is(err, notes.ErrNoMatch) {
					return fmt.Errorf("no notes match %q", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Removed %d note(s)", n)))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "regen",
			Short: "Regenerate the index page",
			Args:  cobra.NoArgs,
			RunE: withService(func(cmd *cobra.Command, args []string, svc *notes.Service) error {
				n, err := svc.Regenerate(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Regenerated index with %d notes", n)))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "rebuild",
			Short: "Reinstall missing styles and regenerate the index page",
			Args:  cobra.NoArgs,
			RunE: withService(func(cmd *cobra.Command, args []string, svc *notes.Service) error {
				n, err := svc.Rebuild(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Rebuilt index with %d notes", n)))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "themes",
			Short: "List available themes",
			Args:  cobra.NoArgs,
			RunE: withService(func(cmd *cobra.Command, args []string, svc *notes.Service) error {
				writeThemes(cmd.OutOrStdout(), svc.Catalog())
				return nil
			}),
		},
	)
	return cmd
}

func newSearchCommand(params RunParams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [QUERY...]",
		Short: "Search the generated site's index",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := load(cmd, params)
			if err != nil {
				return err
			}
			typ, _ := cmd.Flags().GetString("type")
			subtype, _ := cmd.Flags().GetString("subtype")

			searcher, err := search.OpenSearcher(settings.Site.IndexDir)
			if err != nil {
				return err
			}
			defer func() {
				if err := searcher.Close(); err != nil {
					slog.Error("Failed to close search index", "error", err)
				}
			}()

			res, err := searcher.Search(cmd.Context(), search.Query{
				Text:    strings.Join(args, " "),
				Type:    typ,
				Subtype: subtype,
				Limit:   settings.Search.MaxResults,
			})
			if err != nil {
				return err
			}
			writeSearchResult(cmd.OutOrStdout(), res, settings.Site.OutputDir)
			return nil
		},
	}
	RegisterSearchFlags(cmd.Flags())
	return cmd
}

func newServeCommand(params RunParams, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio or HTTP (SSE)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunWithDeps(cmd.Context(), params, cmd.Flags(), version)
		},
	}
	RegisterServerFlags(cmd.Flags())
	return cmd
}
