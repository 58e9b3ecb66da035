package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Drolfothesgnir/bbpost/bbcode"
	"github.com/Drolfothesgnir/bbpost/render"
)

// output formats
const (
	formatANSI  = "ansi"
	formatPlain = "plain"
	formatHTML  = "html"
	formatTree  = "tree"
)

var formats = []string{formatANSI, formatPlain, formatHTML, formatTree}

type options struct {
	format      string
	noColor     bool
	attachments string
	role        string
	userID      int64
	authorID    int64
	css         bool
	maxDepth    int
	quiet       bool
}

func newCmdRoot() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "bbcat [file]",
		Short: "Render a BBCode post",
		Long: `Render a forum post written in BBCode for the terminal, as plain text,
as HTML or as the parsed tree in YAML. The post is read from the file or stdin.`,
		Example: `  # Show the post in the terminal
  bbcat post.txt

  # Render HTML with the attachments uploaded with the post
  bbcat post.txt --format html --attachments attachments.yaml

  # Read the post as a moderator
  cat post.txt | bbcat --role moderator --user 12`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()

			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			return run(opts, in, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatANSI, "Output format: "+strings.Join(formats, ", "))
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colors in the terminal output")
	cmd.Flags().StringVarP(&opts.attachments, "attachments", "a", "", "YAML file listing the attachments of the post")
	cmd.Flags().StringVar(&opts.role, "role", "", "Role of the reader: user, moderator or staff")
	cmd.Flags().Int64Var(&opts.userID, "user", 0, "ID of the reader, zero for a guest")
	cmd.Flags().Int64Var(&opts.authorID, "author", 0, "ID of the author of the post")
	cmd.Flags().BoolVar(&opts.css, "css", false, "Include the stylesheet of the code blocks in the HTML output")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "Deepest nesting of the tags, zero for the default")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not report the markup problems")

	return cmd
}

func run(opts *options, in io.Reader, out, errOut io.Writer) error {
	if !slices.Contains(formats, opts.format) {
		return fmt.Errorf("unknown format %q, expected one of: %s", opts.format, strings.Join(formats, ", "))
	}

	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("cannot read the post: %w", err)
	}

	attachments, err := loadAttachments(opts.attachments)
	if err != nil {
		return err
	}

	warnings, err := bbcode.NewWarnings(bbcode.WarnOverflowNoCap, 0)
	if err != nil {
		return err
	}

	nodes, err := bbcode.ParsePost(string(src), attachments,
		bbcode.WithWarnings(warnings),
		bbcode.WithLimits(bbcode.Limits{MaxDepth: opts.maxDepth}),
	)
	if err != nil {
		return err
	}

	if !opts.quiet {
		for _, w := range warnings.List() {
			fmt.Fprintf(errOut, "%d: %s: %s\n", w.Pos, w.Issue, w.Description)
		}
	}

	viewer := render.Viewer{UserID: opts.userID}
	if opts.userID > 0 {
		viewer.Role = render.ParseRole(opts.role)
		if viewer.Role == render.RoleGuest {
			viewer.Role = render.RoleUser
		}
	}

	ropts := render.Options{Viewer: viewer, AuthorID: opts.authorID}

	switch opts.format {
	case formatPlain:
		_, err = fmt.Fprintln(out, render.Render(nodes, ropts).String())
	case formatHTML:
		err = writeHTML(out, render.HTML(nodes, ropts), opts.css)
	case formatTree:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err = enc.Encode(render.Redact(nodes, viewer, opts.authorID)); err == nil {
			err = enc.Close()
		}
	default:
		styled := render.Render(nodes, ropts)
		_, err = fmt.Fprintln(out, render.ANSI(styled, render.ANSIOptions{Color: !opts.noColor}))
	}

	return err
}

// loadAttachments reads the manifest of the attachments, a YAML list of
// the records with id, type, name, url and size.
func loadAttachments(path string) ([]bbcode.Attachment, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read the attachments: %w", err)
	}

	var attachments []bbcode.Attachment
	if err := yaml.Unmarshal(data, &attachments); err != nil {
		return nil, fmt.Errorf("cannot parse the attachments: %w", err)
	}

	return attachments, nil
}

func writeHTML(out io.Writer, body string, css bool) error {
	if css {
		if _, err := io.WriteString(out, "<style>\n"); err != nil {
			return err
		}
		if err := render.WriteCodeCSS(out); err != nil {
			return err
		}
		if _, err := io.WriteString(out, "</style>\n"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(out, body)
	return err
}
