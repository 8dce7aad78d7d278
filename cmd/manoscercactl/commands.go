package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"manoscerca.app/internal/directory"
	"manoscerca.app/internal/filter"
	"manoscerca.app/internal/geo"
	"manoscerca.app/internal/models"
	"manoscerca.app/internal/share"
	"manoscerca.app/internal/validation"
)

func parseIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid provider id %q", arg)
	}
	return id, nil
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the service categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tLABEL")
			for _, cat := range models.Categories() {
				fmt.Fprintf(tw, "%s\t%s\n", cat.Code, cat.Label)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	var (
		categories []string
		radius     string
		keyword    string
		lat, lng   string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List providers, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := filter.ParseRadius(radius)
			if err != nil {
				return err
			}
			from, err := geo.ParsePoint(lat, lng)
			if err != nil {
				return err
			}

			d, closeFn, err := c.openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			listings := directory.Listings(d.Filter(filter.Spec{
				Categories: categories,
				Radius:     r,
				Keyword:    keyword,
			}, from), from)

			if asJSON {
				return c.printJSON(listings)
			}
			if len(listings) == 0 {
				fmt.Fprintln(c.out, "no providers match")
				return nil
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPHONE\tDISTANCE")
			for _, l := range listings {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", l.ID, l.Name, l.CategoryLabel, l.Phone, l.DistanceText)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringSliceVar(&categories, "category", nil, "Category code to include (repeatable)")
	cmd.Flags().StringVar(&radius, "radius", filter.RadiusAll, `Search radius in km, or "all"`)
	cmd.Flags().StringVar(&keyword, "q", "", "Keyword matched against name and description")
	cmd.Flags().StringVar(&lat, "lat", "", "Your latitude")
	cmd.Flags().StringVar(&lng, "lng", "", "Your longitude")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	var (
		lat, lng string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			from, err := geo.ParsePoint(lat, lng)
			if err != nil {
				return err
			}

			d, closeFn, err := c.openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			details, err := d.Details(cmd.Context(), id, from)
			if err != nil {
				return err
			}
			if asJSON {
				return c.printJSON(details)
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Name:\t%s\n", details.Name)
			fmt.Fprintf(tw, "Category:\t%s\n", details.CategoryLabel)
			fmt.Fprintf(tw, "Email:\t%s\n", details.Email)
			fmt.Fprintf(tw, "Phone:\t%s\n", details.FormattedPhone)
			fmt.Fprintf(tw, "Location:\t%.6f, %.6f\n", details.Lat, details.Lng)
			fmt.Fprintf(tw, "Distance:\t%s\n", details.DistanceText)
			fmt.Fprintf(tw, "Description:\t%s\n", details.Description)
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&lat, "lat", "", "Your latitude")
	cmd.Flags().StringVar(&lng, "lng", "", "Your longitude")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func (c *cli) addCmd() *cobra.Command {
	var form validation.Form

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, closeFn, err := c.openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := d.Register(cmd.Context(), form.Payload())
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				fmt.Fprintln(c.err, "warning:", w)
			}
			fmt.Fprintf(c.out, "registered provider %d (%s)\n", res.Provider.ID, res.Provider.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&form.Category, "category", "", "Category code (see categories)")
	cmd.Flags().StringVar(&form.Description, "description", "", "Description of the services offered")
	cmd.Flags().StringVar(&form.Lat, "lat", "", "Latitude")
	cmd.Flags().StringVar(&form.Lng, "lng", "", "Longitude")
	return cmd
}

func (c *cli) shareCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Print a share link for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			d, closeFn, err := c.openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			link, err := d.ShareLink(cmd.Context(), id, baseURL)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, link.Link)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Page URL the link points to (defaults to the public URL)")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a provider profile to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			d, closeFn, err := c.openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			file, err := d.Export(cmd.Context(), id)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := c.out.Write(file.Data)
				return err
			}
			if output == "" {
				output = file.Name
			}
			if err := os.WriteFile(output, file.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(c.out, "exported provider %d to %s\n", id, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `Output path, "-" for stdout (defaults to perfil-<name>.json)`)
	return cmd
}

func (c *cli) importLinkCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import-link <url>",
		Short: "Import a provider from a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, closeFn, err := c.openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			preview, err := d.PreviewShare(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := c.confirm(fmt.Sprintf("Import %s (%s)?", preview.Provider.Name, preview.Provider.CategoryLabel()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(c.out, "import cancelled")
					return nil
				}
			}

			p, err := d.ImportFromLink(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "imported provider %d (%s)\n", p.ID, p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Import without asking")
	return cmd
}

func (c *cli) importFileCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import-file <path>",
		Short: "Import a provider from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			d, closeFn, err := c.openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if !yes {
				payload, err := share.ParseFile(data)
				if err != nil {
					return err
				}
				name, _ := payload.Text("name")
				ok, err := c.confirm(fmt.Sprintf("Import %s from %s?", name, args[0]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(c.out, "import cancelled")
					return nil
				}
			}

			p, err := d.ImportFromFile(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "imported provider %d (%s)\n", p.ID, p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Import without asking")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			d, closeFn, err := c.openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := d.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "deleted provider %d\n", id)
			return nil
		},
	}
}

func (c *cli) clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := c.confirm("Delete every provider?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(c.out, "clear cancelled")
					return nil
				}
			}

			d, closeFn, err := c.openDirectory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			n := d.Count()
			if err := d.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "deleted %d providers\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Clear without asking")
	return cmd
}
