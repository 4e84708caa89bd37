package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"shreekara.in/catalog-web/internal/catalog"
	"shreekara.in/catalog-web/internal/pricing"
)

type sourceFlags struct {
	File    string
	URL     string
	Timeout time.Duration
}

func addSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	cmd.Flags().StringVar(&f.File, "file", "data/products.json", "Catalog JSON file")
	cmd.Flags().StringVar(&f.URL, "url", "", "Fetch the catalog from a URL instead of --file")
	cmd.Flags().DurationVar(&f.Timeout, "timeout", 10*time.Second, "Fetch timeout for --url")
}

func (f sourceFlags) source() catalog.Source {
	if u := strings.TrimSpace(f.URL); u != "" {
		return catalog.HTTPSource{URL: u, Client: &http.Client{Timeout: f.Timeout}}
	}
	return catalog.FileSource{Path: f.File}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Validate and inspect the product catalog.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCommand())
	root.AddCommand(newPricesCommand())
	return root
}

func newCheckCommand() *cobra.Command {
	var flags sourceFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Decode the catalog and report duplicate or empty ids.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := flags.source().Fetch(cmd.Context())
			if err != nil {
				return err
			}
			if err := catalog.Validate(products); err != nil {
				return fmt.Errorf("catalog invalid:\n%w", err)
			}
			counts := map[pricing.Shape]int{}
			variants := 0
			var noVariants []string
			for _, p := range products {
				if len(p.Variants) == 0 {
					noVariants = append(noVariants, p.ID)
				}
				for _, v := range p.Variants {
					variants++
					counts[pricing.Classify(v).Shape]++
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ok: %d products, %d variants (%d flat, %d discounted, %d quote)\n",
				len(products), variants, counts[pricing.ShapeFlat], counts[pricing.ShapeDiscounted], counts[pricing.ShapeQuote])
			if len(noVariants) > 0 {
				fmt.Fprintf(out, "warning: no variants: %s\n", strings.Join(noVariants, ", "))
			}
			return nil
		},
	}
	addSourceFlags(cmd, &flags)
	return cmd
}

type priceRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Quote bool   `json:"quoteOnly"`
	// Variants are echoed in the data file shape so JSON output can be
	// diffed against the source catalog.
	Variants []catalog.Variant `json:"variants,omitempty"`
}

func newPricesCommand() *cobra.Command {
	var (
		flags  sourceFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "prices [id...]",
		Short: "Print the card price each product shows on listing pages.",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := flags.source().Fetch(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) > 0 {
				var picked []catalog.Product
				for _, id := range args {
					p, ok := catalog.Find(products, id)
					if !ok {
						return fmt.Errorf("%w: %s", catalog.ErrNotFound, id)
					}
					picked = append(picked, p)
				}
				products = picked
			}
			rows := make([]priceRow, 0, len(products))
			for _, p := range products {
				price, _ := pricing.CardPrice(p)
				rows = append(rows, priceRow{
					ID:       p.ID,
					Name:     p.Name,
					Price:    price,
					Quote:    !pricing.Purchasable(p),
					Variants: p.Variants,
				})
			}
			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			case "table":
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tPRICE")
				for _, r := range rows {
					price := r.Price
					if price == "" {
						price = "on request"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Name, price)
				}
				return tw.Flush()
			default:
				return errors.New("--format must be table or json")
			}
		},
	}
	addSourceFlags(cmd, &flags)
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}
