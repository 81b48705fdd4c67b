package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stockroom/domain"
	"stockroom/util"
)

func init() {
	// add
	var aID, aName string
	var aPrice float64
	var aQuantity int
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(aID)
			if id == "" {
				id = util.UniqueProductID(inventory.Exists)
			}
			p, err := domain.NewProduct(id, aName, aQuantity, aPrice)
			if err != nil {
				return err
			}
			start := time.Now()
			if err := inventory.Add(p); err != nil {
				slog.Error("add failed", "product_id", id, "error", err)
				return err
			}
			slog.Info("product added", "product_id", id, "duration_ms", time.Since(start).Milliseconds())
			if err := printJSON(cmd.OutOrStdout(), p.Record()); err != nil {
				return err
			}
			return persist(cmd.Context())
		},
	}
	addCmd.Flags().StringVar(&aID, "id", "", "product id (generated when empty)")
	addCmd.Flags().StringVar(&aName, "name", "", "name")
	addCmd.Flags().IntVar(&aQuantity, "quantity", 0, "quantity")
	addCmd.Flags().Float64Var(&aPrice, "price", 0, "unit price")
	_ = addCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(addCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get product by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := inventory.Get(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p.Record())
		},
	}
	rootCmd.AddCommand(getCmd)

	// update
	var uName string
	var uPrice float64
	var uQuantity int
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			var patch domain.ProductPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &uName
			}
			if cmd.Flags().Changed("quantity") {
				patch.Quantity = &uQuantity
			}
			if cmd.Flags().Changed("price") {
				patch.Price = &uPrice
			}
			if patch == (domain.ProductPatch{}) {
				return errors.New("nothing to update: pass --name, --quantity or --price")
			}

			start := time.Now()
			p, err := inventory.Update(id, patch)
			if err != nil {
				slog.Error("update failed", "product_id", id, "error", err)
				return err
			}
			slog.Info(
				"product updated",
				"product_id", p.ID(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			if err := printJSON(cmd.OutOrStdout(), p.Record()); err != nil {
				return err
			}
			return persist(cmd.Context())
		},
	}
	updateCmd.Flags().StringVar(&uName, "name", "", "name")
	updateCmd.Flags().IntVar(&uQuantity, "quantity", 0, "quantity")
	updateCmd.Flags().Float64Var(&uPrice, "price", 0, "unit price")
	rootCmd.AddCommand(updateCmd)

	// remove
	var force bool
	removeCmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a product",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := inventory.Get(args[0])
			if err != nil {
				return err
			}
			if !force {
				fmt.Fprintf(cmd.OutOrStdout(), "Remove %s (%s)? (y/N): ", p.ID(), p.Name())
				resp, _ := input(cmd).ReadString('\n')
				if r := strings.TrimSpace(resp); r != "y" && r != "Y" {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}
			if _, err := inventory.Remove(p.ID()); err != nil {
				slog.Error("remove failed", "product_id", p.ID(), "error", err)
				return err
			}
			slog.Info("product removed", "product_id", p.ID())
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", p.ID())
			return persist(cmd.Context())
		},
	}
	removeCmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	rootCmd.AddCommand(removeCmd)

	// find
	var contains bool
	var fOutput string
	findCmd := &cobra.Command{
		Use:   "find <name>",
		Short: "Find products by name, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []domain.Product
			if contains {
				out = inventory.SearchByName(args[0])
			} else {
				out = inventory.FindByName(args[0])
			}
			if err := sortProducts(out, "name", "asc"); err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), out, fOutput)
		},
	}
	findCmd.Flags().BoolVar(&contains, "contains", false, "match names containing the term")
	findCmd.Flags().StringVar(&fOutput, "output", "table", "output format: table|json")
	rootCmd.AddCommand(findCmd)

	// list
	var lSort, lOrder, lOutput string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := inventory.List()
			if err := sortProducts(out, lSort, lOrder); err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), out, lOutput)
		},
	}
	listCmd.Flags().StringVar(&lSort, "sort", "name", "sort field: name|id|quantity|price")
	listCmd.Flags().StringVar(&lOrder, "order", "asc", "sort order: asc|desc")
	listCmd.Flags().StringVar(&lOutput, "output", "table", "output format: table|json")
	rootCmd.AddCommand(listCmd)
}
