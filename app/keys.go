package app

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/product-reviews/product-reviews/internal/auth"
	"github.com/product-reviews/product-reviews/internal/daemon"
)

func init() { //nolint: gochecknoinits
	keysCmd.PersistentFlags().StringVar(&keyShop, "shop", "", "shop domain, e.g. my-shop.myshopify.com")
	_ = keysCmd.MarkPersistentFlagRequired("shop") //nolint:errcheck

	keysCreateCmd.Flags().StringVar(&keyLabel, "label", "", "note stored with the key")

	keysCmd.AddCommand(keysCreateCmd, keysListCmd, keysRevokeCmd)
	rootCmd.AddCommand(keysCmd)
}

var (
	keyShop  string
	keyLabel string

	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Manage the admin access keys of a shop",
	}

	keysCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an access key, it is printed once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := authService()
			if err != nil {
				return err
			}

			plain, ak, err := svc.CreateKey(keyShop, keyLabel)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "shop: %s\nid:   %d\nkey:  %s\n", ak.Shop, ak.ID, plain)
			_, _ = fmt.Fprintln(out, "the key is not stored, keep it now")

			return nil
		},
	}

	keysListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the access keys of a shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := authService()
			if err != nil {
				return err
			}

			keys, err := svc.ListKeys(keyShop)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0) //nolint:mnd
			_, _ = fmt.Fprintln(w, "ID\tLABEL\tCREATED\tLAST USED")

			for _, k := range keys {
				lastUsed := "never"
				if k.LastUsedAt != nil {
					lastUsed = k.LastUsedAt.Format(time.RFC3339)
				}

				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", k.ID, k.Label, k.CreatedAt.Format(time.RFC3339), lastUsed)
			}

			return w.Flush()
		},
	}

	keysRevokeCmd = &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke an access key of a shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid key id %q: %w", args[0], err)
			}

			svc, err := authService()
			if err != nil {
				return err
			}

			if err = svc.RevokeKey(keyShop, id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "revoked key %d\n", id)

			return nil
		},
	}
)

// authService reads the config and opens the database.
func authService() (*auth.Service, error) {
	if err := loadConfig(); err != nil {
		return nil, err
	}

	db, err := daemon.OpenDB(&cfg)
	if err != nil {
		return nil, err
	}

	return auth.NewService(db), nil
}
