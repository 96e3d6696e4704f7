// Command kvs-client is a synchronous command-line client for the kvs
// network server: one subcommand per request kind, one round trip per
// invocation.
package main

import (
	"fmt"
	"os"

	"github.com/iwantsomememories/kvs/internal/client"
	"github.com/iwantsomememories/kvs/pkg/options"
	"github.com/spf13/cobra"
)

func main() {
	var addr string

	root := &cobra.Command{Use: "kvs-client", Short: "Talk to a kvs server"}
	root.PersistentFlags().StringVar(&addr, "addr", options.DefaultListenAddr, "server address")

	root.AddCommand(
		setCmd(&addr),
		getCmd(&addr),
		rmCmd(&addr),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:  "set <key> <value>",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Dial(*addr)
			if err != nil {
				return err
			}
			defer c.Close()
			return c.Set(args[0], args[1])
		},
	}
}

func getCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:  "get <key>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Dial(*addr)
			if err != nil {
				return err
			}
			defer c.Close()

			value, found, err := c.Get(args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Println("Key not found")
				return nil
			}
			fmt.Println(value)
			return nil
		},
	}
}

func rmCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:  "rm <key>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Dial(*addr)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Remove(args[0]); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return nil
		},
	}
}
