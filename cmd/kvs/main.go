// Command kvs is the embedded, no-network CLI: it operates directly on a
// data directory through pkg/kvs rather than talking to a server.
package main

import (
	"fmt"
	"os"

	"github.com/iwantsomememories/kvs/pkg/kvs"
	"github.com/iwantsomememories/kvs/pkg/options"
	"github.com/spf13/cobra"
)

func main() {
	var dataDir string

	root := &cobra.Command{Use: "kvs", Short: "Operate on a kvs data directory directly"}
	root.PersistentFlags().StringVar(&dataDir, "dir", options.DefaultDataDir, "data directory")

	root.AddCommand(
		setCmd(&dataDir),
		getCmd(&dataDir),
		rmCmd(&dataDir),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func open(dataDir string) (*kvs.Store, error) {
	return kvs.Open("kvs", options.WithDataDir(dataDir))
}

func setCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:  "set <key> <value>",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(*dataDir)
			if err != nil {
				return err
			}
			defer store.Close()
			return store.Set(args[0], args[1])
		},
	}
}

func getCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:  "get <key>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(*dataDir)
			if err != nil {
				return err
			}
			defer store.Close()

			value, found, err := store.Get(args[0])
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

func rmCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:  "rm <key>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(*dataDir)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Remove(args[0]); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return nil
		},
	}
}
