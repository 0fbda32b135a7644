package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Team2502/colordetect/pkg/table"
	"github.com/spf13/cobra"
)

var tableServer string

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Read a remote table, e.g. to check what the robot receives",
}

var tableKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the table keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := tableClient(cmd)
		if err != nil {
			return err
		}

		keys, err := client.Keys()
		if err != nil {
			return err
		}

		for _, k := range keys {
			fmt.Println(k)
		}
		return nil
	},
}

var tableGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of a table key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := tableClient(cmd)
		if err != nil {
			return err
		}

		v, ok, err := client.Get(args[0])
		if err != nil {
			return err
		}

		if !ok {
			return fmt.Errorf("no value for '%s'", args[0])
		}

		out, err := json.Marshal(v)
		if err != nil {
			return err
		}

		fmt.Println(string(out))
		return nil
	},
}

func init() {
	tableCmd.PersistentFlags().StringVarP(&tableServer, "server", "s", "", "Table server url, defaults to table.server or http://localhost<table.listen>")
	tableCmd.AddCommand(tableKeysCmd, tableGetCmd)
}

//tableClient targets --server, or the configured table when the flag is not set
func tableClient(cmd *cobra.Command) (*table.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	server := tableServer
	if server == "" {
		server = cfg.Table.Server
	}

	if server == "" {
		if cfg.Table.Listen == "" {
			return nil, errors.New("tableClient: no table server")
		}
		server = "http://localhost" + cfg.Table.Listen
	}

	return table.NewClient(server, cfg.Table.Timeout)
}
